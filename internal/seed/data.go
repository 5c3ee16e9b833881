package seed

import (
	"fmt"
	"time"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	firstEconomyRow = 10
	lastEconomyRow  = 30
	exitRow         = 12
)

var (
	seatLetters  = []string{"A", "B", "C", "D", "E", "F"}
	exitRowPrice = decimal.RequireFromString("45.00")
)

// SeatsPerFlight is the size of the generated economy cabin.
var SeatsPerFlight = (lastEconomyRow - firstEconomyRow + 1) * len(seatLetters)

// Flights returns the demo schedule departing on the day after day.
func Flights(day time.Time) []domain.Flight {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	at := func(h, m int) time.Time { return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	return []domain.Flight{
		{
			FlightNumber: "SL1234", Airline: "SkyLink Airlines", DepartureAirport: "JFK", ArrivalAirport: "LAX",
			DepartureTime: at(8, 30), ArrivalTime: at(14, 0), Duration: "5h 30m", Aircraft: "Boeing 737-800",
			Price: decimal.RequireFromString("299.00"), Class: "economy",
		},
		{
			FlightNumber: "SL789", Airline: "SkyLink Airlines", DepartureAirport: "JFK", ArrivalAirport: "LAX",
			DepartureTime: at(14, 45), ArrivalTime: at(20, 0), Duration: "5h 15m", Aircraft: "Boeing 737-800",
			Price: decimal.RequireFromString("329.00"), Class: "economy",
		},
		{
			FlightNumber: "DL456", Airline: "Delta Airlines", DepartureAirport: "JFK", ArrivalAirport: "LAX",
			DepartureTime: at(6, 15), ArrivalTime: at(14, 0), Duration: "7h 45m", Aircraft: "Boeing 757-200", Stops: 1,
			Price: decimal.RequireFromString("249.00"), Class: "economy",
		},
	}
}

// SeatMap builds rows 10 to 30, seats A to F. Row 12 is the exit row with
// extra legroom at a fee; every seat starts available.
func SeatMap(flightID int64) []domain.Seat {
	seats := make([]domain.Seat, 0, SeatsPerFlight)
	for row := firstEconomyRow; row <= lastEconomyRow; row++ {
		for i, letter := range seatLetters {
			seat := domain.Seat{
				FlightID:    flightID,
				SeatNumber:  fmt.Sprintf("%d%s", row, letter),
				SeatType:    domain.SeatTypeEconomy,
				SeatClass:   seatClass(i),
				IsAvailable: true,
				Price:       decimal.Zero,
			}
			if row == exitRow {
				seat.IsExtraLegroom = true
				seat.Price = exitRowPrice
			}
			seats = append(seats, seat)
		}
	}
	return seats
}

func seatClass(index int) domain.SeatClass {
	switch index {
	case 0, len(seatLetters) - 1:
		return domain.SeatClassWindow
	case 1, len(seatLetters) - 2:
		return domain.SeatClassAisle
	default:
		return domain.SeatClassMiddle
	}
}

type serviceRow struct {
	name, description, category string
	phase                       domain.ServicePhase
	price                       string
	inventory                   int
	tag                         string
}

var catalogue = []serviceRow{
	{"Priority Boarding", "Skip the line and board before general passengers", "boarding", domain.PhaseBooking, "25.00", 50, "recommended"},
	{"Extra Baggage", "Additional 23kg checked baggage allowance", "baggage", domain.PhaseBooking, "35.00", 30, "only_few_left"},
	{"Travel Insurance", "Complete coverage for trip cancellation and medical", "insurance", domain.PhaseBooking, "49.00", 100, "recommended"},
	{"Lounge Access", "Premium lounge with food, drinks and WiFi", "lounge", domain.PhaseBooking, "65.00", 15, "filling_fast"},
	{"Meal Pre-booking", "Choose your preferred meal from our menu", "meal", domain.PhaseBooking, "18.00", 80, ""},
	{"Fast Track Security", "Skip regular security lines at the airport", "security", domain.PhaseBooking, "29.00", 40, ""},
	{"Flexible Ticket", "Change your flight without fees", "flexibility", domain.PhaseBooking, "75.00", 100, "peace_of_mind"},
	{"Early Check-in", "Check in 48 hours before departure", "check_in", domain.PhasePreBoarding, "15.00", 80, "convenience"},
	{"Excess Baggage", "Additional baggage beyond standard allowance", "baggage", domain.PhasePreBoarding, "50.00", 25, "limited"},
	{"Special Assistance", "Wheelchair or mobility assistance", "assistance", domain.PhasePreBoarding, "0.00", 20, "complimentary"},
	{"Pet Travel", "In-cabin pet transportation", "pet", domain.PhasePreBoarding, "125.00", 5, "very_limited"},
	{"Wi-Fi Access", "High-speed internet throughout your journey", "connectivity", domain.PhasePreBoarding, "19.00", 150, "popular"},
	{"Premium Cabin Upgrade", "Upgrade to business class seating", "upgrade", domain.PhaseInFlight, "299.00", 4, "luxury"},
	{"Gourmet Meal", "Chef-prepared premium dining experience", "dining", domain.PhaseInFlight, "45.00", 30, "premium"},
	{"Duty-Free Shopping", "Pre-order duty-free items for collection", "shopping", domain.PhaseInFlight, "0.00", 100, "tax_free"},
	{"Entertainment Upgrade", "Premium movies and shows selection", "entertainment", domain.PhaseInFlight, "12.00", 75, "entertainment"},
	{"Power Outlet Access", "Guaranteed power outlet at your seat", "power", domain.PhaseInFlight, "8.00", 60, "essential"},
	{"Meet & Assist Arrival", "Personal assistance upon landing", "assistance", domain.PhaseArrival, "85.00", 15, "vip"},
	{"Priority Baggage", "First baggage off the plane", "baggage", domain.PhaseArrival, "35.00", 40, "time_saver"},
	{"Ground Transportation", "Pre-booked taxi or car service", "transport", domain.PhaseArrival, "65.00", 20, "convenient"},
	{"Immigration Fast Track", "Skip immigration queues", "immigration", domain.PhaseArrival, "55.00", 12, "express"},
	{"Hotel Booking Assistance", "Help finding and booking accommodation", "accommodation", domain.PhaseArrival, "25.00", 30, "helpful"},
	{"Travel SIM Card", "Local SIM card with data plan", "connectivity", domain.PhaseArrival, "35.00", 50, "stay_connected"},
}

func Services() []domain.Service {
	services := make([]domain.Service, 0, len(catalogue))
	for _, row := range catalogue {
		services = append(services, domain.Service{
			Name:        row.name,
			Description: row.description,
			Category:    row.category,
			Phase:       row.phase,
			Price:       decimal.RequireFromString(row.price),
			Inventory:   row.inventory,
			Tag:         row.tag,
			IsActive:    true,
		})
	}
	return services
}
