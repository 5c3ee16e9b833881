package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Flight struct {
	ID               int64
	FlightNumber     string
	Airline          string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	Duration         string
	Aircraft         string
	Stops            int
	Price            decimal.Decimal
	AvailableSeats   int
	TotalSeats       int
	Class            string
}

type SeatType string

const (
	SeatTypeEconomy        SeatType = "economy"
	SeatTypePremiumEconomy SeatType = "premium_economy"
	SeatTypeBusiness       SeatType = "business"
	SeatTypeFirst          SeatType = "first"
)

type SeatClass string

const (
	SeatClassWindow SeatClass = "window"
	SeatClassAisle  SeatClass = "aisle"
	SeatClassMiddle SeatClass = "middle"
)

// Seat belongs to exactly one flight. Only IsAvailable changes after the
// seat map is created; Price is the upgrade fee on top of the fare.
type Seat struct {
	ID             int64
	FlightID       int64
	SeatNumber     string
	SeatType       SeatType
	SeatClass      SeatClass
	IsAvailable    bool
	IsExtraLegroom bool
	Price          decimal.Decimal
}

// RandomlyAssignable reports whether the seat may be handed out without the
// passenger choosing it: standard economy seats only.
func (s Seat) RandomlyAssignable() bool {
	return s.IsAvailable && s.SeatType == SeatTypeEconomy && !s.IsExtraLegroom
}
