package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusCompleted      OrderStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Terminal reports whether no operation may mutate an order in this status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusCompleted
}

type PassengerInfo struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
}

func (p PassengerInfo) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SeatAssignment binds one passenger, by index, to one seat.
type SeatAssignment struct {
	PassengerIndex int       `json:"passengerIndex"`
	PassengerName  string    `json:"passengerName"`
	SeatID         int64     `json:"seatId"`
	SeatNumber     string    `json:"seatNumber"`
	SeatType       SeatType  `json:"seatType"`
	SeatClass      SeatClass `json:"seatClass"`
}

func NewSeatAssignment(index int, passenger PassengerInfo, seat Seat) SeatAssignment {
	return SeatAssignment{
		PassengerIndex: index,
		PassengerName:  passenger.FullName(),
		SeatID:         seat.ID,
		SeatNumber:     seat.SeatNumber,
		SeatType:       seat.SeatType,
		SeatClass:      seat.SeatClass,
	}
}

// Order is the aggregate root of the booking core. Fare, PassengerCount and
// SeatFees are kept so totals can always be rebuilt from line items.
type Order struct {
	ID               int64
	OrderNumber      string
	UserID           int64
	FlightID         *int64
	SeatID           *int64
	Status           OrderStatus
	PaymentStatus    PaymentStatus
	PaymentMethod    string
	PaymentDetails   map[string]any
	PassengerInfo    []PassengerInfo
	AssignedSeats    []SeatAssignment
	SelectedServices []ServiceLine
	Fare             decimal.Decimal
	PassengerCount   int
	SeatFees         decimal.Decimal
	Subtotal         decimal.Decimal
	Taxes            decimal.Decimal
	Total            decimal.Decimal
	CanCheckIn       bool
	IsCheckedIn      bool
	CheckInTime      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (o *Order) HasService(serviceID int64) bool {
	_, ok := o.ServiceLine(serviceID)
	return ok
}

func (o *Order) ServiceLine(serviceID int64) (ServiceLine, bool) {
	for _, l := range o.SelectedServices {
		if l.ServiceID == serviceID {
			return l, true
		}
	}
	return ServiceLine{}, false
}

// WithoutService returns the selected services minus serviceID.
func (o *Order) WithoutService(serviceID int64) []ServiceLine {
	out := make([]ServiceLine, 0, len(o.SelectedServices))
	for _, l := range o.SelectedServices {
		if l.ServiceID != serviceID {
			out = append(out, l)
		}
	}
	return out
}

// HeldSeatIDs lists every seat this order keeps unavailable, without duplicates.
func (o *Order) HeldSeatIDs() []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	add := func(id int64) {
		if _, ok := seen[id]; ok || id == 0 {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if o.SeatID != nil {
		add(*o.SeatID)
	}
	for _, a := range o.AssignedSeats {
		add(a.SeatID)
	}
	return ids
}

// CurrentSeatID is the seat a check-in seat change replaces.
func (o *Order) CurrentSeatID() (int64, bool) {
	if o.SeatID != nil && *o.SeatID != 0 {
		return *o.SeatID, true
	}
	if len(o.AssignedSeats) > 0 {
		return o.AssignedSeats[0].SeatID, true
	}
	return 0, false
}

// MatchesLastName compares case-insensitively against every passenger.
func (o *Order) MatchesLastName(lastName string) bool {
	want := strings.TrimSpace(lastName)
	if want == "" {
		return false
	}
	for _, p := range o.PassengerInfo {
		if strings.EqualFold(strings.TrimSpace(p.LastName), want) {
			return true
		}
	}
	return false
}
