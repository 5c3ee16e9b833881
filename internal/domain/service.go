package domain

import "github.com/shopspring/decimal"

type ServicePhase string

const (
	PhaseBooking     ServicePhase = "booking"
	PhasePreBoarding ServicePhase = "pre_boarding"
	PhaseInFlight    ServicePhase = "in_flight"
	PhaseArrival     ServicePhase = "arrival"
)

// Service is a purchasable add-on. Tag is a display hint only.
type Service struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Phase       ServicePhase
	Price       decimal.Decimal
	Inventory   int
	Tag         string
	IsActive    bool
}

// ServiceLine is the snapshot of a service captured into an order when it is
// selected. Price is never re-read from the catalog afterwards.
type ServiceLine struct {
	ServiceID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Units returns the quantity, defaulting to one.
func (l ServiceLine) Units() int {
	if l.Quantity <= 0 {
		return 1
	}
	return l.Quantity
}

func NewServiceLine(s Service, quantity int) ServiceLine {
	line := ServiceLine{ServiceID: s.ID, Name: s.Name, Price: s.Price, Quantity: quantity}
	line.Quantity = line.Units()
	return line
}
