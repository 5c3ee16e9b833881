// Package pricing turns priced line items into order money amounts. It does no
// I/O and never fails; inputs are validated by the caller.
package pricing

import (
	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxRate is applied to every subtotal and delta.
var TaxRate = decimal.RequireFromString("0.12")

type LineKind string

const (
	LineFare    LineKind = "fare"
	LineSeat    LineKind = "seat"
	LineService LineKind = "service"
)

type Line struct {
	Kind      LineKind
	Label     string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Amount() decimal.Decimal {
	q := l.Quantity
	if q <= 0 {
		q = 1
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(q)))
}

type Totals struct {
	Subtotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}

// Charge is the money moved by a single add, removal or upgrade.
type Charge struct {
	Amount decimal.Decimal
	Tax    decimal.Decimal
	Total  decimal.Decimal
}

// Tax rounds half away from zero to cents.
func Tax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(TaxRate).Round(2)
}

// RecomputeTotals is the only place order totals are derived.
func RecomputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount())
	}
	subtotal = subtotal.Round(2)
	taxes := Tax(subtotal)
	return Totals{Subtotal: subtotal, Taxes: taxes, Total: subtotal.Add(taxes)}
}

func ServiceLines(services []domain.ServiceLine) []Line {
	lines := make([]Line, 0, len(services))
	for _, s := range services {
		lines = append(lines, Line{Kind: LineService, Label: s.Name, UnitPrice: s.Price, Quantity: s.Units()})
	}
	return lines
}

// OrderLines rebuilds the line items of an order: fare per passenger, the sum
// of seat fees already charged and every selected service.
func OrderLines(fare decimal.Decimal, passengerCount int, seatFees decimal.Decimal, services []domain.ServiceLine) []Line {
	lines := make([]Line, 0, len(services)+2)
	if passengerCount > 0 && !fare.IsZero() {
		lines = append(lines, Line{Kind: LineFare, Label: "fare", UnitPrice: fare, Quantity: passengerCount})
	}
	if !seatFees.IsZero() {
		lines = append(lines, Line{Kind: LineSeat, Label: "seat fees", UnitPrice: seatFees, Quantity: 1})
	}
	return append(lines, ServiceLines(services)...)
}

// PriceOrder recomputes totals from the order's own line items.
func PriceOrder(o *domain.Order) Totals {
	return RecomputeTotals(OrderLines(o.Fare, o.PassengerCount, o.SeatFees, o.SelectedServices))
}

func PriceOrderDraft(flightPrice decimal.Decimal, passengerCount int, seatUpgradeFees []decimal.Decimal, services []domain.ServiceLine) Totals {
	return RecomputeTotals(OrderLines(flightPrice, passengerCount, Sum(seatUpgradeFees), services))
}

func PriceAdditionalServices(services []domain.ServiceLine) Charge {
	return charge(RecomputeTotals(ServiceLines(services)))
}

func PriceServiceRemoval(removed domain.ServiceLine) Charge {
	return PriceAdditionalServices([]domain.ServiceLine{removed})
}

func PriceSeatUpgrade(seatPrice decimal.Decimal) Charge {
	return charge(RecomputeTotals([]Line{{Kind: LineSeat, Label: "seat upgrade", UnitPrice: seatPrice, Quantity: 1}}))
}

func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func charge(t Totals) Charge {
	return Charge{Amount: t.Subtotal, Tax: t.Taxes, Total: t.Total}
}
