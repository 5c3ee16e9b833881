package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// passengerList accepts either a single passenger object or an array.
type passengerList []domain.PassengerInfo

func (p *passengerList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var one domain.PassengerInfo
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*p = passengerList{one}
		return nil
	}
	var many []domain.PassengerInfo
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*p = many
	return nil
}

type serviceLineResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

func newServiceLines(lines []domain.ServiceLine) []serviceLineResponse {
	out := make([]serviceLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, serviceLineResponse{ID: l.ServiceID, Name: l.Name, Price: money(l.Price), Quantity: l.Units()})
	}
	return out
}

type orderResponse struct {
	ID               int64                   `json:"id"`
	OrderNumber      string                  `json:"orderNumber"`
	UserID           int64                   `json:"userId"`
	FlightID         *int64                  `json:"flightId"`
	SeatID           *int64                  `json:"seatId"`
	Status           string                  `json:"status"`
	PaymentStatus    string                  `json:"paymentStatus"`
	PaymentMethod    string                  `json:"paymentMethod"`
	PaymentDetails   map[string]any          `json:"paymentDetails,omitempty"`
	PassengerInfo    []domain.PassengerInfo  `json:"passengerInfo"`
	AssignedSeats    []domain.SeatAssignment `json:"assignedSeats"`
	SelectedServices []serviceLineResponse   `json:"selectedServices"`
	Fare             string                  `json:"fare"`
	PassengerCount   int                     `json:"passengerCount"`
	SeatFees         string                  `json:"seatFees"`
	Subtotal         string                  `json:"subtotal"`
	Taxes            string                  `json:"taxes"`
	Total            string                  `json:"total"`
	CanCheckIn       bool                    `json:"canCheckIn"`
	IsCheckedIn      bool                    `json:"isCheckedIn"`
	CheckInTime      *string                 `json:"checkInTime"`
	CreatedAt        string                  `json:"createdAt"`
	UpdatedAt        string                  `json:"updatedAt"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		FlightID:         o.FlightID,
		SeatID:           o.SeatID,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentMethod:    o.PaymentMethod,
		PaymentDetails:   o.PaymentDetails,
		PassengerInfo:    o.PassengerInfo,
		AssignedSeats:    o.AssignedSeats,
		SelectedServices: newServiceLines(o.SelectedServices),
		Fare:             money(o.Fare),
		PassengerCount:   o.PassengerCount,
		SeatFees:         money(o.SeatFees),
		Subtotal:         money(o.Subtotal),
		Taxes:            money(o.Taxes),
		Total:            money(o.Total),
		CanCheckIn:       o.CanCheckIn,
		IsCheckedIn:      o.IsCheckedIn,
		CreatedAt:        timestamp(o.CreatedAt),
		UpdatedAt:        timestamp(o.UpdatedAt),
	}
	if resp.PassengerInfo == nil {
		resp.PassengerInfo = []domain.PassengerInfo{}
	}
	if resp.AssignedSeats == nil {
		resp.AssignedSeats = []domain.SeatAssignment{}
	}
	if o.CheckInTime != nil {
		ts := timestamp(*o.CheckInTime)
		resp.CheckInTime = &ts
	}
	return resp
}

func newOrderList(list []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for i := range list {
		out = append(out, newOrderResponse(&list[i]))
	}
	return out
}

type paymentResponse struct {
	Method   string   `json:"method"`
	Amount   string   `json:"amount"`
	Taxes    string   `json:"taxes"`
	Total    string   `json:"total"`
	Services []string `json:"services,omitempty"`
}

func newPaymentResponse(p orders.PaymentDetails) paymentResponse {
	return paymentResponse{Method: p.Method, Amount: money(p.Amount), Taxes: money(p.Taxes), Total: money(p.Total), Services: p.Services}
}

type refundResponse struct {
	ServiceName  string `json:"serviceName"`
	ServicePrice string `json:"servicePrice"`
	Amount       string `json:"amount"`
	TaxRefund    string `json:"taxRefund"`
	TotalRefund  string `json:"totalRefund"`
	RefundMethod string `json:"refundMethod"`
}

type seatUpgradeResponse struct {
	SeatID     int64  `json:"seatId"`
	SeatNumber string `json:"seatNumber"`
	SeatType   string `json:"seatType"`
	SeatClass  string `json:"seatClass"`
	Price      string `json:"price"`
}

type flightResponse struct {
	ID               int64  `json:"id"`
	FlightNumber     string `json:"flightNumber"`
	Airline          string `json:"airline"`
	DepartureAirport string `json:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport"`
	DepartureTime    string `json:"departureTime"`
	ArrivalTime      string `json:"arrivalTime"`
	Duration         string `json:"duration"`
	Aircraft         string `json:"aircraft"`
	Stops            int    `json:"stops"`
	Price            string `json:"price"`
	AvailableSeats   int    `json:"availableSeats"`
	TotalSeats       int    `json:"totalSeats"`
	Class            string `json:"class"`
}

func newFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:               f.ID,
		FlightNumber:     f.FlightNumber,
		Airline:          f.Airline,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureTime:    timestamp(f.DepartureTime),
		ArrivalTime:      timestamp(f.ArrivalTime),
		Duration:         f.Duration,
		Aircraft:         f.Aircraft,
		Stops:            f.Stops,
		Price:            money(f.Price),
		AvailableSeats:   f.AvailableSeats,
		TotalSeats:       f.TotalSeats,
		Class:            f.Class,
	}
}

type seatResponse struct {
	ID             int64  `json:"id"`
	FlightID       int64  `json:"flightId"`
	SeatNumber     string `json:"seatNumber"`
	SeatType       string `json:"seatType"`
	SeatClass      string `json:"seatClass"`
	IsAvailable    bool   `json:"isAvailable"`
	IsExtraLegroom bool   `json:"isExtraLegroom"`
	Price          string `json:"price"`
}

func newSeatResponse(s *domain.Seat) seatResponse {
	return seatResponse{
		ID:             s.ID,
		FlightID:       s.FlightID,
		SeatNumber:     s.SeatNumber,
		SeatType:       string(s.SeatType),
		SeatClass:      string(s.SeatClass),
		IsAvailable:    s.IsAvailable,
		IsExtraLegroom: s.IsExtraLegroom,
		Price:          money(s.Price),
	}
}

type serviceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Phase       string `json:"phase"`
	Price       string `json:"price"`
	Inventory   int    `json:"inventory"`
	Tag         string `json:"tag,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func newServiceResponse(s *domain.Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Phase:       string(s.Phase),
		Price:       money(s.Price),
		Inventory:   s.Inventory,
		Tag:         s.Tag,
		IsActive:    s.IsActive,
	}
}

type transactionResponse struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balanceAfter"`
	Description  string `json:"description"`
	CreatedAt    string `json:"createdAt"`
}

type walletResponse struct {
	UserID       int64                 `json:"userId"`
	Email        string                `json:"email"`
	Balance      string                `json:"balance"`
	Transactions []transactionResponse `json:"transactions"`
}

func newWalletResponse(w *orders.Wallet) walletResponse {
	resp := walletResponse{
		UserID:       w.User.ID,
		Email:        w.User.Email,
		Balance:      money(w.User.WalletBalance),
		Transactions: make([]transactionResponse, 0, len(w.Transactions)),
	}
	for _, t := range w.Transactions {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			ID:           t.ID,
			Type:         string(t.Type),
			Amount:       money(t.Amount),
			BalanceAfter: money(t.BalanceAfter),
			Description:  t.Description,
			CreatedAt:    timestamp(t.CreatedAt),
		})
	}
	return resp
}

type historyResponse struct {
	ID          int64  `json:"id"`
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	OrderID     int64  `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Timestamp   string `json:"timestamp"`
}
