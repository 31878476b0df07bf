package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	bookingtypes "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
)

// Weight accepts a JSON number or a numeric string, as HTML forms send both.
type Weight float64

// UnmarshalJSON implements json.Unmarshaler.
func (w *Weight) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*w = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*w = 0
			return nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("weight must be a number: %w", err)
		}
		*w = Weight(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("weight must be a number: %w", err)
	}
	*w = Weight(value)
	return nil
}

// CreateBooking is the public booking form payload.
type CreateBooking struct {
	SenderName          string `json:"senderName"`
	SenderCompany       string `json:"senderCompany"`
	SenderPhone         string `json:"senderPhone"`
	SenderEmail         string `json:"senderEmail"`
	SenderAddress       string `json:"senderAddress"`
	ReceiverName        string `json:"receiverName"`
	ReceiverPhone       string `json:"receiverPhone"`
	ReceiverAddress     string `json:"receiverAddress"`
	ReceiverCountry     string `json:"receiverCountry"`
	ShipmentType        string `json:"shipmentType"`
	Weight              Weight `json:"weight"`
	CargoType           string `json:"cargoType"`
	Dimensions          string `json:"dimensions"`
	SpecialInstructions string `json:"specialInstructions"`
	PickupDate          string `json:"pickupDate"`
	DeliveryPriority    string `json:"deliveryPriority"`
}

// UpdateBooking is the staff edit payload. Keys use the stored column names;
// id, tracking_number and created_at are ignored.
type UpdateBooking struct {
	SenderName          *string `json:"sender_name"`
	SenderCompany       *string `json:"sender_company"`
	SenderPhone         *string `json:"sender_phone"`
	SenderEmail         *string `json:"sender_email"`
	SenderAddress       *string `json:"sender_address"`
	ReceiverName        *string `json:"receiver_name"`
	ReceiverPhone       *string `json:"receiver_phone"`
	ReceiverAddress     *string `json:"receiver_address"`
	ReceiverCountry     *string `json:"receiver_country"`
	ShipmentType        *string `json:"shipment_type"`
	Weight              *Weight `json:"weight"`
	CargoType           *string `json:"cargo_type"`
	Dimensions          *string `json:"dimensions"`
	SpecialInstructions *string `json:"special_instructions"`
	PickupDate          *string `json:"pickup_date"`
	DeliveryPriority    *string `json:"delivery_priority"`
	EstimatedDelivery   *string `json:"estimated_delivery"`
	Status              *string `json:"status"`
}

// UpdateStatus is the status change payload.
type UpdateStatus struct {
	Status string `json:"status" binding:"required"`
}

// Booking is the stored row as exposed over HTTP.
type Booking struct {
	ID                  string  `json:"id"`
	TrackingNumber      string  `json:"tracking_number"`
	SenderName          string  `json:"sender_name"`
	SenderCompany       *string `json:"sender_company"`
	SenderPhone         string  `json:"sender_phone"`
	SenderEmail         string  `json:"sender_email"`
	SenderAddress       string  `json:"sender_address"`
	ReceiverName        string  `json:"receiver_name"`
	ReceiverPhone       string  `json:"receiver_phone"`
	ReceiverAddress     string  `json:"receiver_address"`
	ReceiverCountry     string  `json:"receiver_country"`
	ShipmentType        string  `json:"shipment_type"`
	Weight              float64 `json:"weight"`
	Dimensions          *string `json:"dimensions"`
	CargoType           string  `json:"cargo_type"`
	PickupDate          string  `json:"pickup_date"`
	DeliveryPriority    string  `json:"delivery_priority"`
	EstimatedDelivery   string  `json:"estimated_delivery"`
	SpecialInstructions *string `json:"special_instructions"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// CreatedBooking is returned by the create endpoint.
type CreatedBooking struct {
	BookingID         string `json:"booking_id"`
	TrackingNumber    string `json:"tracking_number"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

// Stats mirrors domain.Statistics.
type Stats struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	InTransit int `json:"in_transit"`
	Pending   int `json:"pending"`
}

// ToCreateInput maps the form payload to the application input.
func ToCreateInput(in CreateBooking) bookingtypes.CreateBookingInput {
	return bookingtypes.CreateBookingInput{
		SenderName:          in.SenderName,
		SenderCompany:       in.SenderCompany,
		SenderPhone:         in.SenderPhone,
		SenderEmail:         in.SenderEmail,
		SenderAddress:       in.SenderAddress,
		ReceiverName:        in.ReceiverName,
		ReceiverPhone:       in.ReceiverPhone,
		ReceiverAddress:     in.ReceiverAddress,
		ReceiverCountry:     in.ReceiverCountry,
		ShipmentType:        in.ShipmentType,
		Weight:              float64(in.Weight),
		CargoType:           in.CargoType,
		Dimensions:          in.Dimensions,
		SpecialInstructions: in.SpecialInstructions,
		PickupDate:          in.PickupDate,
		DeliveryPriority:    in.DeliveryPriority,
	}
}

// ToUpdateInput maps the edit payload to the application input.
func ToUpdateInput(in UpdateBooking) bookingtypes.UpdateBookingInput {
	out := bookingtypes.UpdateBookingInput{
		SenderName:          in.SenderName,
		SenderCompany:       in.SenderCompany,
		SenderPhone:         in.SenderPhone,
		SenderEmail:         in.SenderEmail,
		SenderAddress:       in.SenderAddress,
		ReceiverName:        in.ReceiverName,
		ReceiverPhone:       in.ReceiverPhone,
		ReceiverAddress:     in.ReceiverAddress,
		ReceiverCountry:     in.ReceiverCountry,
		ShipmentType:        in.ShipmentType,
		CargoType:           in.CargoType,
		Dimensions:          in.Dimensions,
		SpecialInstructions: in.SpecialInstructions,
		PickupDate:          in.PickupDate,
		DeliveryPriority:    in.DeliveryPriority,
		EstimatedDelivery:   in.EstimatedDelivery,
		Status:              in.Status,
	}
	if in.Weight != nil {
		w := float64(*in.Weight)
		out.Weight = &w
	}
	return out
}

// FromDomain maps a booking aggregate to its HTTP representation.
func FromDomain(b *domain.Booking) Booking {
	if b == nil {
		return Booking{}
	}
	return Booking{
		ID:                  b.ID,
		TrackingNumber:      b.TrackingNumber,
		SenderName:          b.Sender.Name,
		SenderCompany:       optional(b.Sender.Company),
		SenderPhone:         b.Sender.Phone,
		SenderEmail:         b.Sender.Email,
		SenderAddress:       b.Sender.Address,
		ReceiverName:        b.Receiver.Name,
		ReceiverPhone:       b.Receiver.Phone,
		ReceiverAddress:     b.Receiver.Address,
		ReceiverCountry:     b.Receiver.Country,
		ShipmentType:        string(b.ShipmentType),
		Weight:              b.Weight,
		Dimensions:          optional(b.Dimensions),
		CargoType:           b.CargoType,
		PickupDate:          FormatDate(b.PickupDate),
		DeliveryPriority:    string(b.Priority),
		EstimatedDelivery:   FormatDate(b.EstimatedDelivery),
		SpecialInstructions: optional(b.SpecialInstructions),
		Status:              string(b.Status),
		CreatedAt:           FormatTimestamp(b.CreatedAt),
		UpdatedAt:           FormatTimestamp(b.UpdatedAt),
	}
}

// FromDomainList maps a slice of bookings.
func FromDomainList(list []*domain.Booking) []Booking {
	result := make([]Booking, 0, len(list))
	for _, b := range list {
		result = append(result, FromDomain(b))
	}
	return result
}

// ToCreated builds the create response body.
func ToCreated(b *domain.Booking) CreatedBooking {
	return CreatedBooking{
		BookingID:         b.ID,
		TrackingNumber:    b.TrackingNumber,
		EstimatedDelivery: FormatDate(b.EstimatedDelivery),
	}
}

// FromStatistics maps the status tally.
func FromStatistics(s domain.Statistics) Stats {
	return Stats{Total: s.Total, Delivered: s.Delivered, InTransit: s.InTransit, Pending: s.Pending}
}

// FormatDate renders a calendar date as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// FormatTimestamp renders an instant in RFC 3339 with milliseconds.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
