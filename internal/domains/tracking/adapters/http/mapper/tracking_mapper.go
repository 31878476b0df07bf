package mapper

import (
	bookingmapper "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/http/mapper"
	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/domain"
)

type ShipmentDetails struct {
	Type       string `json:"type"`
	CargoType  string `json:"cargo_type"`
	Weight     string `json:"weight"`
	Dimensions string `json:"dimensions"`
	Priority   string `json:"priority"`
}

type Sender struct {
	Name    string  `json:"name"`
	Company *string `json:"company"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
}

type Receiver struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

type Dates struct {
	Pickup            string `json:"pickup"`
	EstimatedDelivery string `json:"estimated_delivery"`
	LastUpdated       string `json:"last_updated"`
}

type TimelineItem struct {
	Status      string  `json:"status"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	Date        *string `json:"date"`
}

// Tracking is the public tracking document.
type Tracking struct {
	TrackingNumber  string          `json:"tracking_number"`
	Status          string          `json:"status"`
	Progress        int             `json:"progress"`
	ShipmentDetails ShipmentDetails `json:"shipment_details"`
	Sender          Sender          `json:"sender"`
	Receiver        Receiver        `json:"receiver"`
	Dates           Dates           `json:"dates"`
	Timeline        []TimelineItem  `json:"timeline"`
}

// Validation is the tracking number check response body.
type Validation struct {
	Valid   bool   `json:"valid"`
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

func FromView(v *domain.View) Tracking {
	out := Tracking{
		TrackingNumber: v.TrackingNumber,
		Status:         string(v.Status),
		Progress:       v.Progress,
		ShipmentDetails: ShipmentDetails{
			Type:       v.Details.Type,
			CargoType:  v.Details.CargoType,
			Weight:     v.Details.Weight,
			Dimensions: v.Details.Dimensions,
			Priority:   v.Details.Priority,
		},
		Sender: Sender{
			Name:    v.Sender.Name,
			Address: v.Sender.Address,
			Phone:   v.Sender.Phone,
			Email:   v.Sender.Email,
		},
		Receiver: Receiver{
			Name:    v.Receiver.Name,
			Address: v.Receiver.Address,
			Country: v.Receiver.Country,
			Phone:   v.Receiver.Phone,
		},
		Dates: Dates{
			Pickup:            bookingmapper.FormatDate(v.Dates.Pickup),
			EstimatedDelivery: bookingmapper.FormatDate(v.Dates.EstimatedDelivery),
			LastUpdated:       bookingmapper.FormatTimestamp(v.Dates.LastUpdated),
		},
		Timeline: make([]TimelineItem, 0, len(v.Timeline)),
	}
	if v.Sender.Company != "" {
		company := v.Sender.Company
		out.Sender.Company = &company
	}
	for _, cp := range v.Timeline {
		item := TimelineItem{
			Status:      cp.Key,
			Title:       cp.Title,
			Description: cp.Description,
			Completed:   cp.Completed,
		}
		if cp.Date != nil {
			date := bookingmapper.FormatTimestamp(*cp.Date)
			item.Date = &date
		}
		out.Timeline = append(out.Timeline, item)
	}
	return out
}

func FromValidation(v domain.Validation) Validation {
	return Validation{Valid: v.Valid, Exists: v.Exists, Message: v.Message}
}
