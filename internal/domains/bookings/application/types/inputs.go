package types

// CreateBookingInput carries the fields submitted by the booking form.
type CreateBookingInput struct {
	SenderName          string
	SenderCompany       string
	SenderPhone         string
	SenderEmail         string
	SenderAddress       string
	ReceiverName        string
	ReceiverPhone       string
	ReceiverAddress     string
	ReceiverCountry     string
	ShipmentType        string
	Weight              float64
	CargoType           string
	Dimensions          string
	SpecialInstructions string
	PickupDate          string
	DeliveryPriority    string
}

// UpdateBookingInput is a partial update. Nil fields are left unchanged.
// Identity, tracking number and creation time are not patchable.
type UpdateBookingInput struct {
	SenderName          *string
	SenderCompany       *string
	SenderPhone         *string
	SenderEmail         *string
	SenderAddress       *string
	ReceiverName        *string
	ReceiverPhone       *string
	ReceiverAddress     *string
	ReceiverCountry     *string
	ShipmentType        *string
	Weight              *float64
	CargoType           *string
	Dimensions          *string
	SpecialInstructions *string
	PickupDate          *string
	DeliveryPriority    *string
	EstimatedDelivery   *string
	Status              *string
}

// ListBookingsQuery selects a page of bookings.
type ListBookingsQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}
