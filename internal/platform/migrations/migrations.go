package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. It is the only place the
// schema is migrated; repositories assume their tables exist.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&bookingRecord{},
		&contactMessageRecord{},
		&userRecord{},
	)
}

// Booking schema mirrors the bookings Postgres adapter.
type bookingRecord struct {
	ID                  string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	TrackingNumber      string    `gorm:"column:tracking_number;type:varchar(64);uniqueIndex"`
	SenderName          string    `gorm:"column:sender_name"`
	SenderCompany       string    `gorm:"column:sender_company"`
	SenderPhone         string    `gorm:"column:sender_phone"`
	SenderEmail         string    `gorm:"column:sender_email"`
	SenderAddress       string    `gorm:"column:sender_address"`
	ReceiverName        string    `gorm:"column:receiver_name"`
	ReceiverPhone       string    `gorm:"column:receiver_phone"`
	ReceiverAddress     string    `gorm:"column:receiver_address"`
	ReceiverCountry     string    `gorm:"column:receiver_country"`
	ShipmentType        string    `gorm:"column:shipment_type;type:varchar(32)"`
	Weight              float64   `gorm:"column:weight"`
	CargoType           string    `gorm:"column:cargo_type"`
	Dimensions          string    `gorm:"column:dimensions"`
	SpecialInstructions string    `gorm:"column:special_instructions"`
	PickupDate          time.Time `gorm:"column:pickup_date;type:date"`
	DeliveryPriority    string    `gorm:"column:delivery_priority;type:varchar(16)"`
	EstimatedDelivery   time.Time `gorm:"column:estimated_delivery;type:date"`
	Status              string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt           time.Time `gorm:"column:created_at;index"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (bookingRecord) TableName() string { return "bookings" }

// Contact message schema mirrors the contact Postgres adapter.
type contactMessageRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	Email     string    `gorm:"column:email;type:varchar(255)"`
	Phone     string    `gorm:"column:phone;type:varchar(50)"`
	Subject   string    `gorm:"column:subject;type:varchar(255)"`
	Message   string    `gorm:"column:message;type:text"`
	IsRead    bool      `gorm:"column:is_read;default:false;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (contactMessageRecord) TableName() string { return "contact_messages" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name         string    `gorm:"column:name;type:varchar(255)"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(16);default:staff"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
