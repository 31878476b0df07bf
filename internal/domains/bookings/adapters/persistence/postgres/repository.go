package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists bookings in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The schema is
// applied by migrations.Run; the caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

func newBookingRecord(b *domain.Booking) bookingRecord {
	return bookingRecord{
		ID:                  b.ID,
		TrackingNumber:      b.TrackingNumber,
		SenderName:          b.Sender.Name,
		SenderCompany:       b.Sender.Company,
		SenderPhone:         b.Sender.Phone,
		SenderEmail:         b.Sender.Email,
		SenderAddress:       b.Sender.Address,
		ReceiverName:        b.Receiver.Name,
		ReceiverPhone:       b.Receiver.Phone,
		ReceiverAddress:     b.Receiver.Address,
		ReceiverCountry:     b.Receiver.Country,
		ShipmentType:        string(b.ShipmentType),
		Weight:              b.Weight,
		CargoType:           b.CargoType,
		Dimensions:          b.Dimensions,
		SpecialInstructions: b.SpecialInstructions,
		PickupDate:          b.PickupDate,
		DeliveryPriority:    string(b.Priority),
		EstimatedDelivery:   b.EstimatedDelivery,
		Status:              string(b.Status),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func (r *bookingRecord) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:             r.ID,
		TrackingNumber: r.TrackingNumber,
		Sender: domain.Sender{
			Name:    r.SenderName,
			Company: r.SenderCompany,
			Phone:   r.SenderPhone,
			Email:   r.SenderEmail,
			Address: r.SenderAddress,
		},
		Receiver: domain.Receiver{
			Name:    r.ReceiverName,
			Phone:   r.ReceiverPhone,
			Address: r.ReceiverAddress,
			Country: r.ReceiverCountry,
		},
		ShipmentType:        domain.ShipmentType(r.ShipmentType),
		Weight:              r.Weight,
		CargoType:           r.CargoType,
		Dimensions:          r.Dimensions,
		SpecialInstructions: r.SpecialInstructions,
		PickupDate:          utcDate(r.PickupDate),
		Priority:            domain.Priority(r.DeliveryPriority),
		EstimatedDelivery:   utcDate(r.EstimatedDelivery),
		Status:              domain.Status(r.Status),
		CreatedAt:           r.CreatedAt.UTC(),
		UpdatedAt:           r.UpdatedAt.UTC(),
	}
}

// Create inserts a booking. The unique index on tracking_number turns a
// collision into ports.ErrDuplicateTrackingNumber.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("cannot create nil booking")
	}
	record := newBookingRecord(booking)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ports.ErrDuplicateTrackingNumber
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save overwrites the mutable columns of an existing booking.
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("cannot save nil booking")
	}
	record := newBookingRecord(booking)
	result := r.db.WithContext(ctx).
		Model(&bookingRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"sender_name":          record.SenderName,
			"sender_company":       record.SenderCompany,
			"sender_phone":         record.SenderPhone,
			"sender_email":         record.SenderEmail,
			"sender_address":       record.SenderAddress,
			"receiver_name":        record.ReceiverName,
			"receiver_phone":       record.ReceiverPhone,
			"receiver_address":     record.ReceiverAddress,
			"receiver_country":     record.ReceiverCountry,
			"shipment_type":        record.ShipmentType,
			"weight":               record.Weight,
			"cargo_type":           record.CargoType,
			"dimensions":           record.Dimensions,
			"special_instructions": record.SpecialInstructions,
			"pickup_date":          record.PickupDate,
			"delivery_priority":    record.DeliveryPriority,
			"estimated_delivery":   record.EstimatedDelivery,
			"status":               record.Status,
			"updated_at":           record.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a booking by its internal identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByTrackingNumber fetches a booking by its public identifier.
func (r *Repository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Booking, error) {
	return r.first(ctx, "tracking_number = ?", trackingNumber)
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record bookingRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a booking by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&bookingRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns one page of bookings ordered newest first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) (projection.Page[*domain.Booking], error) {
	page := projection.Page[*domain.Booking]{PageRequest: filter.Page}
	if err := r.ensureDB(); err != nil {
		return page, err
	}
	query := r.db.WithContext(ctx).Model(&bookingRecord{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			"tracking_number ILIKE ? OR sender_name ILIKE ? OR receiver_name ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if err := query.Count(&page.Total).Error; err != nil {
		return page, err
	}
	var records []bookingRecord
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&records).Error; err != nil {
		return page, err
	}
	page.Items = make([]*domain.Booking, 0, len(records))
	for i := range records {
		page.Items = append(page.Items, records[i].toDomain())
	}
	return page, nil
}

// CountByStatus groups the booking table by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Status string
		Count  int
	}
	if err := r.db.WithContext(ctx).
		Model(&bookingRecord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[domain.Status]int, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository is not initialized")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLSTATE 23505 when the connection was opened without TranslateError.
	return strings.Contains(err.Error(), "23505")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func utcDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
