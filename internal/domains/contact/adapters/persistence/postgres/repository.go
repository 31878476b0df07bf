package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists contact messages in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The schema is
// applied by migrations.Run; the caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type messageRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	Email     string    `gorm:"column:email;type:varchar(255)"`
	Phone     string    `gorm:"column:phone;type:varchar(50)"`
	Subject   string    `gorm:"column:subject;type:varchar(255)"`
	Message   string    `gorm:"column:message;type:text"`
	IsRead    bool      `gorm:"column:is_read;default:false;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (messageRecord) TableName() string { return "contact_messages" }

func (r *messageRecord) toDomain() *domain.Message {
	return &domain.Message{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Subject:   r.Subject,
		Body:      r.Message,
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (r *Repository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if message == nil {
		return nil, errors.New("cannot create nil message")
	}
	record := messageRecord{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Message:   message.Body,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}
	// Select forces is_read=false to be written instead of skipped as a zero value.
	if err := r.db.WithContext(ctx).Select("*").Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) (projection.Page[*domain.Message], error) {
	page := projection.Page[*domain.Message]{PageRequest: filter.Page}
	if err := r.ensureDB(); err != nil {
		return page, err
	}
	query := r.db.WithContext(ctx).Model(&messageRecord{})
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Count(&page.Total).Error; err != nil {
		return page, err
	}
	var records []messageRecord
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&records).Error; err != nil {
		return page, err
	}
	page.Items = make([]*domain.Message, 0, len(records))
	for i := range records {
		page.Items = append(page.Items, records[i].toDomain())
	}
	return page, nil
}

func (r *Repository) CountUnread(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&messageRecord{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

// MarkAsRead sets is_read. Postgres counts matched rows, so an already-read
// message still reports one affected row.
func (r *Repository) MarkAsRead(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&messageRecord{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&messageRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository is not initialized")
	}
	return nil
}
