package whatsapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNotFound = errors.New("whatsapp request not found")

type Repository interface {
	Create(ctx context.Context, request *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	GetAll(ctx context.Context, query *RequestListQuery) (*PaginatedRequests, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	GetForProcessing(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Request, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, request *Request) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create whatsapp request: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	var request Request
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to get whatsapp request: %w", err)
	}
	return &request, nil
}

func (r *repository) GetAll(ctx context.Context, query *RequestListQuery) (*PaginatedRequests, error) {
	db := r.db.WithContext(ctx).Model(&Request{})

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.EventID != "" {
		db = db.Where("event_id = ?", query.EventID)
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("customer_name ILIKE ? OR customer_phone ILIKE ?", search, search)
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count whatsapp requests: %w", err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	var requests []Request
	err := db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list whatsapp requests: %w", err)
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return &PaginatedRequests{
		Requests:   requests,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Request{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update whatsapp request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}

// GetForProcessing locks the request row so two staff members cannot
// convert the same request concurrently.
func (r *repository) GetForProcessing(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Request, error) {
	var request Request
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to lock whatsapp request: %w", err)
	}
	return &request, nil
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// IsNotFound reports whether err means the request does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}
