package reviews

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errNotFound = errors.New("review not found")

type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetApprovedByEvent(ctx context.Context, eventID uuid.UUID, page, limit int) (*PaginatedReviews, error)
	GetAll(ctx context.Context, query *ReviewListQuery) (*PaginatedReviews, error)
	Moderate(ctx context.Context, id, staffID uuid.UUID, to ModerationStatus) (*Review, error)
	GetEventRating(ctx context.Context, eventID uuid.UUID) (*EventRating, error)
	HasReviewForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *repository) GetApprovedByEvent(ctx context.Context, eventID uuid.UUID, page, limit int) (*PaginatedReviews, error) {
	db := r.db.WithContext(ctx).Model(&Review{}).
		Where("event_id = ? AND status = ?", eventID, ModerationApproved)

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var reviews []Review
	err := db.Order("verified DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return &PaginatedReviews{
		Reviews:    reviews,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) GetAll(ctx context.Context, query *ReviewListQuery) (*PaginatedReviews, error) {
	db := r.db.WithContext(ctx).Model(&Review{})

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.EventID != "" {
		db = db.Where("event_id = ?", query.EventID)
	}
	if query.Rating > 0 {
		db = db.Where("rating = ?", query.Rating)
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	var reviews []Review
	err := db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return &PaginatedReviews{
		Reviews:    reviews,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) Moderate(ctx context.Context, id, staffID uuid.UUID, to ModerationStatus) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return fmt.Errorf("failed to get review: %w", err)
		}

		if err := tx.Model(&review).Updates(map[string]interface{}{
			"status":       to,
			"moderated_by": staffID,
			"moderated_at": gorm.Expr("NOW()"),
		}).Error; err != nil {
			return fmt.Errorf("failed to moderate review: %w", err)
		}
		review.Status = to
		review.ModeratedBy = &staffID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *repository) GetEventRating(ctx context.Context, eventID uuid.UUID) (*EventRating, error) {
	var result struct {
		AverageRating float64
		ReviewCount   int64
		VerifiedCount int64
	}
	err := r.db.WithContext(ctx).Model(&Review{}).
		Where("event_id = ? AND status = ?", eventID, ModerationApproved).
		Select("COALESCE(AVG(rating), 0) as average_rating, COUNT(*) as review_count, COUNT(*) FILTER (WHERE verified) as verified_count").
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute event rating: %w", err)
	}

	return &EventRating{
		EventID:       eventID,
		AverageRating: math.Round(result.AverageRating*10) / 10,
		ReviewCount:   result.ReviewCount,
		VerifiedCount: result.VerifiedCount,
	}, nil
}

func (r *repository) HasReviewForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking review: %w", err)
	}
	return count > 0, nil
}

// IsNotFound reports whether err means the review does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}
