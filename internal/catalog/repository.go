package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("catalog entry not found")

type Repository interface {
	// Categories
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetActiveCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeactivateCategory(ctx context.Context, id uuid.UUID) error

	// Locations
	CreateLocation(ctx context.Context, location *Location) error
	GetLocationByID(ctx context.Context, id uuid.UUID) (*Location, error)
	GetLocations(ctx context.Context, popularOnly bool) ([]Location, error)
	UpdateLocation(ctx context.Context, location *Location) error

	// Features
	CreateFeature(ctx context.Context, feature *Feature) error
	GetFeatures(ctx context.Context) ([]Feature, error)
	AssignFeature(ctx context.Context, assignment *FeatureAssignment) error
	GetEventFeatures(ctx context.Context, eventID uuid.UUID) ([]FeatureAssignment, error)
	RemoveFeatureAssignment(ctx context.Context, eventID, featureID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetActiveCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *repository) UpdateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *repository) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Category{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CreateLocation(ctx context.Context, location *Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *repository) GetLocationByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	var location Location
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (r *repository) GetLocations(ctx context.Context, popularOnly bool) ([]Location, error) {
	var locations []Location
	query := r.db.WithContext(ctx).Order("name ASC")
	if popularOnly {
		query = query.Where("is_popular = ?", true)
	}
	err := query.Find(&locations).Error
	return locations, err
}

func (r *repository) UpdateLocation(ctx context.Context, location *Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *repository) CreateFeature(ctx context.Context, feature *Feature) error {
	return r.db.WithContext(ctx).Create(feature).Error
}

func (r *repository) GetFeatures(ctx context.Context) ([]Feature, error) {
	var features []Feature
	err := r.db.WithContext(ctx).Order("name ASC").Find(&features).Error
	return features, err
}

func (r *repository) AssignFeature(ctx context.Context, assignment *FeatureAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) GetEventFeatures(ctx context.Context, eventID uuid.UUID) ([]FeatureAssignment, error) {
	var assignments []FeatureAssignment
	err := r.db.WithContext(ctx).
		Preload("Feature").
		Where("event_id = ?", eventID).
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) RemoveFeatureAssignment(ctx context.Context, eventID, featureID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND feature_id = ?", eventID, featureID).
		Delete(&FeatureAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
