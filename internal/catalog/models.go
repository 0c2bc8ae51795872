package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category groups events by experience type (safari, beach, summit, ...)
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Icon        string    `json:"icon" gorm:"size:50"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// Location is a destination an event takes place at
type Location struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	County      string    `json:"county" gorm:"size:50"`
	Region      string    `json:"region" gorm:"size:50"`
	Latitude    *float64  `json:"latitude,omitempty" gorm:"type:decimal(10,7)"`
	Longitude   *float64  `json:"longitude,omitempty" gorm:"type:decimal(10,7)"`
	Description string    `json:"description" gorm:"type:text"`
	IsPopular   bool      `json:"is_popular" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

// Feature is a reusable amenity events can advertise (park fees, meals, guide)
type Feature struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Icon        string    `json:"icon" gorm:"size:50"`
	Description string    `json:"description" gorm:"type:text"`
}

// FeatureAssignment links a feature to an event, included or excluded
type FeatureAssignment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID    uuid.UUID `json:"event_id" gorm:"type:uuid;index;not null;uniqueIndex:idx_event_feature"`
	FeatureID  uuid.UUID `json:"feature_id" gorm:"type:uuid;not null;uniqueIndex:idx_event_feature"`
	IsIncluded bool      `json:"is_included" gorm:"default:true"`
	Notes      string    `json:"notes" gorm:"size:200"`

	Feature *Feature `json:"feature,omitempty" gorm:"foreignKey:FeatureID"`
}

func (Category) TableName() string          { return "categories" }
func (Location) TableName() string          { return "locations" }
func (Feature) TableName() string           { return "features" }
func (FeatureAssignment) TableName() string { return "feature_assignments" }

// CreateCategoryRequest is the admin payload for a new category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Icon        string `json:"icon" binding:"max=50"`
}

// CreateLocationRequest is the admin payload for a new location
type CreateLocationRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	County      string   `json:"county" binding:"max=50"`
	Region      string   `json:"region" binding:"max=50"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Description string   `json:"description" binding:"max=2000"`
	IsPopular   bool     `json:"is_popular"`
}

// CreateFeatureRequest is the admin payload for a new feature
type CreateFeatureRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Icon        string `json:"icon" binding:"max=50"`
	Description string `json:"description" binding:"max=2000"`
}

// AssignFeatureRequest links a feature to an event
type AssignFeatureRequest struct {
	FeatureID  string `json:"feature_id" binding:"required,uuid"`
	IsIncluded *bool  `json:"is_included"`
	Notes      string `json:"notes" binding:"max=200"`
}
