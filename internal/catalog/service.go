package catalog

import (
	"context"
	"strings"
	"time"

	"wildquest/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	// Categories
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetActiveCategories(ctx context.Context) ([]Category, error)
	DeactivateCategory(ctx context.Context, id uuid.UUID) error

	// Locations
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error)
	GetLocations(ctx context.Context, popularOnly bool) ([]Location, error)

	// Features
	CreateFeature(ctx context.Context, req CreateFeatureRequest) (*Feature, error)
	GetFeatures(ctx context.Context) ([]Feature, error)
	AssignFeature(ctx context.Context, eventID uuid.UUID, req AssignFeatureRequest) (*FeatureAssignment, error)
	GetEventFeatures(ctx context.Context, eventID uuid.UUID) ([]FeatureAssignment, error)
	RemoveFeatureAssignment(ctx context.Context, eventID, featureID uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
}

func NewService(repo Repository, cacheTTL time.Duration) Service {
	return &service{repo: repo, cacheTTL: cacheTTL}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}

	category := &Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return category, nil
}

func (s *service) GetActiveCategories(ctx context.Context) ([]Category, error) {
	if s.cacheService != nil {
		var cached []Category
		err := s.cacheService.GetOrSet(ctx, cache.KeyCategories(), s.cacheTTL, func() (interface{}, error) {
			return s.repo.GetActiveCategories(ctx)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.repo.GetActiveCategories(ctx)
}

func (s *service) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	return nil
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	location := &Location{
		Name:        req.Name,
		County:      req.County,
		Region:      req.Region,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
		IsPopular:   req.IsPopular,
	}

	if err := s.repo.CreateLocation(ctx, location); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return location, nil
}

func (s *service) GetLocations(ctx context.Context, popularOnly bool) ([]Location, error) {
	if popularOnly && s.cacheService != nil {
		var cached []Location
		err := s.cacheService.GetOrSet(ctx, cache.KeyPopularLocations(), s.cacheTTL, func() (interface{}, error) {
			return s.repo.GetLocations(ctx, true)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.repo.GetLocations(ctx, popularOnly)
}

func (s *service) CreateFeature(ctx context.Context, req CreateFeatureRequest) (*Feature, error) {
	feature := &Feature{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
	}
	if err := s.repo.CreateFeature(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *service) GetFeatures(ctx context.Context) ([]Feature, error) {
	return s.repo.GetFeatures(ctx)
}

func (s *service) AssignFeature(ctx context.Context, eventID uuid.UUID, req AssignFeatureRequest) (*FeatureAssignment, error) {
	featureID, err := uuid.Parse(req.FeatureID)
	if err != nil {
		return nil, err
	}

	included := true
	if req.IsIncluded != nil {
		included = *req.IsIncluded
	}

	assignment := &FeatureAssignment{
		EventID:    eventID,
		FeatureID:  featureID,
		IsIncluded: included,
		Notes:      req.Notes,
	}
	if err := s.repo.AssignFeature(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *service) GetEventFeatures(ctx context.Context, eventID uuid.UUID) ([]FeatureAssignment, error) {
	return s.repo.GetEventFeatures(ctx, eventID)
}

func (s *service) RemoveFeatureAssignment(ctx context.Context, eventID, featureID uuid.UUID) error {
	return s.repo.RemoveFeatureAssignment(ctx, eventID, featureID)
}

func (s *service) invalidateCatalogCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	// Best effort; stale catalog entries expire on their own TTL anyway
	_ = s.cacheService.DeletePattern(ctx, cache.PatternCatalog())
}

// slugify converts a display name into a URL slug
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
