package catalog

import (
	"errors"
	"net/http"

	"wildquest/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateCategory(c *gin.Context)
	GetCategories(c *gin.Context)
	DeactivateCategory(c *gin.Context)
	CreateLocation(c *gin.Context)
	GetLocations(c *gin.Context)
	CreateFeature(c *gin.Context)
	GetFeatures(c *gin.Context)
	AssignFeature(c *gin.Context)
	GetEventFeatures(c *gin.Context)
	RemoveFeatureAssignment(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	category, err := ctrl.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create category", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Category created successfully", category, nil)
}

func (ctrl *controller) GetCategories(c *gin.Context) {
	categories, err := ctrl.service.GetActiveCategories(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve categories", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Categories retrieved successfully", categories, nil)
}

func (ctrl *controller) DeactivateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid category ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeactivateCategory(c.Request.Context(), categoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Category not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to deactivate category", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Category deactivated successfully", nil, nil)
}

func (ctrl *controller) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	location, err := ctrl.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create location", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Location created successfully", location, nil)
}

func (ctrl *controller) GetLocations(c *gin.Context) {
	popularOnly := c.Query("popular") == "true"

	locations, err := ctrl.service.GetLocations(c.Request.Context(), popularOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve locations", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Locations retrieved successfully", locations, nil)
}

func (ctrl *controller) CreateFeature(c *gin.Context) {
	var req CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	feature, err := ctrl.service.CreateFeature(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create feature", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Feature created successfully", feature, nil)
}

func (ctrl *controller) GetFeatures(c *gin.Context) {
	features, err := ctrl.service.GetFeatures(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve features", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Features retrieved successfully", features, nil)
}

func (ctrl *controller) AssignFeature(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	var req AssignFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	assignment, err := ctrl.service.AssignFeature(c.Request.Context(), eventID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Failed to assign feature", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Feature assigned successfully", assignment, nil)
}

func (ctrl *controller) GetEventFeatures(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	assignments, err := ctrl.service.GetEventFeatures(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve event features", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event features retrieved successfully", assignments, nil)
}

func (ctrl *controller) RemoveFeatureAssignment(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	featureID, err := uuid.Parse(c.Param("featureId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid feature ID", nil, err.Error())
		return
	}

	if err := ctrl.service.RemoveFeatureAssignment(c.Request.Context(), eventID, featureID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Feature assignment not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to remove feature assignment", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Feature assignment removed successfully", nil, nil)
}
