package events

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"wildquest/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateEvent(c *gin.Context)
	GetEvent(c *gin.Context)
	GetEventBySlug(c *gin.Context)
	UpdateEvent(c *gin.Context)
	PublishEvent(c *gin.Context)
	SuspendEvent(c *gin.Context)
	CancelEvent(c *gin.Context)
	DeleteEvent(c *gin.Context)
	GetAllEvents(c *gin.Context)
	GetUpcomingEvents(c *gin.Context)
	AddPricingTier(c *gin.Context)
	GetEventTiers(c *gin.Context)
	RemoveTier(c *gin.Context)
	GetEventAnalytics(c *gin.Context)
	GetAllEventAnalytics(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func staffUUID(c *gin.Context) (uuid.UUID, bool) {
	staffID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Staff not authenticated", nil, nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(staffID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid staff ID format", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (ctrl *controller) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	staffID, ok := staffUUID(c)
	if !ok {
		return
	}

	event, err := ctrl.service.CreateEvent(c.Request.Context(), staffID, req)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Event created successfully", event, nil)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	event, err := ctrl.service.GetEventByID(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve event", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (ctrl *controller) GetEventBySlug(c *gin.Context) {
	slug := c.Param("slug")

	event, err := ctrl.service.GetEventBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve event", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (ctrl *controller) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	staffID, ok := staffUUID(c)
	if !ok {
		return
	}

	event, err := ctrl.service.UpdateEvent(c.Request.Context(), eventID, staffID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrInvalidStatus):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event updated successfully", event, nil)
}

func (ctrl *controller) PublishEvent(c *gin.Context) {
	ctrl.changeStatus(c, ctrl.service.PublishEvent, "Event published successfully")
}

func (ctrl *controller) SuspendEvent(c *gin.Context) {
	ctrl.changeStatus(c, ctrl.service.SuspendEvent, "Event suspended successfully")
}

func (ctrl *controller) CancelEvent(c *gin.Context) {
	ctrl.changeStatus(c, ctrl.service.CancelEvent, "Event cancelled successfully")
}

func (ctrl *controller) changeStatus(c *gin.Context, op func(context.Context, uuid.UUID, uuid.UUID) error, okMessage string) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	staffID, ok := staffUUID(c)
	if !ok {
		return
	}

	if err := op(c.Request.Context(), eventID, staffID); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrInvalidStatus):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, okMessage, nil, nil)
}

func (ctrl *controller) DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteDraftEvent(c.Request.Context(), eventID); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrHasBookings):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete event", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllEvents(c *gin.Context) {
	var query EventListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetAllEvents(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve events", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", result, nil)
}

func (ctrl *controller) GetUpcomingEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	events, err := ctrl.service.GetUpcomingEvents(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve upcoming events", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Upcoming events retrieved successfully", events, nil)
}

func (ctrl *controller) AddPricingTier(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	var req CreatePricingTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tier, err := ctrl.service.AddPricingTier(c.Request.Context(), eventID, req)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Pricing tier created successfully", tier, nil)
}

func (ctrl *controller) GetEventTiers(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	tiers, err := ctrl.service.GetEventTiers(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve pricing tiers", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pricing tiers retrieved successfully", tiers, nil)
}

func (ctrl *controller) RemoveTier(c *gin.Context) {
	tierID, err := uuid.Parse(c.Param("tierId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid tier ID", nil, err.Error())
		return
	}

	if err := ctrl.service.RemoveTier(c.Request.Context(), tierID); err != nil {
		if errors.Is(err, ErrTierNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Pricing tier not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to remove pricing tier", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pricing tier removed successfully", nil, nil)
}

func (ctrl *controller) GetEventAnalytics(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	analytics, err := ctrl.service.GetEventAnalytics(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve event analytics", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event analytics retrieved successfully", analytics, nil)
}

func (ctrl *controller) GetAllEventAnalytics(c *gin.Context) {
	analytics, err := ctrl.service.GetGlobalAnalytics(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve analytics", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Analytics retrieved successfully", analytics, nil)
}
