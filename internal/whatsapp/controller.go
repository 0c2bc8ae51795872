package whatsapp

import (
	"context"
	"errors"
	"net/http"

	"wildquest/internal/bookings"
	"wildquest/internal/capacity"
	"wildquest/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CaptureRequest(c *gin.Context)
	GetRequest(c *gin.Context)
	ListRequests(c *gin.Context)
	MarkContacted(c *gin.Context)
	CloseRequest(c *gin.Context)
	ConvertRequest(c *gin.Context)
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

func (ctrl *controller) CaptureRequest(c *gin.Context) {
	var input CaptureRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.CaptureRequest(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrChannelUnavailable):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to capture request", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Request captured successfully", result, nil)
}

func (ctrl *controller) GetRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request ID", nil, err.Error())
		return
	}

	request, err := ctrl.service.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Request not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve request", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Request retrieved successfully", request, nil)
}

func (ctrl *controller) ListRequests(c *gin.Context) {
	var query RequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.ListRequests(c.Request.Context(), &query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list requests", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Requests retrieved successfully", result, nil)
}

type staffActionInput struct {
	Notes string `json:"notes" binding:"max=2000"`
}

func (ctrl *controller) MarkContacted(c *gin.Context) {
	ctrl.staffAction(c, ctrl.service.MarkContacted, "Request marked as contacted")
}

func (ctrl *controller) CloseRequest(c *gin.Context) {
	ctrl.staffAction(c, ctrl.service.CloseRequest, "Request closed successfully")
}

func (ctrl *controller) staffAction(c *gin.Context, op func(ctx context.Context, id, staffID uuid.UUID, notes string) (*Request, error), okMessage string) {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request ID", nil, err.Error())
		return
	}

	staffID, ok := staffUUID(c)
	if !ok {
		return
	}

	var input staffActionInput
	_ = c.ShouldBindJSON(&input)

	request, err := op(c.Request.Context(), requestID, staffID, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Request not found", nil, nil)
		case errors.Is(err, ErrRequestClosed):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update request", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, okMessage, request, nil)
}

func (ctrl *controller) ConvertRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request ID", nil, err.Error())
		return
	}

	staffID, ok := staffUUID(c)
	if !ok {
		return
	}

	var input ConvertRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.ConvertRequest(c.Request.Context(), requestID, staffID, &input)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Request not found", nil, nil)
		case errors.Is(err, ErrRequestClosed),
			errors.Is(err, bookings.ErrBookingClosed),
			errors.Is(err, capacity.ErrInsufficientSpots),
			errors.Is(err, capacity.ErrTierInsufficientSpots):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case errors.Is(err, bookings.ErrEventNotFound), errors.Is(err, bookings.ErrTierNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, capacity.ErrBelowMinimumParticipants),
			errors.Is(err, capacity.ErrAboveMaximumParticipants):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to convert request", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Request converted to booking successfully", booking, nil)
}
