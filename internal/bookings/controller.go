package bookings

import (
	"context"
	"errors"
	"net/http"

	"wildquest/internal/capacity"
	"wildquest/internal/pricing"
	"wildquest/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateBooking(c *gin.Context)
	GetBooking(c *gin.Context)
	ListBookings(c *gin.Context)
	ConfirmBooking(c *gin.Context)
	MarkPaid(c *gin.Context)
	CompleteBooking(c *gin.Context)
	CancelBooking(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrTierNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Pricing tier not found", nil, nil)
		case errors.Is(err, ErrBookingClosed):
			response.RespondJSON(c, "error", http.StatusConflict, "Event is not open for booking", nil, nil)
		case errors.Is(err, capacity.ErrBelowMinimumParticipants),
			errors.Is(err, capacity.ErrAboveMaximumParticipants),
			errors.Is(err, pricing.ErrInvalidParticipantCount):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, capacity.ErrInsufficientSpots),
			errors.Is(err, capacity.ErrTierInsufficientSpots):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create booking", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve booking", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) ListBookings(c *gin.Context) {
	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.ListBookings(c.Request.Context(), &query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list bookings", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

func (ctrl *controller) ConfirmBooking(c *gin.Context) {
	ctrl.transition(c, ctrl.service.ConfirmBooking, "Booking confirmed successfully")
}

func (ctrl *controller) MarkPaid(c *gin.Context) {
	ctrl.transition(c, ctrl.service.MarkPaid, "Booking marked as paid")
}

func (ctrl *controller) CompleteBooking(c *gin.Context) {
	ctrl.transition(c, ctrl.service.CompleteBooking, "Booking completed successfully")
}

func (ctrl *controller) CancelBooking(c *gin.Context) {
	ctrl.transition(c, ctrl.service.CancelBooking, "Booking cancelled successfully")
}

func (ctrl *controller) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*Booking, error), okMessage string) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	booking, err := op(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrInvalidTransition):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update booking", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, okMessage, booking, nil)
}
