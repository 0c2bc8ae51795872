package reviews

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
	SubmitReview(c *gin.Context)
	GetEventReviews(c *gin.Context)
	GetEventRating(c *gin.Context)
	ListReviews(c *gin.Context)
	ApproveReview(c *gin.Context)
	RejectReview(c *gin.Context)
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

func (ctrl *controller) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	review, err := ctrl.service.SubmitReview(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrBookingMismatch):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrAlreadyReviewed):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to submit review", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Review submitted for moderation", review, nil)
}

func (ctrl *controller) GetEventReviews(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := ctrl.service.GetEventReviews(c.Request.Context(), eventID, page, limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve reviews", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reviews retrieved successfully", result, nil)
}

func (ctrl *controller) GetEventRating(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	rating, err := ctrl.service.GetEventRating(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve rating", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Rating retrieved successfully", rating, nil)
}

func (ctrl *controller) ListReviews(c *gin.Context) {
	var query ReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.ListReviews(c.Request.Context(), &query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list reviews", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reviews retrieved successfully", result, nil)
}

func (ctrl *controller) ApproveReview(c *gin.Context) {
	ctrl.moderate(c, ctrl.service.ApproveReview, "Review approved successfully")
}

func (ctrl *controller) RejectReview(c *gin.Context) {
	ctrl.moderate(c, ctrl.service.RejectReview, "Review rejected successfully")
}

func (ctrl *controller) moderate(c *gin.Context, op func(ctx context.Context, id, staffID uuid.UUID) (*Review, error), okMessage string) {
	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid review ID", nil, err.Error())
		return
	}

	staffID, ok := staffUUID(c)
	if !ok {
		return
	}

	review, err := op(c.Request.Context(), reviewID, staffID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Review not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to moderate review", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, okMessage, review, nil)
}
