package payments

import (
	"errors"
	"net/http"

	"wildquest/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	InitiatePayment(c *gin.Context)
	GetPayment(c *gin.Context)
	GatewayCallback(c *gin.Context)
	RefundPayment(c *gin.Context)
	GetBookingPaymentSummary(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) InitiatePayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	payment, err := ctrl.service.InitiatePayment(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrBookingClosed), errors.Is(err, ErrNothingToPay):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case errors.Is(err, ErrOverpayment):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to initiate payment", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Payment initiated successfully", payment, nil)
}

func (ctrl *controller) GetPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid payment ID", nil, err.Error())
		return
	}

	payment, err := ctrl.service.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Payment not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve payment", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment retrieved successfully", payment, nil)
}

func (ctrl *controller) GatewayCallback(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid payment ID", nil, err.Error())
		return
	}

	var req GatewayCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	payment, err := ctrl.service.HandleGatewayCallback(c.Request.Context(), paymentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Payment not found", nil, nil)
		case errors.Is(err, ErrInvalidTransition):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to process callback", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment updated successfully", payment, nil)
}

func (ctrl *controller) RefundPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid payment ID", nil, err.Error())
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"max=300"`
	}
	_ = c.ShouldBindJSON(&req)

	payment, err := ctrl.service.RefundPayment(c.Request.Context(), paymentID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Payment not found", nil, nil)
		case errors.Is(err, ErrInvalidTransition):
			response.RespondJSON(c, "error", http.StatusConflict, "Only completed payments can be refunded", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to refund payment", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment refunded successfully", payment, nil)
}

func (ctrl *controller) GetBookingPaymentSummary(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	summary, err := ctrl.service.GetBookingPaymentSummary(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve payment summary", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment summary retrieved successfully", summary, nil)
}
