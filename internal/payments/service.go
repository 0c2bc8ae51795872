package payments

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"wildquest/internal/bookings"
	"wildquest/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingClosed   = errors.New("booking does not accept payments")
	ErrNothingToPay    = errors.New("booking is already fully paid")
	ErrOverpayment     = errors.New("amount exceeds the outstanding balance")
)

// BookingService is the slice of the bookings service payments needs:
// looking a booking up and promoting it once it is fully paid.
type BookingService interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// Service records payments against bookings. A booking is promoted to
// paid when its completed payments cover the total, so deposits and
// split payments work without special cases.
type Service interface {
	InitiatePayment(ctx context.Context, req *InitiatePaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	HandleGatewayCallback(ctx context.Context, paymentID uuid.UUID, req *GatewayCallbackRequest) (*Payment, error)
	RefundPayment(ctx context.Context, id uuid.UUID, reason string) (*Payment, error)
	GetBookingPaymentSummary(ctx context.Context, bookingID uuid.UUID) (*BookingPaymentSummary, error)
}

type service struct {
	repo       Repository
	bookingSvc BookingService
	log        *logger.Logger
}

func NewService(repo Repository, bookingSvc BookingService, log *logger.Logger) Service {
	return &service{repo: repo, bookingSvc: bookingSvc, log: log}
}

// InitiatePayment opens a pending payment. When no amount is given the
// full outstanding balance is assumed.
func (s *service) InitiatePayment(ctx context.Context, req *InitiatePaymentRequest) (*Payment, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookingSvc.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	switch booking.Status {
	case bookings.StatusCancelled, bookings.StatusCompleted:
		return nil, ErrBookingClosed
	}

	paid, err := s.repo.SumCompletedByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	balance := round2(booking.TotalAmount - paid)
	if balance <= 0 {
		return nil, ErrNothingToPay
	}

	amount := balance
	if req.Amount != nil {
		amount = round2(*req.Amount)
		if amount > balance {
			return nil, ErrOverpayment
		}
	}

	payment := &Payment{
		BookingID:   bookingID,
		Amount:      amount,
		Method:      PaymentMethod(req.Method),
		Status:      PaymentPending,
		Notes:       strings.TrimSpace(req.Notes),
		InitiatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("payment initiated",
		"payment_id", payment.ID,
		"booking_id", bookingID,
		"amount", amount,
		"method", payment.Method,
	)
	return payment, nil
}

func (s *service) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// HandleGatewayCallback applies a gateway status update. The first
// callback that completes coverage of the booking total promotes the
// booking to paid; a replayed callback fails the transition guard and
// cannot promote twice.
func (s *service) HandleGatewayCallback(ctx context.Context, paymentID uuid.UUID, req *GatewayCallbackRequest) (*Payment, error) {
	to := PaymentStatus(req.Status)

	updates := map[string]interface{}{}
	if req.GatewayReference != "" {
		updates["gateway_reference"] = req.GatewayReference
	}
	if req.FailureReason != "" {
		updates["failure_reason"] = req.FailureReason
	}

	payment, err := s.repo.TransitionStatus(ctx, paymentID, to, updates)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if to == PaymentCompleted {
		s.log.LogPaymentCompleted(ctx, payment.ID.String(), payment.BookingID.String(), payment.Amount)
		s.promoteIfSettled(ctx, payment.BookingID)
	}

	return payment, nil
}

// promoteIfSettled moves the booking to paid once completed payments
// cover its total. Promotion failure is logged, not returned: the money
// has moved and the payment record must stand.
func (s *service) promoteIfSettled(ctx context.Context, bookingID uuid.UUID) {
	booking, err := s.bookingSvc.GetBooking(ctx, bookingID)
	if err != nil {
		s.log.Warn("failed to load booking after payment", "booking_id", bookingID, "error", err)
		return
	}
	if booking.Status == bookings.StatusPaid || booking.Status == bookings.StatusCompleted {
		return
	}

	paid, err := s.repo.SumCompletedByBooking(ctx, bookingID)
	if err != nil {
		s.log.Warn("failed to sum payments after completion", "booking_id", bookingID, "error", err)
		return
	}
	if paid+0.005 < booking.TotalAmount {
		return
	}

	if _, err := s.bookingSvc.MarkPaid(ctx, bookingID); err != nil {
		s.log.Warn("failed to promote booking to paid", "booking_id", bookingID, "error", err)
	}
}

func (s *service) RefundPayment(ctx context.Context, id uuid.UUID, reason string) (*Payment, error) {
	updates := map[string]interface{}{}
	if reason != "" {
		updates["notes"] = reason
	}
	payment, err := s.repo.TransitionStatus(ctx, id, PaymentRefunded, updates)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	s.log.Info("payment refunded", "payment_id", payment.ID, "booking_id", payment.BookingID, "amount", payment.Amount)
	return payment, nil
}

func (s *service) GetBookingPaymentSummary(ctx context.Context, bookingID uuid.UUID) (*BookingPaymentSummary, error) {
	booking, err := s.bookingSvc.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	payments, err := s.repo.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	paid, err := s.repo.SumCompletedByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	balance := round2(booking.TotalAmount - paid)
	if balance < 0 {
		balance = 0
	}

	return &BookingPaymentSummary{
		BookingID:   bookingID,
		TotalAmount: booking.TotalAmount,
		PaidAmount:  round2(paid),
		Balance:     balance,
		Payments:    payments,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
