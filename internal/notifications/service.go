package notifications

import (
	"context"
	"fmt"

	"wildquest/pkg/logger"

	"github.com/google/uuid"
)

// Service is the facade the domain packages publish through. It is
// nil-safe: a nil Service (Kafka disabled) silently drops messages, so
// the absence of the bus never fails a booking.
type Service struct {
	producer Producer
	log      *logger.Logger
}

func NewService(producer Producer, log *logger.Logger) *Service {
	return &Service{producer: producer, log: log}
}

func (s *Service) publish(ctx context.Context, notification *Notification) error {
	if s == nil || s.producer == nil {
		return nil
	}
	if err := s.producer.Publish(ctx, notification); err != nil {
		s.log.Warn("failed to publish notification",
			"type", notification.Type,
			"recipient", notification.RecipientEmail,
			"error", err,
		)
		return err
	}
	return nil
}

// PublishBookingConfirmed notifies the customer that their booking was
// received and is awaiting payment.
func (s *Service) PublishBookingConfirmed(ctx context.Context, bookingID, eventID uuid.UUID, email, name, eventTitle string, participants int, total float64) error {
	n := NewNotification(TypeBookingConfirmed, email, name)
	n.BookingID = &bookingID
	n.EventID = &eventID
	n.Subject = fmt.Sprintf("Booking confirmed for %s", eventTitle)
	n.TemplateData["event_title"] = eventTitle
	n.TemplateData["booking_id"] = bookingID.String()
	n.TemplateData["participants"] = participants
	n.TemplateData["total_amount"] = total
	return s.publish(ctx, n)
}

// PublishBookingCancelled notifies the customer of a cancellation.
func (s *Service) PublishBookingCancelled(ctx context.Context, bookingID, eventID uuid.UUID, email, name, eventTitle string) error {
	n := NewNotification(TypeBookingCancelled, email, name)
	n.BookingID = &bookingID
	n.EventID = &eventID
	n.Subject = fmt.Sprintf("Booking cancelled for %s", eventTitle)
	n.TemplateData["event_title"] = eventTitle
	n.TemplateData["booking_id"] = bookingID.String()
	return s.publish(ctx, n)
}

// PublishPaymentCompleted notifies the customer of a successful payment.
func (s *Service) PublishPaymentCompleted(ctx context.Context, bookingID uuid.UUID, email, name string, amount float64) error {
	n := NewNotification(TypePaymentCompleted, email, name)
	n.BookingID = &bookingID
	n.Subject = "Payment received"
	n.TemplateData["booking_id"] = bookingID.String()
	n.TemplateData["amount"] = amount
	return s.publish(ctx, n)
}

// PublishWhatsAppRequestReceived alerts staff to a new WhatsApp intake.
func (s *Service) PublishWhatsAppRequestReceived(ctx context.Context, eventID uuid.UUID, staffEmail, customerName, customerPhone, eventTitle string) error {
	n := NewNotification(TypeWhatsAppRequestReceived, staffEmail, "Bookings Desk")
	n.EventID = &eventID
	n.RecipientPhone = customerPhone
	n.Subject = fmt.Sprintf("New WhatsApp booking request for %s", eventTitle)
	n.TemplateData["event_title"] = eventTitle
	n.TemplateData["customer_name"] = customerName
	n.TemplateData["customer_phone"] = customerPhone
	return s.publish(ctx, n)
}

// Close shuts the underlying producer down.
func (s *Service) Close() error {
	if s == nil || s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
