package bookings

// BookingMethod records how the booking reached us.
type BookingMethod string

const (
	MethodOnline   BookingMethod = "online"
	MethodWhatsApp BookingMethod = "whatsapp"
	MethodPhone    BookingMethod = "phone"
	MethodEmail    BookingMethod = "email"
)

func (m BookingMethod) IsValid() bool {
	switch m {
	case MethodOnline, MethodWhatsApp, MethodPhone, MethodEmail:
		return true
	}
	return false
}

// ParticipantType classifies a named participant on a booking.
type ParticipantType string

const (
	ParticipantAdult  ParticipantType = "adult"
	ParticipantChild  ParticipantType = "child"
	ParticipantInfant ParticipantType = "infant"
)

func (t ParticipantType) IsValid() bool {
	switch t {
	case ParticipantAdult, ParticipantChild, ParticipantInfant:
		return true
	}
	return false
}
