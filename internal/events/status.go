package events

// EventStatus is the publication lifecycle of an event.
// Events are never hard-deleted once bookings reference them; staff move
// them through these states instead.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusSuspended EventStatus = "suspended"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusSuspended, EventStatusCancelled:
		return true
	}
	return false
}

// CanAcceptBookings reports whether bookings may be created against an
// event in this status. Deadline and capacity are checked separately.
func (s EventStatus) CanAcceptBookings() bool {
	return s == EventStatusPublished
}

// CanBeUpdated reports whether staff may still edit the event.
func (s EventStatus) CanBeUpdated() bool {
	return s == EventStatusDraft || s == EventStatusPublished || s == EventStatusSuspended
}

// CanBeDeleted reports whether the event may be removed outright.
// Only drafts qualify; everything else is soft-cancelled.
func (s EventStatus) CanBeDeleted() bool {
	return s == EventStatusDraft
}
