package chat

import "strings"

// PayloadKind tags a parsed button payload.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadSelectBooking
	PayloadSelectEvent
	PayloadNamed
)

const (
	selectBookingPrefix = "SHOW_BOOKING|"
	selectEventPrefix   = "SHOW_EVENT|"
)

// Named button values that carry meaning beyond their intent.
const (
	ValueMainMenu       = "GREETING"
	ValueEndChat        = "END_CHAT"
	ValueListBookings   = "ALL_BOOKINGS"
	ValueListEvents     = "ALL_EVENTS"
	ValueContactSupport = "CONTACT_SUPPORT"
)

// Payload is a button value parsed once at the boundary. ID is set for the
// selection kinds, Value for PayloadNamed.
type Payload struct {
	Kind  PayloadKind
	ID    string
	Value string
}

// ParsePayload splits a raw button value. The id segment is kept verbatim.
func ParsePayload(raw string) Payload {
	if raw == "" {
		return Payload{Kind: PayloadNone}
	}
	if id, ok := strings.CutPrefix(raw, selectBookingPrefix); ok {
		return Payload{Kind: PayloadSelectBooking, ID: id}
	}
	if id, ok := strings.CutPrefix(raw, selectEventPrefix); ok {
		return Payload{Kind: PayloadSelectEvent, ID: id}
	}
	return Payload{Kind: PayloadNamed, Value: raw}
}

// BookingPayload builds the button value that selects a booking.
func BookingPayload(id string) string { return selectBookingPrefix + id }

// EventPayload builds the button value that selects an event.
func EventPayload(id string) string { return selectEventPrefix + id }

func (p Payload) is(value string) bool {
	return p.Kind == PayloadNamed && p.Value == value
}
