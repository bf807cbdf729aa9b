package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		raw  string
		want Payload
	}{
		{"", Payload{Kind: PayloadNone}},
		{"SHOW_BOOKING|bk-1", Payload{Kind: PayloadSelectBooking, ID: "bk-1"}},
		{"SHOW_BOOKING|", Payload{Kind: PayloadSelectBooking, ID: ""}},
		{"SHOW_EVENT|ev|x", Payload{Kind: PayloadSelectEvent, ID: "ev|x"}},
		{"SHOW_EVENT| ev-1 ", Payload{Kind: PayloadSelectEvent, ID: " ev-1 "}},
		{"ALL_BOOKINGS", Payload{Kind: PayloadNamed, Value: "ALL_BOOKINGS"}},
		{"show_booking|bk-1", Payload{Kind: PayloadNamed, Value: "show_booking|bk-1"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePayload(tt.raw), tt.raw)
	}
}

func TestPayloadBuildersRoundTrip(t *testing.T) {
	for _, id := range []string{"bk-1", "a|b", "ünïcode"} {
		assert.Equal(t, Payload{Kind: PayloadSelectBooking, ID: id}, ParsePayload(BookingPayload(id)))
		assert.Equal(t, Payload{Kind: PayloadSelectEvent, ID: id}, ParsePayload(EventPayload(id)))
	}
}

func TestPayloadIs(t *testing.T) {
	assert.True(t, ParsePayload(ValueListEvents).is(ValueListEvents))
	assert.False(t, ParsePayload(EventPayload("ALL_EVENTS")).is(ValueListEvents))
	assert.False(t, ParsePayload("").is(""))
}
