package types

import "encoding/json"

// Intent names a conversation topic. EndChat is a control signal, not a topic.
type Intent string

const (
	IntentGreeting      Intent = "GREETING"
	IntentMyBooking     Intent = "MY_BOOKING"
	IntentEventDetails  Intent = "EVENT_DETAILS"
	IntentPaymentIssue  Intent = "PAYMENT_ISSUE"
	IntentRefund        Intent = "REFUND"
	IntentEntryInfo     Intent = "ENTRY_INFO"
	IntentVenueInfo     Intent = "VENUE_INFO"
	IntentEscalate      Intent = "ESCALATE"
	IntentSomethingElse Intent = "SOMETHING_ELSE"
	IntentUnknown       Intent = "UNKNOWN"
	IntentEndChat       Intent = "END_CHAT"
)

// Known reports whether i is one of the closed set of intents.
func (i Intent) Known() bool {
	switch i {
	case IntentGreeting, IntentMyBooking, IntentEventDetails, IntentPaymentIssue,
		IntentRefund, IntentEntryInfo, IntentVenueInfo, IntentEscalate,
		IntentSomethingElse, IntentUnknown, IntentEndChat:
		return true
	}
	return false
}

// ConversationState is the macro phase of a conversation, mostly a UI hint.
type ConversationState string

const (
	StateGreeting        ConversationState = "GREETING"
	StateIntentSelection ConversationState = "INTENT_SELECTION"
	StateIntentFlow      ConversationState = "INTENT_FLOW"
	StateResolution      ConversationState = "RESOLUTION"
	StateFollowUp        ConversationState = "FOLLOW_UP"
	StateEnd             ConversationState = "END"
)

// SubState marks a pending free-text turn for the locked intent.
type SubState string

const (
	SubStateNone            SubState = ""
	SubStateWaitingForInput SubState = "WAITING_FOR_INPUT"
)

// SessionState is the context object the client echoes back on every turn.
// The zero value of each optional field is sent as JSON null.
type SessionState struct {
	State             ConversationState
	CurrentIntent     Intent
	SubState          SubState
	SelectedBookingID string
	SelectedEventID   string
}

// NewSessionState returns the state of a session that has not started yet.
func NewSessionState() SessionState {
	return SessionState{State: StateGreeting}
}

// Waiting reports whether the next free-text turn belongs to the locked intent.
func (s SessionState) Waiting() bool {
	return s.SubState == SubStateWaitingForInput
}

type sessionStateJSON struct {
	State             ConversationState `json:"state"`
	CurrentIntent     *Intent           `json:"currentIntent"`
	SubState          *SubState         `json:"subState"`
	SelectedBookingID *string           `json:"selectedBookingId"`
	SelectedEventID   *string           `json:"selectedEventId"`
}

func nullable[T ~string](v T) *T {
	if v == "" {
		return nil
	}
	return &v
}

func deref[T ~string](p *T) T {
	if p == nil {
		return ""
	}
	return *p
}

func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionStateJSON{
		State:             s.State,
		CurrentIntent:     nullable(s.CurrentIntent),
		SubState:          nullable(s.SubState),
		SelectedBookingID: nullable(s.SelectedBookingID),
		SelectedEventID:   nullable(s.SelectedEventID),
	})
}

func (s *SessionState) UnmarshalJSON(b []byte) error {
	var raw sessionStateJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = SessionState{
		State:             raw.State,
		CurrentIntent:     deref(raw.CurrentIntent),
		SubState:          deref(raw.SubState),
		SelectedBookingID: deref(raw.SelectedBookingID),
		SelectedEventID:   deref(raw.SelectedEventID),
	}
	if s.State == "" {
		s.State = StateGreeting
	}
	return nil
}

// ChatTurnRequest is one user turn. Intent carries a button payload.
type ChatTurnRequest struct {
	Message      string        `json:"message,omitempty"`
	Intent       string        `json:"intent,omitempty"`
	UserEmail    string        `json:"userEmail,omitempty"`
	SessionState *SessionState `json:"sessionState"`
}

// Option is one selectable choice rendered as a button by the client.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Response type hints understood by the client.
const (
	ResponseTypeOptions      = "options"
	ResponseTypeEndChat      = "end_chat"
	ResponseTypeSupportQuery = "input_support_query"
)

// ChatTurnResponse is the reply to a turn. A nil NewState ends the conversation.
type ChatTurnResponse struct {
	Message  string        `json:"message"`
	Type     string        `json:"type,omitempty"`
	Options  []Option      `json:"options,omitempty"`
	Intent   Intent        `json:"intent,omitempty"`
	NewState *SessionState `json:"newState"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
