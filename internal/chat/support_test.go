package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk-backend/internal/types"
)

func TestPaymentIssueListsPendingBookings(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	resp := turnOK(t, e, types.ChatTurnRequest{Intent: "PAYMENT_FAILED", UserEmail: "asha@example.com"})
	assert.Equal(t, types.IntentPaymentIssue, resp.Intent)
	for _, want := range []string{
		msgPaymentPendingHeader,
		"**Jazz Brunch**",
		"- Booking ID: bk-2",
		"- Amount: INR 799.00",
		"- Status: Payment Failed",
		msgPaymentPendingFooter,
	} {
		assert.Contains(t, resp.Message, want)
	}
	assert.NotContains(t, resp.Message, "bk-1")
	assert.Equal(t, []string{ValueContactSupport, ValueListBookings}, optionValues(resp.Options))
	require.NotNil(t, resp.NewState)
	assert.Equal(t, "bk-2", resp.NewState.SelectedBookingID)
}

func TestPaymentIssueWithoutPending(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	for _, email := range []string{"", "ben@example.com", "ghost@example.com"} {
		resp := turnOK(t, e, types.ChatTurnRequest{Message: "my payment failed", UserEmail: email})
		assert.Equal(t, msgPaymentInfo, resp.Message, email)
		assert.Equal(t, []string{ValueMainMenu, ValueEndChat}, optionValues(resp.Options))
	}
}

func TestPaymentIssueWaitingHandsOffToSupport(t *testing.T) {
	e, n := newTestEngine(t, nil)

	prior := types.SessionState{
		State:             types.StateIntentFlow,
		CurrentIntent:     types.IntentPaymentIssue,
		SubState:          types.SubStateWaitingForInput,
		SelectedBookingID: "bk-2",
	}
	resp := turnOK(t, e, types.ChatTurnRequest{
		Message:      "I was charged but the booking is still pending",
		UserEmail:    "asha@example.com",
		SessionState: &prior,
	})
	assert.Equal(t, types.IntentPaymentIssue, resp.Intent)
	assert.Equal(t, msgSupportReceived, resp.Message)
	require.NotNil(t, resp.NewState)
	assert.Equal(t, types.StateResolution, resp.NewState.State)
	assert.Equal(t, types.SubStateNone, resp.NewState.SubState)

	sent := n.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Support request from Asha Rao (booking bk-2)", sent[0].subject)
	assert.Contains(t, sent[0].body, "**Status:** Pending")
}

func TestSupportRequestRender(t *testing.T) {
	req := supportRequest{
		UserName:      "Asha Rao",
		UserEmail:     "asha@example.com",
		BookingID:     "bk-1",
		EventTitle:    "Indie Night",
		EventDate:     "Thu, 14 Mar 2030 · 7:30 PM",
		Status:        "Confirmed",
		TransactionID: "txn-001",
		Amount:        "INR 998.00",
		Message:       "line one\nline two",
		SubmittedAt:   time.Date(2030, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	out := req.render()
	assert.Contains(t, out, "# New support request")
	assert.Contains(t, out, "> line one\n> line two\n")
	assert.Contains(t, out, "Submitted at Sun, 10 Mar 2030 12:00:00 UTC")
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", orDefault("  ", "fallback"))
	assert.Equal(t, "value", orDefault("value", "fallback"))
}
