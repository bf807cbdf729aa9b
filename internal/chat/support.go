package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ticketdesk-backend/internal/log"
	"ticketdesk-backend/internal/types"
)

const (
	guestName    = "Guest User"
	guestEmail   = "Not Logged In"
	notAvailable = "N/A"
)

// handlePaymentIssue lists pending bookings, or hands a waiting turn to the
// support-request flow.
func (e *Engine) handlePaymentIssue(ctx context.Context, t turn, st types.SessionState) (types.ChatTurnResponse, error) {
	if st.Waiting() {
		return e.handleSupportRequest(ctx, t, st)
	}

	var pending []types.Booking
	if t.email != "" {
		user, err := e.store.GetUserByEmail(ctx, t.email)
		if err != nil {
			return types.ChatTurnResponse{}, fmt.Errorf("get user: %w", err)
		}
		if user != nil {
			pending, err = e.store.ListUserBookings(ctx, user.ID, types.BookingStatusPending, pendingLookupLimit)
			if err != nil {
				return types.ChatTurnResponse{}, fmt.Errorf("list pending bookings for user %s: %w", user.ID, err)
			}
		}
	}
	if len(pending) == 0 {
		return reply(msgPaymentInfo, st, mainMenuOption(), endChatOption()), nil
	}
	if len(pending) > pendingLookupLimit {
		pending = pending[:pendingLookupLimit]
	}

	var sb strings.Builder
	sb.WriteString(msgPaymentPendingHeader)
	sb.WriteString("\n\n")
	for _, b := range pending {
		fmt.Fprintf(&sb, "**%s**\n", b.EventTitle)
		fmt.Fprintf(&sb, "- Booking ID: %s\n", b.ID)
		fmt.Fprintf(&sb, "- Amount: %s\n", e.format.money(b.TotalAmount))
		fmt.Fprintf(&sb, "- Status: %s\n\n", paymentFailedStatus)
	}
	sb.WriteString(msgPaymentPendingFooter)

	// Newest pending booking becomes the context for a support request.
	st.SelectedBookingID = pending[0].ID
	return reply(sb.String(), st,
		supportOption(),
		types.Option{Label: labelMyBookings, Value: ValueListBookings},
	), nil
}

// handleSupportRequest collects one free-text description and forwards it,
// with the user and booking context, to the support inbox.
func (e *Engine) handleSupportRequest(ctx context.Context, t turn, st types.SessionState) (types.ChatTurnResponse, error) {
	if !st.Waiting() {
		st.CurrentIntent = types.IntentEscalate
		st.State = types.StateIntentFlow
		st.SubState = types.SubStateWaitingForInput
		resp := reply(msgSupportPrompt, st)
		resp.Type = types.ResponseTypeSupportQuery
		return resp, nil
	}

	issue := strings.TrimSpace(t.req.Message)
	if issue == "" {
		resp := reply(msgSupportEmpty, st)
		resp.Type = types.ResponseTypeSupportQuery
		return resp, nil
	}

	req := e.buildSupportRequest(ctx, t, st, issue)
	subject := fmt.Sprintf("Support request from %s", req.UserName)
	if req.BookingID != notAvailable {
		subject += " (booking " + req.BookingID + ")"
	}
	if e.notifier != nil {
		e.notifier.Notify(ctx, t.email, subject, req.render(), e.supportInbox)
	}
	supportRequestsTotal.Inc()

	st.SubState = types.SubStateNone
	st.CurrentIntent = ""
	st.State = types.StateResolution
	return reply(msgSupportReceived, st, mainMenuOption(), endChatOption()), nil
}

// supportRequest is the context bundle sent to the support team.
type supportRequest struct {
	UserName      string
	UserEmail     string
	BookingID     string
	EventTitle    string
	EventDate     string
	Status        string
	TransactionID string
	Amount        string
	Message       string
	SubmittedAt   time.Time
}

// buildSupportRequest gathers context best-effort: lookup failures fall back
// to placeholders so the request is still delivered.
func (e *Engine) buildSupportRequest(ctx context.Context, t turn, st types.SessionState, issue string) supportRequest {
	logger := log.FromContext(ctx, "chat")
	req := supportRequest{
		UserName:      guestName,
		UserEmail:     guestEmail,
		BookingID:     notAvailable,
		EventTitle:    notAvailable,
		EventDate:     notAvailable,
		Status:        notAvailable,
		TransactionID: notAvailable,
		Amount:        notAvailable,
		Message:       issue,
		SubmittedAt:   e.now(),
	}

	if t.email != "" {
		user, err := e.store.GetUserByEmail(ctx, t.email)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("support request: user lookup failed")
		case user != nil:
			req.UserName = orDefault(user.Name, guestName)
			req.UserEmail = orDefault(user.Email, t.email)
		}
	}

	if st.SelectedBookingID != "" {
		b, err := e.store.GetBooking(ctx, st.SelectedBookingID)
		switch {
		case err != nil:
			logger.Warn().Err(err).Str("booking_id", st.SelectedBookingID).Msg("support request: booking lookup failed")
		case b != nil:
			req.BookingID = b.ID
			req.EventTitle = orDefault(b.EventTitle, notAvailable)
			req.EventDate = e.format.date(b.EventDate)
			req.Status = title(b.Status)
			req.TransactionID = orDefault(b.TransactionID, notAvailable)
			req.Amount = e.format.money(b.TotalAmount)
		}
	}
	return req
}

// render produces the markdown document delivered to the support inbox.
func (r supportRequest) render() string {
	var sb strings.Builder
	sb.WriteString("# New support request\n\n")
	sb.WriteString("## Customer\n\n")
	fmt.Fprintf(&sb, "- **Name:** %s\n", r.UserName)
	fmt.Fprintf(&sb, "- **Email:** %s\n\n", r.UserEmail)
	sb.WriteString("## Booking\n\n")
	fmt.Fprintf(&sb, "- **Booking ID:** %s\n", r.BookingID)
	fmt.Fprintf(&sb, "- **Event:** %s\n", r.EventTitle)
	fmt.Fprintf(&sb, "- **Event date:** %s\n", r.EventDate)
	fmt.Fprintf(&sb, "- **Status:** %s\n", r.Status)
	fmt.Fprintf(&sb, "- **Transaction ID:** %s\n", r.TransactionID)
	fmt.Fprintf(&sb, "- **Amount:** %s\n\n", r.Amount)
	sb.WriteString("## Message\n\n")
	for _, line := range strings.Split(r.Message, "\n") {
		fmt.Fprintf(&sb, "> %s\n", line)
	}
	fmt.Fprintf(&sb, "\nSubmitted at %s\n", r.SubmittedAt.UTC().Format(time.RFC1123))
	return sb.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
