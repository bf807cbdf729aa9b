package chat

import (
	"context"
	"fmt"
	"strings"

	"ticketdesk-backend/internal/types"
)

func (e *Engine) handleMyBooking(ctx context.Context, t turn, st types.SessionState) (types.ChatTurnResponse, error) {
	id := ""
	switch {
	case t.payload.Kind == PayloadSelectBooking:
		id = t.payload.ID
	case !t.payload.is(ValueListBookings):
		id = st.SelectedBookingID
	}
	if id == "" {
		return e.listBookings(ctx, t, st, msgBookingList)
	}

	b, err := e.store.GetBooking(ctx, id)
	if err != nil {
		return types.ChatTurnResponse{}, fmt.Errorf("get booking %s: %w", id, err)
	}
	if b == nil {
		st.SelectedBookingID = ""
		return reply(msgBookingGone, st,
			types.Option{Label: labelMyBookings, Value: ValueListBookings},
			mainMenuOption(),
		), nil
	}

	st.SelectedBookingID = b.ID
	st.State = types.StateFollowUp
	return reply(e.bookingSummary(b), st,
		types.Option{Label: labelOtherBookings, Value: ValueListBookings},
		types.Option{Label: labelCancelBooking, Value: string(types.IntentRefund)},
		mainMenuOption(),
	), nil
}

// listBookings offers the user's recent bookings as selectable options. The
// selection is always reset so the next choice is explicit.
func (e *Engine) listBookings(ctx context.Context, t turn, st types.SessionState, header string) (types.ChatTurnResponse, error) {
	st.SelectedBookingID = ""
	if t.email == "" {
		return reply(msgLoginRequired, st, mainMenuOption()), nil
	}

	user, err := e.store.GetUserByEmail(ctx, t.email)
	if err != nil {
		return types.ChatTurnResponse{}, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return reply(msgNoBookings, st,
			types.Option{Label: labelBrowseEvents, Value: ValueListEvents},
			mainMenuOption(),
		), nil
	}

	bookings, err := e.store.ListUserBookings(ctx, user.ID, "", bookingListLimit)
	if err != nil {
		return types.ChatTurnResponse{}, fmt.Errorf("list bookings for user %s: %w", user.ID, err)
	}
	if len(bookings) == 0 {
		return reply(msgNoBookings, st,
			types.Option{Label: labelBrowseEvents, Value: ValueListEvents},
			mainMenuOption(),
		), nil
	}
	if len(bookings) > bookingListLimit {
		bookings = bookings[:bookingListLimit]
	}

	opts := make([]types.Option, 0, len(bookings)+1)
	for _, b := range bookings {
		opts = append(opts, types.Option{
			Label: fmt.Sprintf("%s · %s · %s", b.EventTitle, e.format.shortDate(b.EventDate), title(b.Status)),
			Value: BookingPayload(b.ID),
		})
	}
	opts = append(opts, mainMenuOption())
	return reply(header, st, opts...), nil
}

func (e *Engine) bookingSummary(b *types.Booking) string {
	var sb strings.Builder
	sb.WriteString("🎫 **Booking Summary**\n\n")
	fmt.Fprintf(&sb, "**Event:** %s\n", b.EventTitle)
	fmt.Fprintf(&sb, "**Date:** %s\n", e.format.date(b.EventDate))
	fmt.Fprintf(&sb, "**Booking ID:** %s\n\n", b.ID)
	if len(b.Items) > 0 {
		sb.WriteString("**Tickets:**\n")
		for _, it := range b.Items {
			fmt.Fprintf(&sb, "- %s × %d: %s\n", it.TierName, it.Quantity, e.format.money(it.UnitPrice*float64(it.Quantity)))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "**Total:** %s\n", e.format.money(b.TotalAmount))
	fmt.Fprintf(&sb, "**Status:** %s", title(b.Status))
	return sb.String()
}

// handleRefund only informs; it never changes a booking.
func (e *Engine) handleRefund(ctx context.Context, t turn, st types.SessionState) (types.ChatTurnResponse, error) {
	if st.SelectedBookingID == "" {
		return e.listBookings(ctx, t, st, msgRefundSelect)
	}

	b, err := e.store.GetBooking(ctx, st.SelectedBookingID)
	if err != nil {
		return types.ChatTurnResponse{}, fmt.Errorf("get booking %s: %w", st.SelectedBookingID, err)
	}
	if b == nil {
		st.SelectedBookingID = ""
		return reply(msgBookingGone, st,
			types.Option{Label: labelMyBookings, Value: ValueListBookings},
			mainMenuOption(),
		), nil
	}

	st.State = types.StateFollowUp
	if b.Status == types.BookingStatusCancelled {
		return reply(msgRefundCancelled, st, mainMenuOption()), nil
	}

	hours := b.EventDate.Sub(e.now()).Hours()
	if hours < refundCutoffHours {
		msg := fmt.Sprintf(msgRefundIneligible, b.ID, b.EventTitle, max(hours, 0), e.publicSupportEmail)
		return reply(msg, st, supportOption(), mainMenuOption()), nil
	}
	msg := fmt.Sprintf(msgRefundEligible, b.ID, b.EventTitle)
	return reply(msg, st,
		types.Option{Label: labelViewBooking, Value: BookingPayload(b.ID)},
		mainMenuOption(),
	), nil
}
