package chat

import (
	"context"
	"fmt"
	"strings"

	"ticketdesk-backend/internal/types"
)

func (e *Engine) handleEventDetails(ctx context.Context, t turn, st types.SessionState) (types.ChatTurnResponse, error) {
	id := ""
	switch {
	case t.payload.Kind == PayloadSelectEvent:
		id = t.payload.ID
	case !t.payload.is(ValueListEvents):
		id = st.SelectedEventID
	}
	if id == "" {
		return e.listEvents(ctx, st)
	}

	ev, err := e.store.GetEventWithTiers(ctx, id)
	if err != nil {
		return types.ChatTurnResponse{}, fmt.Errorf("get event %s: %w", id, err)
	}
	if ev == nil {
		st.SelectedEventID = ""
		return reply(msgEventGone, st,
			types.Option{Label: labelBrowseEvents, Value: ValueListEvents},
			mainMenuOption(),
		), nil
	}

	st.SelectedEventID = ev.ID
	st.State = types.StateFollowUp
	return reply(e.eventSummary(ev), st,
		types.Option{Label: labelVenueInfo, Value: string(types.IntentVenueInfo)},
		types.Option{Label: labelOtherEvents, Value: ValueListEvents},
		mainMenuOption(),
	), nil
}

func (e *Engine) listEvents(ctx context.Context, st types.SessionState) (types.ChatTurnResponse, error) {
	st.SelectedEventID = ""
	events, err := e.store.ListUpcomingEvents(ctx, e.now(), upcomingFetchLimit)
	if err != nil {
		return types.ChatTurnResponse{}, fmt.Errorf("list upcoming events: %w", err)
	}
	events = uniqueByTitle(events, eventListLimit)
	if len(events) == 0 {
		return reply(msgNoUpcomingEvents, st, mainMenuOption()), nil
	}

	opts := make([]types.Option, 0, len(events)+1)
	for _, ev := range events {
		opts = append(opts, types.Option{
			Label: fmt.Sprintf("%s · %s", ev.Title, e.format.shortDate(ev.EventDate)),
			Value: EventPayload(ev.ID),
		})
	}
	opts = append(opts, mainMenuOption())
	return reply(msgEventList, st, opts...), nil
}

// uniqueByTitle keeps the first event of each title, then truncates to limit.
func uniqueByTitle(events []types.Event, limit int) []types.Event {
	seen := make(map[string]struct{}, len(events))
	out := make([]types.Event, 0, min(len(events), limit))
	for _, ev := range events {
		if _, dup := seen[ev.Title]; dup {
			continue
		}
		seen[ev.Title] = struct{}{}
		out = append(out, ev)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (e *Engine) eventSummary(ev *types.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎭 **%s**\n\n", ev.Title)
	fmt.Fprintf(&sb, "📅 %s\n", e.format.date(ev.EventDate))
	if loc := joinNonEmpty(", ", ev.VenueName, ev.City); loc != "" {
		fmt.Fprintf(&sb, "📍 %s\n", loc)
	}
	sb.WriteString("\n")
	if len(ev.Tiers) > 0 {
		sb.WriteString("**Tickets:**\n")
		for _, tier := range ev.Tiers {
			fmt.Fprintf(&sb, "- %s: %s\n", tier.Name, e.format.money(tier.Price))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "**Availability:** %s", availability(ev))
	return sb.String()
}

func availability(ev *types.Event) string {
	if ev.Remaining() == 0 {
		return "Sold Out"
	}
	return "Available"
}

// handleVenueInfo relies on an event chosen earlier in EVENT_DETAILS.
func (e *Engine) handleVenueInfo(ctx context.Context, _ turn, st types.SessionState) (types.ChatTurnResponse, error) {
	if st.SelectedEventID == "" {
		return reply(msgVenueNeedsEvent, st,
			types.Option{Label: labelBrowseEvents, Value: ValueListEvents},
			mainMenuOption(),
		), nil
	}

	ev, err := e.store.GetEventLocation(ctx, st.SelectedEventID)
	if err != nil {
		return types.ChatTurnResponse{}, fmt.Errorf("get event location %s: %w", st.SelectedEventID, err)
	}
	if ev == nil {
		st.SelectedEventID = ""
		return reply(msgEventGone, st,
			types.Option{Label: labelBrowseEvents, Value: ValueListEvents},
			mainMenuOption(),
		), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📍 **Venue for %s**\n\n", ev.Title)
	fmt.Fprintf(&sb, "**Venue:** %s\n", orNA(ev.VenueName))
	fmt.Fprintf(&sb, "**Address:** %s\n", orNA(joinNonEmpty(", ", ev.Address, ev.City)))
	fmt.Fprintf(&sb, "**Date:** %s", e.format.date(ev.EventDate))
	if gate := e.pickGate(); gate != "" {
		fmt.Fprintf(&sb, "\n**Suggested entry:** %s", gate)
	}

	st.State = types.StateFollowUp
	return reply(sb.String(), st,
		types.Option{Label: labelEventDetails, Value: string(types.IntentEventDetails)},
		mainMenuOption(),
	), nil
}

// pickGate returns a display-only gate label; it is not a real gate assignment.
func (e *Engine) pickGate() string {
	gates := e.catalog.GateLabels
	if len(gates) == 0 {
		return ""
	}
	return gates[e.intn(len(gates))]
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
