package chat

import "ticketdesk-backend/internal/types"

// Resolver maps a raw turn to an intent. It performs no I/O.
type Resolver struct {
	catalog *Catalog
}

func NewResolver(c *Catalog) Resolver {
	return Resolver{catalog: c}
}

// Resolve applies, in order: quit phrases, button payloads, the
// waiting-for-input lock, keyword scanning, and finally IntentUnknown.
func (r Resolver) Resolve(req types.ChatTurnRequest, prior types.SessionState) types.Intent {
	if r.catalog.IsQuit(req.Message) {
		return types.IntentEndChat
	}

	if req.Intent != "" {
		p := ParsePayload(req.Intent)
		switch p.Kind {
		case PayloadSelectBooking:
			return types.IntentMyBooking
		case PayloadSelectEvent:
			return types.IntentEventDetails
		case PayloadNamed:
			if in, ok := r.catalog.button(p.Value); ok {
				return in
			}
		}
	}

	if prior.Waiting() {
		return waitingIntent(prior)
	}

	if in, ok := r.catalog.keyword(req.Message); ok {
		return in
	}
	return types.IntentUnknown
}
