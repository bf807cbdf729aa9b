package chat

import (
	"context"
	"fmt"

	"ticketdesk-backend/internal/types"
)

func (e *Engine) handleGreeting(context.Context, turn, types.SessionState) (types.ChatTurnResponse, error) {
	return e.mainMenu(), nil
}

func (e *Engine) handleSomethingElse(_ context.Context, _ turn, st types.SessionState) (types.ChatTurnResponse, error) {
	return reply(fmt.Sprintf(msgSomethingElse, e.publicSupportEmail), st, supportOption(), mainMenuOption()), nil
}

func (e *Engine) handleEntryInfo(_ context.Context, _ turn, st types.SessionState) (types.ChatTurnResponse, error) {
	return reply(msgEntryInfo, st,
		types.Option{Label: labelMyBookings, Value: ValueListBookings},
		mainMenuOption(),
	), nil
}
