// Package chat implements the support-chat dialogue engine: a stateless
// state machine whose only memory is the SessionState echoed by the client.
package chat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"ticketdesk-backend/internal/log"
	"ticketdesk-backend/internal/types"
)

// Store is the read-only view of the ticketing data the engine needs.
// Lookups by id return (nil, nil) when nothing matches.
type Store interface {
	GetBooking(ctx context.Context, id string) (*types.Booking, error)
	// ListUserBookings returns newest-first bookings, filtered by status when non-empty.
	ListUserBookings(ctx context.Context, userID, status string, limit int) ([]types.Booking, error)
	GetEventWithTiers(ctx context.Context, id string) (*types.Event, error)
	GetEventLocation(ctx context.Context, id string) (*types.Event, error)
	ListUpcomingEvents(ctx context.Context, from time.Time, limit int) ([]types.Event, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// Notifier delivers a pre-rendered message on a best-effort basis. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, userEmail, subject, body, target string)
}

const (
	bookingListLimit   = 5
	eventListLimit     = 5
	pendingLookupLimit = 3
	// Upcoming events are over-fetched so that de-duplication by title still fills the list.
	upcomingFetchLimit = 20
	refundCutoffHours  = 48
)

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Catalog            *Catalog
	SupportInbox       string
	PublicSupportEmail string
	Currency           string
	Location           *time.Location
	Now                func() time.Time
	// Intn picks the cosmetic entry gate; it must return a value in [0, n).
	Intn func(n int) int
}

type turn struct {
	req     types.ChatTurnRequest
	payload Payload
	email   string
}

type handlerFunc func(ctx context.Context, t turn, st types.SessionState) (types.ChatTurnResponse, error)

// Engine is the turn dispatcher. It is safe for concurrent use.
type Engine struct {
	store    Store
	notifier Notifier
	catalog  *Catalog
	resolver Resolver
	format   formatter
	handlers map[types.Intent]handlerFunc

	supportInbox       string
	publicSupportEmail string
	now                func() time.Time
	intn               func(n int) int
}

func NewEngine(store Store, notifier Notifier, opts Options) *Engine {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}
	if opts.PublicSupportEmail == "" {
		opts.PublicSupportEmail = opts.SupportInbox
	}
	e := &Engine{
		store:              store,
		notifier:           notifier,
		catalog:            opts.Catalog,
		resolver:           NewResolver(opts.Catalog),
		format:             newFormatter(opts.Currency, opts.Location),
		supportInbox:       opts.SupportInbox,
		publicSupportEmail: opts.PublicSupportEmail,
		now:                opts.Now,
		intn:               opts.Intn,
	}
	e.handlers = map[types.Intent]handlerFunc{
		types.IntentGreeting:      e.handleGreeting,
		types.IntentMyBooking:     e.handleMyBooking,
		types.IntentEventDetails:  e.handleEventDetails,
		types.IntentVenueInfo:     e.handleVenueInfo,
		types.IntentRefund:        e.handleRefund,
		types.IntentPaymentIssue:  e.handlePaymentIssue,
		types.IntentEscalate:      e.handleSupportRequest,
		types.IntentSomethingElse: e.handleSomethingElse,
		types.IntentEntryInfo:     e.handleEntryInfo,
	}
	return e
}

// HandleTurn processes one turn. When a handler fails, the returned response
// is the generic failure reply carrying the prior session state and the error
// is non-nil; the response is always safe to send to the client.
func (e *Engine) HandleTurn(ctx context.Context, req types.ChatTurnRequest) (types.ChatTurnResponse, error) {
	logger := log.FromContext(ctx, "chat")

	st := types.NewSessionState()
	if req.SessionState != nil {
		st = *req.SessionState
	}
	prior := st

	if types.Intent(req.Intent) == types.IntentEndChat || e.catalog.IsQuit(req.Message) {
		turnsTotal.WithLabelValues(string(types.IntentEndChat), outcomeEnded).Inc()
		return endResponse(), nil
	}
	if types.Intent(req.Intent) == types.IntentGreeting {
		turnsTotal.WithLabelValues(string(types.IntentGreeting), outcomeOK).Inc()
		return e.mainMenu(), nil
	}

	intent := e.resolver.Resolve(req, st)
	if intent == types.IntentEndChat {
		turnsTotal.WithLabelValues(string(types.IntentEndChat), outcomeEnded).Inc()
		return endResponse(), nil
	}

	if intent != types.IntentUnknown {
		// The waiting flag survives only when the same intent that asked for
		// input is resolved again; compared against the prior lock.
		keepWaiting := prior.Waiting() && waitingIntent(prior) == intent
		st.CurrentIntent = intent
		st.State = types.StateIntentFlow
		if !keepWaiting {
			st.SubState = types.SubStateNone
		}
	} else if st.CurrentIntent == "" {
		st.CurrentIntent = types.IntentSomethingElse
		st.State = types.StateIntentFlow
		st.SubState = types.SubStateNone
	}

	h, ok := e.handlers[st.CurrentIntent]
	if !ok {
		h = e.handleSupportRequest
	}

	t := turn{
		req:     req,
		payload: ParsePayload(req.Intent),
		email:   strings.TrimSpace(req.UserEmail),
	}
	start := time.Now()
	resp, err := e.run(ctx, h, t, st)
	handlerDuration.WithLabelValues(string(st.CurrentIntent)).Observe(time.Since(start).Seconds())
	if err != nil {
		turnsTotal.WithLabelValues(string(st.CurrentIntent), outcomeError).Inc()
		logger.Error().Err(err).
			Str(log.FieldIntent, string(st.CurrentIntent)).
			Msg("chat handler failed")
		return failureResponse(prior), fmt.Errorf("handle %s: %w", st.CurrentIntent, err)
	}
	if resp.Intent == "" {
		resp.Intent = st.CurrentIntent
	}
	turnsTotal.WithLabelValues(string(st.CurrentIntent), outcomeOK).Inc()

	ev := logger.Debug().
		Str(log.FieldIntent, string(st.CurrentIntent)).
		Str(log.FieldOldState, string(prior.State))
	if resp.NewState != nil {
		ev = ev.Str(log.FieldNewState, string(resp.NewState.State))
	}
	ev.Msg("chat turn handled")
	return resp, nil
}

// waitingIntent is the intent a waiting session is locked to. A waiting
// state with no intent belongs to the support-request flow.
func waitingIntent(st types.SessionState) types.Intent {
	if st.CurrentIntent == "" {
		return types.IntentEscalate
	}
	return st.CurrentIntent
}

// run invokes h, converting a panic into an error so one bad turn cannot take the server down.
func (e *Engine) run(ctx context.Context, h handlerFunc, t turn, st types.SessionState) (resp types.ChatTurnResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, t, st)
}

func endResponse() types.ChatTurnResponse {
	return types.ChatTurnResponse{
		Message:  msgChatEnded,
		Type:     types.ResponseTypeEndChat,
		Intent:   types.IntentEndChat,
		NewState: nil,
	}
}

func failureResponse(prior types.SessionState) types.ChatTurnResponse {
	st := prior
	return types.ChatTurnResponse{
		Message:  msgFailure,
		NewState: &st,
	}
}

func (e *Engine) mainMenu() types.ChatTurnResponse {
	opts := make([]types.Option, len(e.catalog.Menu.Options))
	copy(opts, e.catalog.Menu.Options)
	return types.ChatTurnResponse{
		Message:  e.catalog.Menu.Message,
		Type:     types.ResponseTypeOptions,
		Options:  opts,
		Intent:   types.IntentGreeting,
		NewState: &types.SessionState{State: types.StateIntentSelection},
	}
}

func reply(message string, st types.SessionState, opts ...types.Option) types.ChatTurnResponse {
	resp := types.ChatTurnResponse{
		Message:  message,
		NewState: &st,
	}
	if len(opts) > 0 {
		resp.Type = types.ResponseTypeOptions
		resp.Options = opts
	}
	return resp
}

func mainMenuOption() types.Option {
	return types.Option{Label: labelMainMenu, Value: ValueMainMenu}
}

func endChatOption() types.Option {
	return types.Option{Label: labelEndChat, Value: ValueEndChat}
}

func supportOption() types.Option {
	return types.Option{Label: labelTalkToSupport, Value: ValueContactSupport}
}
