// Package notify delivers support notifications on a best-effort basis.
package notify

import (
	"bytes"
	"context"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ticketdesk-backend/internal/log"
)

const defaultSendTimeout = 15 * time.Second

// Message is one outbound email. HTML is optional.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer performs a single delivery attempt.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// BridgeOptions configures a Bridge.
type BridgeOptions struct {
	// DefaultTarget receives notifications that name no target address.
	DefaultTarget string
	// Timeout bounds each send attempt.
	Timeout time.Duration
}

// Bridge hands notifications to a Mailer in the background. Send failures
// are logged and counted, never returned.
type Bridge struct {
	mailer        Mailer
	defaultTarget string
	timeout       time.Duration
	md            goldmark.Markdown
	wg            sync.WaitGroup
}

func NewBridge(mailer Mailer, opts BridgeOptions) *Bridge {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultSendTimeout
	}
	return &Bridge{
		mailer:        mailer,
		defaultTarget: opts.DefaultTarget,
		timeout:       opts.Timeout,
		md:            goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Notify queues one send attempt and returns immediately. body is markdown;
// it is sent as the text part and rendered into the HTML part.
func (b *Bridge) Notify(ctx context.Context, userEmail, subject, body, target string) {
	logger := log.FromContext(ctx, "notify")
	if target == "" {
		target = b.defaultTarget
	}
	if target == "" {
		sendsTotal.WithLabelValues(resultDropped).Inc()
		logger.Error().Str("subject", subject).Msg("notification dropped: no target address")
		return
	}

	msg := Message{
		To:      target,
		Subject: subject,
		Text:    body,
		HTML:    b.renderHTML(ctx, body),
	}
	if addr, err := mail.ParseAddress(strings.TrimSpace(userEmail)); err == nil {
		msg.ReplyTo = addr.Address
	} else if userEmail != "" {
		logger.Warn().Err(err).Msg("ignoring unparseable reply-to address")
	}

	// The send outlives the chat turn that triggered it.
	sendCtx := context.WithoutCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.send(sendCtx, msg)
	}()
}

func (b *Bridge) send(ctx context.Context, msg Message) {
	logger := log.FromContext(ctx, "notify")
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			sendsTotal.WithLabelValues(resultFailed).Inc()
			logger.Error().Interface("panic", r).Str("to", msg.To).Msg("notification send panicked")
		}
	}()

	start := time.Now()
	err := b.mailer.Send(ctx, msg)
	sendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		sendsTotal.WithLabelValues(resultFailed).Inc()
		logger.Error().Err(err).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("failed to send notification")
		return
	}
	sendsTotal.WithLabelValues(resultSent).Inc()
	logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("notification sent")
}

// renderHTML converts the markdown body; on failure the HTML part is omitted.
func (b *Bridge) renderHTML(ctx context.Context, body string) string {
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(body), &buf); err != nil {
		logger := log.FromContext(ctx, "notify")
		logger.Warn().Err(err).Msg("failed to render notification html")
		return ""
	}
	return buf.String()
}

// Wait blocks until every queued send has finished or ctx is done.
func (b *Bridge) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
