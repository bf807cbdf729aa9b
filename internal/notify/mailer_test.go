package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessagePlain(t *testing.T) {
	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	raw, err := buildMessage("no-reply@ticketdesk.example", Message{
		To:      "desk@example.com",
		ReplyTo: "asha@example.com",
		Subject: "Support request",
		Text:    "hello",
	}, now)
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "From: no-reply@ticketdesk.example\r\n")
	assert.Contains(t, s, "To: desk@example.com\r\n")
	assert.Contains(t, s, "Reply-To: asha@example.com\r\n")
	assert.Contains(t, s, "Subject: Support request\r\n")
	assert.Contains(t, s, "Date: Wed, 02 Jan 2030 03:04:05 +0000\r\n")
	assert.Contains(t, s, "@ticketdesk.example>\r\n")
	assert.Contains(t, s, "Content-Type: text/plain; charset=utf-8\r\n")
	assert.True(t, strings.HasSuffix(s, "hello"))
}

func TestBuildMessageAlternative(t *testing.T) {
	raw, err := buildMessage("no-reply@ticketdesk.example", Message{
		To:      "desk@example.com",
		Subject: "Réservation",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	}, time.Now())
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, s, "text/plain; charset=utf-8")
	assert.Contains(t, s, "text/html; charset=utf-8")
	assert.Contains(t, s, "plain body")
	assert.Contains(t, s, "<p>html body</p>")
	assert.Contains(t, s, "Subject: =?utf-8?q?")
	assert.NotContains(t, s, "Reply-To")
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "example.com", domainOf("a@example.com"))
	assert.Equal(t, "localhost", domainOf("nobody"))
	assert.Equal(t, "localhost", domainOf("trailing@"))
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), Message{To: "x@example.com"}))
}

func TestBuildMessageRejectsHeaderLineBreaks(t *testing.T) {
	_, err := buildMessage("no-reply@ticketdesk.example", Message{
		To:      "desk@example.com",
		ReplyTo: "a@b.com\r\nBcc: victim@evil.example",
		Subject: "Support request",
		Text:    "hello",
	}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Reply-To")
}

func TestBuildMessageEncodesSubjectLineBreaks(t *testing.T) {
	raw, err := buildMessage("no-reply@ticketdesk.example", Message{
		To:      "desk@example.com",
		Subject: "hi\r\nBcc: victim@evil.example",
		Text:    "hello",
	}, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "\r\nBcc:")
}
