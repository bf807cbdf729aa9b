package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatterMoney(t *testing.T) {
	f := newFormatter("INR", nil)
	assert.Equal(t, "INR 499.00", f.money(499))
	assert.Equal(t, "INR 0.50", f.money(0.5))

	assert.Equal(t, "EUR 12.00", newFormatter("EUR", nil).money(12))
	assert.Equal(t, "INR 1.00", newFormatter("not-a-currency", nil).money(1))
	assert.Equal(t, "INR 1.00", newFormatter("", nil).money(1))
}

func TestFormatterDate(t *testing.T) {
	at := time.Date(2030, 3, 14, 19, 30, 0, 0, time.UTC)

	f := newFormatter("INR", nil)
	assert.Equal(t, "Thu, 14 Mar 2030 · 7:30 PM", f.date(at))
	assert.Equal(t, "14 Mar 2030", f.shortDate(at))
	assert.Equal(t, "N/A", f.date(time.Time{}))
	assert.Equal(t, "TBA", f.shortDate(time.Time{}))

	ist := newFormatter("INR", time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, "Fri, 15 Mar 2030 · 1:00 AM", ist.date(at))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Pending", title("pending"))
	assert.Equal(t, "", title(""))
	assert.Equal(t, "Édité", title("édité"))
	assert.Equal(t, "Ümlaut", title("ümlaut"))
}
