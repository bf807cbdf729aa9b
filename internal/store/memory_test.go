package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk-backend/internal/types"
)

func newTestMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	ms, err := LoadFixtures("testdata/fixtures.yaml")
	require.NoError(t, err)
	return ms
}

func TestMemoryStoreGetBooking(t *testing.T) {
	ms := newTestMemoryStore(t)
	ctx := context.Background()

	b, err := ms.GetBooking(ctx, "bk-1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "Indie Night", b.EventTitle)
	assert.Equal(t, "txn-001", b.TransactionID)
	require.Len(t, b.Items, 1)
	assert.Equal(t, "General", b.Items[0].TierName)
	assert.Equal(t, 2, b.Items[0].Quantity)

	missing, err := ms.GetBooking(ctx, "bk-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreListUserBookings(t *testing.T) {
	ms := newTestMemoryStore(t)
	ctx := context.Background()

	all, err := ms.ListUserBookings(ctx, "u-1", "", 5)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bk-2", all[0].ID, "newest first")
	assert.Equal(t, "bk-1", all[1].ID)
	assert.Empty(t, all[0].Items)

	pending, err := ms.ListUserBookings(ctx, "u-1", types.BookingStatusPending, 3)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "bk-2", pending[0].ID)

	limited, err := ms.ListUserBookings(ctx, "u-1", "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	noUser, err := ms.ListUserBookings(ctx, "", "", 5)
	require.NoError(t, err)
	assert.Empty(t, noUser)

	none, err := ms.ListUserBookings(ctx, "u-2", "", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreEvents(t *testing.T) {
	ms := newTestMemoryStore(t)
	ctx := context.Background()

	ev, err := ms.GetEventWithTiers(ctx, "ev-1")
	require.NoError(t, err)
	require.NotNil(t, ev)
	require.Len(t, ev.Tiers, 2)
	assert.Equal(t, "General", ev.Tiers[0].Name, "cheapest tier first")
	assert.Equal(t, 40, ev.Remaining())

	loc, err := ms.GetEventLocation(ctx, "ev-2")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, "The Courtyard", loc.VenueName)
	assert.Nil(t, loc.Tiers)

	from := time.Date(2030, 3, 20, 0, 0, 0, 0, time.UTC)
	upcoming, err := ms.ListUpcomingEvents(ctx, from, 20)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "ev-2", upcoming[0].ID)

	missing, err := ms.GetEventWithTiers(ctx, "ev-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreGetUserByEmail(t *testing.T) {
	ms := newTestMemoryStore(t)
	ctx := context.Background()

	u, err := ms.GetUserByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)

	u, err = ms.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryStoreDeleteBooking(t *testing.T) {
	ms := newTestMemoryStore(t)
	ms.DeleteBooking("bk-1")

	b, err := ms.GetBooking(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Nil(t, b)
}
