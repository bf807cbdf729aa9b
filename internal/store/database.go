package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ticketdesk-backend/internal/db"
	"ticketdesk-backend/internal/types"
)

// DatabaseStore reads ticketing data from the relational backend.
type DatabaseStore struct {
	db *db.DB
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.DB) *DatabaseStore {
	return &DatabaseStore{db: database}
}

// GetBooking returns a booking with its event and line items, or nil if it does not exist.
func (ds *DatabaseStore) GetBooking(ctx context.Context, id string) (*types.Booking, error) {
	if id == "" {
		return nil, nil
	}

	query := `
		SELECT b.id, b.user_id, b.event_id, b.status, b.total_amount,
		       COALESCE(b.transaction_id, ''), b.created_at, e.title, e.event_date
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.id = $1
	`
	var b types.Booking
	err := ds.db.QueryRowContext(ctx, ds.db.Rebind(query), id).Scan(
		&b.ID,
		&b.UserID,
		&b.EventID,
		&b.Status,
		&b.TotalAmount,
		&b.TransactionID,
		&b.CreatedAt,
		&b.EventTitle,
		&b.EventDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	itemsQuery := `
		SELECT bi.tier_id, t.name, bi.quantity, bi.unit_price
		FROM booking_items bi
		JOIN ticket_tiers t ON t.id = bi.tier_id
		WHERE bi.booking_id = $1
		ORDER BY t.price, t.name
	`
	rows, err := ds.db.QueryContext(ctx, ds.db.Rebind(itemsQuery), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it types.BookingItem
		if err := rows.Scan(&it.TierID, &it.TierName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan booking item: %w", err)
		}
		b.Items = append(b.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking items: %w", err)
	}
	return &b, nil
}

// ListUserBookings returns a user's bookings newest first, optionally filtered by status.
func (ds *DatabaseStore) ListUserBookings(ctx context.Context, userID, status string, limit int) ([]types.Booking, error) {
	if userID == "" {
		return []types.Booking{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT b.id, b.user_id, b.event_id, b.status, b.total_amount,
		       COALESCE(b.transaction_id, ''), b.created_at, e.title, e.event_date
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id
		LIMIT $2
	`
	args := []any{userID, limit}
	if status != "" {
		query = `
		SELECT b.id, b.user_id, b.event_id, b.status, b.total_amount,
		       COALESCE(b.transaction_id, ''), b.created_at, e.title, e.event_date
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1 AND b.status = $2
		ORDER BY b.created_at DESC, b.id
		LIMIT $3
	`
		args = []any{userID, status, limit}
	}

	rows, err := ds.db.QueryContext(ctx, ds.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var out []types.Booking
	for rows.Next() {
		var b types.Booking
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.EventID,
			&b.Status,
			&b.TotalAmount,
			&b.TransactionID,
			&b.CreatedAt,
			&b.EventTitle,
			&b.EventDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return out, nil
}

// GetEventWithTiers returns an event with its ticket tiers, cheapest first.
func (ds *DatabaseStore) GetEventWithTiers(ctx context.Context, id string) (*types.Event, error) {
	ev, err := ds.GetEventLocation(ctx, id)
	if err != nil || ev == nil {
		return ev, err
	}

	query := `
		SELECT id, name, price, remaining_quantity
		FROM ticket_tiers
		WHERE event_id = $1
		ORDER BY price, name
	`
	rows, err := ds.db.QueryContext(ctx, ds.db.Rebind(query), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket tiers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t types.TicketTier
		if err := rows.Scan(&t.ID, &t.Name, &t.Price, &t.Remaining); err != nil {
			return nil, fmt.Errorf("failed to scan ticket tier: %w", err)
		}
		ev.Tiers = append(ev.Tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ticket tiers: %w", err)
	}
	return ev, nil
}

// GetEventLocation returns an event with its location fields only.
func (ds *DatabaseStore) GetEventLocation(ctx context.Context, id string) (*types.Event, error) {
	if id == "" {
		return nil, nil
	}

	query := `
		SELECT id, title, event_date, venue_name, address, city
		FROM events
		WHERE id = $1
	`
	var ev types.Event
	err := ds.db.QueryRowContext(ctx, ds.db.Rebind(query), id).Scan(
		&ev.ID,
		&ev.Title,
		&ev.EventDate,
		&ev.VenueName,
		&ev.Address,
		&ev.City,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &ev, nil
}

// ListUpcomingEvents returns events on or after from, soonest first.
func (ds *DatabaseStore) ListUpcomingEvents(ctx context.Context, from time.Time, limit int) ([]types.Event, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, title, event_date, venue_name, address, city
		FROM events
		WHERE event_date >= $1
		ORDER BY event_date, id
		LIMIT $2
	`
	rows, err := ds.db.QueryContext(ctx, ds.db.Rebind(query), from.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	defer rows.Close()

	var out []types.Event
	for rows.Next() {
		var ev types.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.EventDate, &ev.VenueName, &ev.Address, &ev.City); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return out, nil
}

// GetUserByEmail returns the user registered with email (case-insensitive), or nil.
func (ds *DatabaseStore) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	if email == "" {
		return nil, nil
	}

	var u types.User
	query := `
		SELECT id, name, email
		FROM users
		WHERE LOWER(email) = LOWER($1)
		LIMIT 1
	`
	err := ds.db.QueryRowContext(ctx, ds.db.Rebind(query), email).Scan(&u.ID, &u.Name, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// IsEmpty reports whether no users exist yet.
func (ds *DatabaseStore) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := ds.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return n == 0, nil
}

// Seed inserts fixtures in one transaction. Used for local SQLite databases and tests.
func (ds *DatabaseStore) Seed(ctx context.Context, fx Fixtures) error {
	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, ds.db.Rebind(query), args...)
		return err
	}
	for _, u := range fx.Users {
		if err := exec(`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`, u.ID, u.Name, u.Email); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.ID, err)
		}
	}
	for _, e := range fx.Events {
		if err := exec(`INSERT INTO events (id, title, event_date, venue_name, address, city) VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, e.Title, e.EventDate.UTC(), e.VenueName, e.Address, e.City); err != nil {
			return fmt.Errorf("failed to seed event %s: %w", e.ID, err)
		}
		for _, t := range e.Tiers {
			if err := exec(`INSERT INTO ticket_tiers (id, event_id, name, price, remaining_quantity) VALUES ($1, $2, $3, $4, $5)`,
				t.ID, e.ID, t.Name, t.Price, t.Remaining); err != nil {
				return fmt.Errorf("failed to seed tier %s: %w", t.ID, err)
			}
		}
	}
	for _, b := range fx.Bookings {
		if err := exec(`INSERT INTO bookings (id, user_id, event_id, status, total_amount, transaction_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			b.ID, b.UserID, b.EventID, b.Status, b.TotalAmount, nullString(b.TransactionID), b.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to seed booking %s: %w", b.ID, err)
		}
		for _, it := range b.Items {
			if err := exec(`INSERT INTO booking_items (booking_id, tier_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
				b.ID, it.TierID, it.Quantity, it.UnitPrice); err != nil {
				return fmt.Errorf("failed to seed booking item %s/%s: %w", b.ID, it.TierID, err)
			}
		}
	}
	return tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
