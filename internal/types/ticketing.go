package types

import "time"

// Booking statuses as stored by the ticketing backend.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a user's order for one event, with its event joined in.
type Booking struct {
	ID            string        `json:"id" yaml:"id"`
	UserID        string        `json:"userId" yaml:"user_id"`
	EventID       string        `json:"eventId" yaml:"event_id"`
	EventTitle    string        `json:"eventTitle" yaml:"-"`
	EventDate     time.Time     `json:"eventDate" yaml:"-"`
	Status        string        `json:"status" yaml:"status"`
	TotalAmount   float64       `json:"totalAmount" yaml:"total_amount"`
	TransactionID string        `json:"transactionId,omitempty" yaml:"transaction_id"`
	CreatedAt     time.Time     `json:"createdAt" yaml:"created_at"`
	Items         []BookingItem `json:"items,omitempty" yaml:"items"`
}

// BookingItem is one line of a booking: a quantity of a ticket tier.
type BookingItem struct {
	TierID    string  `json:"tierId" yaml:"tier_id"`
	TierName  string  `json:"tierName" yaml:"-"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	UnitPrice float64 `json:"unitPrice" yaml:"unit_price"`
}

// Event is a ticketed event. Tiers are only populated by tier lookups.
type Event struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	EventDate time.Time    `json:"eventDate" yaml:"event_date"`
	VenueName string       `json:"venueName" yaml:"venue_name"`
	Address   string       `json:"address" yaml:"address"`
	City      string       `json:"city" yaml:"city"`
	Tiers     []TicketTier `json:"tiers,omitempty" yaml:"tiers"`
}

// Remaining returns the number of unsold tickets across all tiers.
func (e Event) Remaining() int {
	total := 0
	for _, t := range e.Tiers {
		total += t.Remaining
	}
	return total
}

type TicketTier struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Price     float64 `json:"price" yaml:"price"`
	Remaining int     `json:"remaining" yaml:"remaining"`
}

type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}
