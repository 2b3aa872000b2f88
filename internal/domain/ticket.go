package domain

import "time"

// Ticket is a store-scoped issue raised by a user. At most one assignee;
// an empty AssignedTo means unassigned.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      Status
	StoreCode   string
	Department  string

	CreatedBy  string
	AssignedTo string

	// Confidentiality flags gate downstream visibility; this core only
	// carries them.
	Confidentiality []string

	CreatedAt time.Time
}
