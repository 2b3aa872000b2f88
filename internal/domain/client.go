package domain

import "time"

// Client is a client-book entry tracked by guest name.
type Client struct {
	ID             string
	GuestName      string
	PartnerName    string
	AccountNumber  string
	PreferredStore string

	LastInteraction *time.Time
	FollowUp        *time.Time
}
