package domain

import "time"

// Collective is the beneficiary entity owning transactions. A host is a
// collective acting as fiscal sponsor, holding funds in its own currency.
type Collective struct {
	ID        int64
	Slug      string
	Name      string
	Image     string
	Currency  string
	HostID    *int64
	CreatedAt time.Time
}

// CollectiveMinimal is the snapshot embedded in activity payloads.
type CollectiveMinimal struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Minimal returns the activity-payload view of the collective.
func (c *Collective) Minimal() CollectiveMinimal {
	return CollectiveMinimal{ID: c.ID, Slug: c.Slug, Name: c.Name, Image: c.Image}
}

// Host is the fiscal sponsor view of a collective used when paying expenses.
type Host struct {
	ID       int64
	Slug     string
	Name     string
	Currency string
}
