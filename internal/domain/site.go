package domain

import "time"

// SiteStatus enumerates lifecycle states for hosted sites.
type SiteStatus string

const (
	SiteStatusActive   SiteStatus = "ACTIVE"
	SiteStatusDeleting SiteStatus = "DELETING"
)

// Site is the domain model for a hosted static site backed by one bucket.
type Site struct {
	ID         string
	Name       string
	BucketName string
	Status     SiteStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
