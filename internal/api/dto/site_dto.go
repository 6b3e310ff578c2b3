package dto

import "time"

// CreateSiteRequest payload for provisioning a site.
type CreateSiteRequest struct {
	Name string `json:"name"`
}

// SiteSummary standard site representation.
type SiteSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	BucketName string    `json:"bucket_name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
