package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSiteCreated       EventType = "site_created"
	EventSiteDeleted       EventType = "site_deleted"
	EventAccessTokenIssued EventType = "access_token_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SiteID    string      `json:"site_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SiteCreatedPayload payload.
type SiteCreatedPayload struct {
	Name       string `json:"name"`
	BucketName string `json:"bucket_name"`
}

// SiteDeletedPayload payload.
type SiteDeletedPayload struct {
	BucketName     string `json:"bucket_name"`
	ObjectsRemoved int    `json:"objects_removed"`
}

// AccessTokenIssuedPayload payload. The token itself is never part of the
// event; only the traceable metadata is.
type AccessTokenIssuedPayload struct {
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
