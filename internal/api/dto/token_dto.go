package dto

import "time"

// IssueTokenRequest payload for minting a capability token. A zero
// ValiditySeconds selects the configured default (48h).
type IssueTokenRequest struct {
	ValiditySeconds int `json:"validity_seconds"`
}

// IssueTokenResponse returns the signed token and its expiry.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenRecordSummary is one issuance record, for observability listings.
type TokenRecordSummary struct {
	TokenID   string    `json:"token_id"`
	SiteID    string    `json:"site_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
