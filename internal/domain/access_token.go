package domain

import "time"

// AccessTokenRecord is the issuance metadata kept for observability. The
// signed token is self-describing; losing this record never affects whether
// the token verifies.
type AccessTokenRecord struct {
	TokenID   string
	SiteID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
}
