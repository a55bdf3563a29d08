package domain

import "time"

// DefaultVerificationMaxAge is the token lifetime in seconds used when a
// provider does not set one.
const DefaultVerificationMaxAge = 86400

// VerificationRecord is what callers see after a successful create or retrieve.
// Token is always the raw, unhashed value.
type VerificationRecord struct {
	Identifier string    `json:"identifier"`
	Token      string    `json:"token,omitempty"`
	Expires    time.Time `json:"expires"`
}

// VerificationRequest is the persisted form of a verification token.
// PK: email. Token holds the bcrypt hash, never the raw value.
// Expires is kept as text exactly as stored so retrieve can detect corruption.
type VerificationRequest struct {
	Identifier  string
	HashedToken string
	Expires     string
}

// VerificationParams is handed to the delivery callback after the record is written.
type VerificationParams struct {
	Identifier string
	URL        string
	Token      string
	BaseURL    string
	ProviderID string
	Expires    time.Time
}
