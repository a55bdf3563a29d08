package domain

import "time"

// User is the minimal user record written by the adapter.
// PK: id. Email-only sign-ups use the email address as id.
type User struct {
	ID            string     `json:"id" dynamodbav:"id"`
	Email         *string    `json:"email" dynamodbav:"email"`
	EmailVerified *time.Time `json:"email_verified" dynamodbav:"emailVerified"`
	Name          string     `json:"name" dynamodbav:"name"`
	Image         *string    `json:"image" dynamodbav:"image"`
}

// Profile is either a provider profile (ID set) or an email-only profile.
type Profile struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         *string    `json:"email" validate:"omitempty,email"`
	Image         *string    `json:"image"`
	EmailVerified *time.Time `json:"email_verified"`
}

// IsEmailProfile reports whether p carries only an email address.
func (p Profile) IsEmailProfile() bool {
	return p.ID == "" && p.Email != nil
}

// UpdateUserRequest carries the mutable profile fields; nil means unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=256"`
	Image *string `json:"image" validate:"omitempty,url"`
}
