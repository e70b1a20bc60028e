package auth

import "time"

// User is an account provisioned on first sign-in. Accounts are keyed
// by email: signing in again with the same email reuses the record.
type User struct {
	ID            string     `bson:"_id" json:"id"`
	Email         string     `bson:"email" json:"email"`
	Name          string     `bson:"name" json:"name"`
	Picture       string     `bson:"picture,omitempty" json:"picture,omitempty"`
	PreferredCity string     `bson:"preferredCity,omitempty" json:"preferred_city,omitempty"`
	Role          string     `bson:"role" json:"role"`
	CreatedAt     time.Time  `bson:"createdAt" json:"created_at"`
	LastSeenAt    *time.Time `bson:"lastSeenAt,omitempty" json:"last_seen_at,omitempty"`
}

// Session records an issued login session so it can be revoked
type Session struct {
	ID        string     `bson:"_id" json:"id"`
	UserID    string     `bson:"userId" json:"user_id"`
	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
	ExpiresAt time.Time  `bson:"expiresAt" json:"expires_at"`
	RevokedAt *time.Time `bson:"revokedAt,omitempty" json:"revoked_at,omitempty"`
}

type SessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
