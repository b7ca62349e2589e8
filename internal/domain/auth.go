package domain

import "time"

// Admin is the authenticated dashboard operator.
type Admin struct {
	Username string
}

// Session describes an issued admin session.
type Session struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
