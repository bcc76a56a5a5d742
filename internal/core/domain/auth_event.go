package domain

import "time"

// AuthEventType names an entry in the authentication audit trail.
type AuthEventType string

const (
	EventRegistered          AuthEventType = "registered"
	EventLoginSucceeded      AuthEventType = "login_succeeded"
	EventLoginFailed         AuthEventType = "login_failed"
	EventAdminLoginSucceeded AuthEventType = "admin_login_succeeded"
	EventAdminLoginFailed    AuthEventType = "admin_login_failed"
	EventAdminCreated        AuthEventType = "admin_created"
	EventAdminDeleted        AuthEventType = "admin_deleted"
)

// AuthEvent records a security-relevant account action. It never carries
// passwords or tokens.
type AuthEvent struct {
	Type       AuthEventType
	Email      string
	AccountID  int64 // zero when the account is unknown
	RemoteIP   string
	ActorID    int64 // admin performing the action, if any
	OccurredAt time.Time
}
