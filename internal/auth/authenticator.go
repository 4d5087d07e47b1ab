package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

const touchTimeout = 5 * time.Second

// Status is the outcome of authenticating a request.
type Status int

const (
	// Anonymous means no bearer credential was presented.
	Anonymous Status = iota
	// Authenticated means the token maps to an unexpired session of an active member.
	Authenticated
	// Rejected means a credential was presented but is malformed, unknown or expired,
	// or the session store could not be reached (Err is set).
	Rejected
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Identity is the member bound to a valid session.
type Identity struct {
	MemberID  uuid.UUID
	Role      models.Role
	Token     string
	ExpiresAt time.Time
}

// Result is returned by Authenticate. Identity is set only when Status is Authenticated.
type Result struct {
	Status   Status
	Identity Identity
	Reason   string
	Err      error
}

// ActiveSession is a session row joined with its member's role.
type ActiveSession struct {
	MemberID  uuid.UUID
	Role      models.Role
	ExpiresAt time.Time
}

// SessionStore is the session lookup the authenticator needs.
type SessionStore interface {
	// FindActiveSession returns the session for token if it expires after now
	// and its member is active, or nil.
	FindActiveSession(ctx context.Context, token string, now time.Time) (*ActiveSession, error)
	TouchSession(ctx context.Context, token string, at time.Time) error
}

// Authenticator maps bearer tokens to member identities. Every call hits the
// store; nothing is cached between requests.
type Authenticator struct {
	store  SessionStore
	logger *zap.Logger
	now    func() time.Time
	// touch runs the last-active update; it is asynchronous outside tests.
	touch func(token string, at time.Time)
}

// NewAuthenticator creates an authenticator backed by store.
func NewAuthenticator(store SessionStore, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Authenticator{store: store, logger: logger, now: time.Now}
	a.touch = func(token string, at time.Time) { go a.touchSession(token, at) }
	return a
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// Authenticate validates an Authorization header value.
func (a *Authenticator) Authenticate(ctx context.Context, header string) Result {
	if strings.TrimSpace(header) == "" {
		return Result{Status: Anonymous, Reason: "No token provided"}
	}
	token, ok := BearerToken(header)
	if !ok {
		return Result{Status: Rejected, Reason: "No token provided"}
	}

	now := a.now()
	sess, err := a.store.FindActiveSession(ctx, token, now)
	if err != nil {
		a.logger.Error("session lookup failed", zap.Error(err))
		return Result{Status: Rejected, Reason: "Authentication failed", Err: err}
	}
	if sess == nil {
		return Result{Status: Rejected, Reason: "Invalid or expired token"}
	}

	a.touch(token, now)
	return Result{
		Status: Authenticated,
		Identity: Identity{
			MemberID:  sess.MemberID,
			Role:      sess.Role,
			Token:     token,
			ExpiresAt: sess.ExpiresAt,
		},
	}
}

// touchSession records last activity. Failure is logged and otherwise ignored.
func (a *Authenticator) touchSession(token string, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
	defer cancel()
	if err := a.store.TouchSession(ctx, token, at); err != nil {
		a.logger.Warn("update session last_active_at failed", zap.Error(err))
	}
}
