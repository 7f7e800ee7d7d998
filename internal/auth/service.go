package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/fatali-fataliyev/household_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
	"github.com/fatali-fataliyev/household_ledger/logging"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash plain password to hashed password: %w", err)
	}
	return string(hashedPassword), nil
}

func ComparePasswords(hashedPwd string, plainPwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPwd), []byte(plainPwd))
	return err == nil
}

type SessionStorage interface {
	SaveSession(ctx context.Context, session Session) error
	GetSessionByToken(ctx context.Context, token string) (Session, error)
	UpdateSessionExpiry(ctx context.Context, token string, expireAt time.Time) error
	DeleteSession(ctx context.Context, token string) error
}

// UserDirectory resolves the household member behind a login.
type UserDirectory interface {
	UpsertUser(ctx context.Context, profile ledger.UserProfile) (int64, error)
}

// Gate is the single shared passphrase in front of the ledger. It turns a
// passphrase into a signed session token and a token back into an owner id.
// Tokens verify without the session table, which only adds logout and
// rolling expiry while it is reachable.
type Gate struct {
	sessions       SessionStorage // nil without a store
	users          UserDirectory
	passphraseHash string
	key            []byte
	ttl            time.Duration
	now            func() time.Time
}

func NewGate(sessions SessionStorage, users UserDirectory, passphraseHash string, ttl time.Duration) *Gate {
	return &Gate{
		sessions:       sessions,
		users:          users,
		passphraseHash: passphraseHash,
		key:            signingKey(passphraseHash),
		ttl:            ttl,
		now:            time.Now,
	}
}

var errUnauthorized = appErrors.ErrorResponse{
	Code:    appErrors.ErrAuth,
	Message: "Session not found, log in again.",
}

var errSessionExpired = appErrors.ErrorResponse{
	Code:    appErrors.ErrAuth,
	Message: "Session expired, log in again.",
}

var errNoSessions = appErrors.ErrorResponse{
	Code:    appErrors.ErrUnavailable,
	Message: "Database not available.",
}

func newSessionKey() (string, error) {
	keyByte := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, keyByte); err != nil {
		return "", err
	}
	return hex.EncodeToString(keyByte), nil
}

func (g *Gate) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	if err := req.Validate(); err != nil {
		return LoginResult{}, err
	}
	if !ComparePasswords(g.passphraseHash, req.Passphrase) {
		return LoginResult{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Wrong passphrase.",
		}
	}
	if g.sessions == nil {
		return LoginResult{}, errNoSessions
	}

	ownerID, err := g.users.UpsertUser(ctx, ledger.UserProfile{
		OpenID:      req.OpenID,
		Name:        req.Name,
		Email:       req.Email,
		LoginMethod: LOGIN_METHOD,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	key, err := newSessionKey()
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate new session: %w", err)
	}

	now := g.now().UTC()
	session := Session{
		ID:        uuid.New().String(),
		Token:     key,
		OwnerID:   ownerID,
		CreatedAt: now,
		ExpireAt:  now.Add(g.ttl),
	}
	token, err := g.signToken(sessionClaims{SessionKey: key, OwnerID: ownerID, ExpireAt: session.ExpireAt}, now)
	if err != nil {
		return LoginResult{}, err
	}
	if err := g.sessions.SaveSession(ctx, session); err != nil {
		return LoginResult{}, fmt.Errorf("failed to save session: %w", err)
	}
	return LoginResult{Token: token, OwnerID: ownerID, ExpireAt: session.ExpireAt}, nil
}

// Authenticate resolves the owner of token. While the session table answers
// it is authoritative: logged out sessions are rejected and sessions with
// less than a fifth of their lifetime left are extended. When it does not,
// the signed expiry of the token decides.
func (g *Gate) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Authorization header is required.",
		}
	}

	claims, err := g.parseToken(token)
	if err != nil {
		return 0, err
	}
	now := g.now().UTC()

	if g.sessions == nil {
		return g.offline(claims, now)
	}

	session, err := g.sessions.GetSessionByToken(ctx, claims.SessionKey)
	if err != nil {
		switch appErrors.CodeOf(err) {
		case appErrors.ErrNotFound:
			return 0, errUnauthorized
		case appErrors.ErrUnavailable:
			traceID := contextutil.TraceIDFromContext(ctx)
			logging.Logger.Warnf("[TraceID=%s] | session store unavailable, trusting signed token | Error: %v", traceID, err)
			return g.offline(claims, now)
		}
		return 0, fmt.Errorf("failed to get session by token: %w", err)
	}
	if session.OwnerID != claims.OwnerID {
		return 0, errUnauthorized
	}

	if !session.ExpireAt.After(now) {
		if err := g.sessions.DeleteSession(ctx, claims.SessionKey); err != nil {
			traceID := contextutil.TraceIDFromContext(ctx)
			logging.Logger.Warnf("[TraceID=%s] | failed to drop expired session | Error: %v", traceID, err)
		}
		return 0, errSessionExpired
	}

	if session.ExpireAt.Sub(now) < g.ttl/5 {
		if err := g.sessions.UpdateSessionExpiry(ctx, claims.SessionKey, now.Add(g.ttl)); err != nil {
			return 0, fmt.Errorf("failed to update session: %w", err)
		}
	}
	return session.OwnerID, nil
}

func (g *Gate) offline(claims sessionClaims, now time.Time) (int64, error) {
	if !claims.ExpireAt.After(now) {
		return 0, errSessionExpired
	}
	return claims.OwnerID, nil
}

func (g *Gate) Logout(ctx context.Context, token string) error {
	if token == "" {
		return errUnauthorized
	}
	claims, err := g.parseToken(token)
	if err != nil {
		return err
	}
	if g.sessions == nil {
		return errNoSessions
	}
	if err := g.sessions.DeleteSession(ctx, claims.SessionKey); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}
