package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

// ts normalises a time for storage. Every backend stores UTC so that SQLite
// text compares in instant order across daylight saving changes.
func (s *SQLStorage) ts(t time.Time) time.Time {
	return t.UTC()
}

// --- USERS --- //

func (s *SQLStorage) UpsertUser(ctx context.Context, profile ledger.UserProfile, signedInAt time.Time) (int64, error) {
	signedInAt = s.ts(signedInAt)
	_, err := s.db.ExecContext(ctx, s.dialect.upsertUserQuery(),
		profile.OpenID, nullString(profile.Name), nullString(profile.Email), nullString(profile.LoginMethod),
		signedInAt, signedInAt, signedInAt)
	if err != nil {
		return 0, s.fail(ctx, "UpsertUser", "upsert user", err, "Failed to save the user, try again later.")
	}

	var id int64
	err = s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE open_id = ?", profile.OpenID).Scan(&id)
	if err != nil {
		return 0, s.fail(ctx, "UpsertUser", "read upserted user id", err, "Failed to save the user, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) GetUserByID(ctx context.Context, id int64) (ledger.User, error) {
	query := "SELECT id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in FROM users WHERE id = ?"

	var u dbUser
	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.User{}, notFound("User not found.")
		}
		return ledger.User{}, s.fail(ctx, "GetUserByID", "get user", err, "Failed to get the user, try again later.")
	}
	return u.toDomain(s.loc), nil
}

// --- SESSIONS --- //

func (s *SQLStorage) SaveSession(ctx context.Context, session auth.Session) error {
	query := "INSERT INTO sessions (id, token, user_id, created_at, expire_at) VALUES (?, ?, ?, ?, ?)"
	_, err := s.db.ExecContext(ctx, query, session.ID, session.Token, session.OwnerID, session.CreatedAt.UTC(), session.ExpireAt.UTC())
	if err != nil {
		return s.fail(ctx, "SaveSession", "save session", err, "Failed to create session, try again later.")
	}
	return nil
}

func (s *SQLStorage) GetSessionByToken(ctx context.Context, token string) (auth.Session, error) {
	query := "SELECT id, token, user_id, created_at, expire_at FROM sessions WHERE token = ?"

	var d dbSession
	err := s.db.QueryRowContext(ctx, query, token).Scan(&d.ID, &d.Token, &d.UserID, &d.CreatedAt, &d.ExpireAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Session{}, notFound("Session not found.")
		}
		return auth.Session{}, s.fail(ctx, "GetSessionByToken", "get session", err, "Failed to check session, try again later.")
	}
	return d.toDomain(), nil
}

func (s *SQLStorage) UpdateSessionExpiry(ctx context.Context, token string, expireAt time.Time) error {
	res, err := s.db.ExecContext(ctx, "UPDATE sessions SET expire_at = ? WHERE token = ?", expireAt.UTC(), token)
	if err != nil {
		return s.fail(ctx, "UpdateSessionExpiry", "update session", err, "Failed to check session, please try again later.")
	}
	rowsAffected, err := s.affected(ctx, "UpdateSessionExpiry", res)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFound("Session not found.")
	}
	return nil
}

func (s *SQLStorage) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return s.fail(ctx, "DeleteSession", "delete session", err, "Logout failed, try again later.")
	}
	return nil
}
