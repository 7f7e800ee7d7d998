package auth

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is what a bearer token proves on its own, without the
// session table: who the owner is and until when the token was issued.
type sessionClaims struct {
	SessionKey string
	OwnerID    int64
	ExpireAt   time.Time
}

// signingKey derives the token key from the passphrase hash, so changing the
// passphrase invalidates every issued token.
func signingKey(passphraseHash string) []byte {
	sum := sha256.Sum256([]byte("household-ledger/session\x00" + passphraseHash))
	return sum[:]
}

func (g *Gate) signToken(c sessionClaims, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        c.SessionKey,
		Subject:   strconv.FormatInt(c.OwnerID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(c.ExpireAt),
	})
	signed, err := token.SignedString(g.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// parseToken checks the signature only. Expiry is decided by the caller,
// because the session table may have extended it.
func (g *Gate) parseToken(token string) (sessionClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return g.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return sessionClaims{}, errUnauthorized
	}

	ownerID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || ownerID <= 0 || claims.ID == "" || claims.ExpiresAt == nil {
		return sessionClaims{}, errUnauthorized
	}
	return sessionClaims{
		SessionKey: claims.ID,
		OwnerID:    ownerID,
		ExpireAt:   claims.ExpiresAt.Time,
	}, nil
}
