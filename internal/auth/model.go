package auth

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
)

const (
	MAX_PASSPHRASE_LENGTH = 72 // bcrypt ignores everything after 72 bytes
	MAX_LENGTH_EMAIL      = 320
	DEFAULT_OPEN_ID       = "household"
	LOGIN_METHOD          = "passphrase"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9](\.?[a-zA-Z0-9_%+-])*@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)

// Session is the revocable side of a bearer token. Token holds the random
// session key carried inside the signed token, not the token itself.
type Session struct {
	ID        string
	Token     string
	OwnerID   int64
	CreatedAt time.Time
	ExpireAt  time.Time
}

type LoginRequest struct {
	Passphrase string
	OpenID     string
	Name       string
	Email      string
}

type LoginResult struct {
	Token    string
	OwnerID  int64
	ExpireAt time.Time
}

func ValidatePassphrase(passphrase string) error {
	if passphrase == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Passphrase cannot be empty!",
		}
	}
	if len(passphrase) > MAX_PASSPHRASE_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Passphrase so long, maximum length is %d bytes", MAX_PASSPHRASE_LENGTH),
		}
	}
	return nil
}

func (req *LoginRequest) Validate() error {
	if err := ValidatePassphrase(req.Passphrase); err != nil {
		return err
	}
	req.OpenID = strings.TrimSpace(req.OpenID)
	if req.OpenID == "" {
		req.OpenID = DEFAULT_OPEN_ID
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email != "" {
		if len(req.Email) > MAX_LENGTH_EMAIL {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: fmt.Sprintf("Email so long, maximum length is %d", MAX_LENGTH_EMAIL),
			}
		}
		if !emailRegex.MatchString(req.Email) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: "Invalid email format, example valid email: john.doe@gmail.com",
			}
		}
	}
	return nil
}
