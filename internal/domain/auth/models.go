package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMFARequired        = errors.New("mfa code required")
	ErrMFAInvalid         = errors.New("invalid mfa code")
	ErrMFAUnavailable     = errors.New("mfa requires an encryption key")
	ErrMFANotSetUp        = errors.New("mfa setup required")
	ErrSessionInvalid     = errors.New("session expired or revoked")
	ErrForbidden          = errors.New("forbidden")
)

const UserStatusActive = "active"

// UserContext is the authenticated caller, as carried on the request.
type UserContext struct {
	UserID     string
	EmployeeID string
	RoleName   string
	SessionID  string
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	RoleName     string
	EmployeeID   string
	EmployeeName string
	MFAEnabled   bool
	MFASecretEnc []byte
}

type SessionEmployee struct {
	EmployeeID string `json:"employeeId"`
	Role       string `json:"role"`
	Name       string `json:"name"`
}

type LoginResult struct {
	Token      string          `json:"token"`
	Employee   SessionEmployee `json:"employee"`
	RedirectTo string          `json:"redirectTo"`
	ExpiresAt  time.Time       `json:"expiresAt"`
}

type SessionInfo struct {
	Employee    SessionEmployee `json:"employee"`
	LandingPath string          `json:"landingPath"`
	Layout      string          `json:"layout"`
	Navigation  []NavItem       `json:"navigation"`
}

type MFASetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
}
