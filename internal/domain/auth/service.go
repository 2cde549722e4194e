package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

const mfaIssuer = "HRMS"

// Sealer encrypts MFA secrets at rest.
type Sealer interface {
	Configured() bool
	SealString(value string) ([]byte, error)
	OpenString(value []byte) (string, error)
}

type Service struct {
	store   StoreAPI
	secret  string
	ttl     time.Duration
	sealer  Sealer
	checker PermissionChecker
	logger  *zap.Logger
}

func NewService(store StoreAPI, secret string, ttl time.Duration, sealer Sealer, checker PermissionChecker) *Service {
	return &Service{
		store:   store,
		secret:  secret,
		ttl:     ttl,
		sealer:  sealer,
		checker: checker,
		logger:  zap.L().Named("auth.service"),
	}
}

// Login verifies credentials and opens a server-side session. Any failure
// returns before a session row is written.
func (s *Service) Login(ctx context.Context, email, password, mfaCode string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.store.FindActiveUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("find user: %w", err)
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !IsKnownRole(user.RoleName) {
		s.logger.Warn("login refused for unknown role", zap.String("userId", user.ID), zap.String("role", user.RoleName))
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		if strings.TrimSpace(mfaCode) == "" {
			return LoginResult{}, ErrMFARequired
		}
		if !s.validateMFA(user.MFASecretEnc, mfaCode) {
			return LoginResult{}, ErrMFAInvalid
		}
	}

	sessionID, err := NewSessionID()
	if err != nil {
		return LoginResult{}, err
	}
	expires := time.Now().Add(s.ttl)
	if err := s.store.CreateSession(ctx, user.ID, HashToken(sessionID), expires); err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	token, err := GenerateToken(s.secret, Claims{
		UserID:     user.ID,
		EmployeeID: user.EmployeeID,
		RoleName:   user.RoleName,
		SessionID:  sessionID,
	}, s.ttl)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("update last_login failed", zap.String("userId", user.ID), zap.Error(err))
	}

	return LoginResult{
		Token: token,
		Employee: SessionEmployee{
			EmployeeID: user.EmployeeID,
			Role:       user.RoleName,
			Name:       user.EmployeeName,
		},
		RedirectTo: LandingPath(user.RoleName),
		ExpiresAt:  expires,
	}, nil
}

// Authenticate turns a bearer token into a caller, rejecting tokens whose
// session was revoked or has expired server-side.
func (s *Service) Authenticate(ctx context.Context, token string) (UserContext, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return UserContext{}, ErrSessionInvalid
	}
	if !IsKnownRole(claims.RoleName) || claims.SessionID == "" {
		return UserContext{}, ErrSessionInvalid
	}
	valid, err := s.store.SessionValid(ctx, claims.UserID, HashToken(claims.SessionID))
	if err != nil {
		return UserContext{}, fmt.Errorf("check session: %w", err)
	}
	if !valid {
		return UserContext{}, ErrSessionInvalid
	}
	return UserContext{
		UserID:     claims.UserID,
		EmployeeID: claims.EmployeeID,
		RoleName:   claims.RoleName,
		SessionID:  claims.SessionID,
	}, nil
}

func (s *Service) Logout(ctx context.Context, user UserContext) error {
	if user.SessionID == "" {
		return nil
	}
	return s.store.RevokeSession(ctx, user.UserID, HashToken(user.SessionID))
}

func (s *Service) Session(ctx context.Context, user UserContext) (SessionInfo, error) {
	record, err := s.store.FindUserByID(ctx, user.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return SessionInfo{}, ErrSessionInvalid
	}
	if err != nil {
		return SessionInfo{}, err
	}
	nav, err := Navigation(user.RoleName, s.checker)
	if err != nil {
		return SessionInfo{}, err
	}
	return SessionInfo{
		Employee: SessionEmployee{
			EmployeeID: record.EmployeeID,
			Role:       record.RoleName,
			Name:       record.EmployeeName,
		},
		LandingPath: LandingPath(user.RoleName),
		Layout:      LayoutFor(user.RoleName),
		Navigation:  nav,
	}, nil
}

func (s *Service) SetupMFA(ctx context.Context, user UserContext) (MFASetup, error) {
	if s.sealer == nil || !s.sealer.Configured() {
		return MFASetup{}, ErrMFAUnavailable
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      mfaIssuer,
		AccountName: user.EmployeeID,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return MFASetup{}, err
	}
	sealed, err := s.sealer.SealString(key.Secret())
	if err != nil {
		return MFASetup{}, err
	}
	if err := s.store.UpdateMFASecret(ctx, user.UserID, sealed); err != nil {
		return MFASetup{}, err
	}
	return MFASetup{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

func (s *Service) EnableMFA(ctx context.Context, user UserContext, code string) error {
	if s.sealer == nil || !s.sealer.Configured() {
		return ErrMFAUnavailable
	}
	record, err := s.store.FindUserByID(ctx, user.UserID)
	if err != nil {
		return err
	}
	if len(record.MFASecretEnc) == 0 {
		return ErrMFANotSetUp
	}
	if !s.validateMFA(record.MFASecretEnc, code) {
		return ErrMFAInvalid
	}
	return s.store.SetMFAEnabled(ctx, user.UserID, true)
}

func (s *Service) validateMFA(secretEnc []byte, code string) bool {
	if s.sealer == nil {
		return false
	}
	secret, err := s.sealer.OpenString(secretEnc)
	if err != nil || secret == "" {
		return false
	}
	return totp.Validate(strings.TrimSpace(code), secret)
}
