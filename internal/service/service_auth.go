package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/internal/utils"
	"github.com/MKhiriev/go-user-keeper/models"
)

// authService is the concrete implementation of [AuthService].
// It handles credential verification and the JWT token lifecycle, using a
// user repository for lookups and bcrypt for password comparison.
type authService struct {
	db    Database
	repos store.RepositoryManager

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given database and
// populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(db Database, repos store.RepositoryManager, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		db:            db,
		repos:         repos,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Login authenticates an existing user and issues a JWT on success.
//
// An unknown email and a wrong password both produce ErrInvalidCredentials,
// so a caller cannot probe which emails are registered. The bcrypt compare
// runs inside [utils.VerifyPassword] and never panics on a malformed hash.
func (a *authService) Login(ctx context.Context, email, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	user, err := a.repos.Users(a.db).FindByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("login failed: user lookup")
		return models.Token{}, ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		log.Error().Int64("id", user.UserID).Msg("login failed: password mismatch")
		return models.Token{}, ErrInvalidCredentials
	}

	return a.CreateToken(ctx, user)
}

// Authenticate resolves a raw token string back to the user it asserts.
//
// It fails with ErrTokenIsExpiredOrInvalid when the token cannot be validated
// or when the user no longer exists (e.g. the account was deleted after the
// token was issued).
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.repos.Users(a.db).FindByID(ctx, token.UserID)
	if err != nil {
		log.Err(err).Int64("id", token.UserID).Msg("token subject no longer exists")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// algorithm, issuer, and expiry. Any validation failure is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
