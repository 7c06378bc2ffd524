package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/store"
	"github.com/MKhiriev/fornecedor-api/internal/utils"
	"github.com/MKhiriev/fornecedor-api/internal/validators"
	"github.com/MKhiriev/fornecedor-api/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification with lockout
// tracking, and the JWT token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// lockoutStorage keeps failed login counters and lockout deadlines.
	lockoutStorage store.LockoutStorage

	validator     validators.Validator
	uuidGenerator *utils.UUIDGenerator

	// tokenParams holds the issuer, audience, sign key and lifetime of
	// every issued JWT. Parsing checks the same values.
	tokenParams utils.TokenParams

	// maxFailedAccessAttempts is the number of consecutive failures that
	// locks an account for lockoutDuration.
	maxFailedAccessAttempts int
	lockoutDuration         time.Duration
	bcryptCost              int

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, lockoutStorage store.LockoutStorage, cfg config.StructuredConfig, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		lockoutStorage: lockoutStorage,
		validator:      validators.NewRequestValidator(),
		uuidGenerator:  utils.NewUUIDGenerator(),
		tokenParams: utils.TokenParams{
			Issuer:   cfg.App.TokenIssuer,
			Audience: cfg.App.TokenAudience,
			SignKey:  cfg.App.TokenSignKey,
			Duration: cfg.App.TokenDuration,
		},
		maxFailedAccessAttempts: cfg.Identity.MaxFailedAccessAttempts,
		lockoutDuration:         cfg.Identity.LockoutDuration,
		bcryptCost:              cfg.Identity.BcryptCost,
		now:                     time.Now,
		logger:                  logger,
	}
}

// RegisterUser creates a new user account.
//
// The request is validated first; violations are returned as
// [validators.ValidationErrors]. The account is created with the email
// already confirmed and lockout enabled.
//
// Returns the persisted user or:
//   - [IdentityErrors] if the email is taken or the password cannot be hashed.
//   - A wrapped storage error for any other repository failure.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterUser) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Msg("registration request is invalid")
		return models.User{}, fmt.Errorf("registration request validation failed: %w", err)
	}

	passwordHash, err := utils.HashPassword(request.Password, a.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.User{}, IdentityErrors{msgPasswordTooLong}
		}
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:             a.uuidGenerator.Generate(),
		Email:          strings.TrimSpace(request.Email),
		PasswordHash:   passwordHash,
		EmailConfirmed: true,
		LockoutEnabled: true,
		Claims:         []models.Claim{},
		Roles:          []string{},
		CreatedAt:      a.now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Debug().Str("email", user.Email).Msg("email already in use")
			return models.User{}, IdentityErrors{fmt.Sprintf(msgDuplicateEmail, user.Email)}
		}
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Unknown emails and wrong passwords both yield [ErrInvalidCredentials].
// Unconfirmed or locked accounts yield [ErrUserLockedOut] without checking
// the password. Every wrong password counts towards the lockout; the attempt
// that reaches the limit locks the account and reports [ErrUserLockedOut].
// A successful login clears the counter.
func (a *authService) Login(ctx context.Context, request models.LoginUser) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Msg("login request is invalid")
		return models.User{}, fmt.Errorf("login request validation failed: %w", err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.EmailConfirmed {
		log.Info().Str("id", user.ID).Msg("login attempt on unconfirmed account")
		return models.User{}, ErrUserLockedOut
	}

	if user.LockoutEnabled {
		until, locked, err := a.lockoutStorage.LockedUntil(ctx, user.ID)
		if err != nil {
			log.Err(err).Str("id", user.ID).Msg("reading lockout state failed")
			return models.User{}, fmt.Errorf("reading lockout state failed: %w", err)
		}
		if locked && until.After(a.now()) {
			log.Info().Str("id", user.ID).Time("until", until).Msg("login attempt on locked account")
			return models.User{}, ErrUserLockedOut
		}
	}

	if err = utils.CheckPassword(user.PasswordHash, request.Password); err != nil {
		if !errors.Is(err, utils.ErrPasswordMismatch) {
			log.Err(err).Str("id", user.ID).Msg("password check failed")
			return models.User{}, fmt.Errorf("password check failed: %w", err)
		}
		if !user.LockoutEnabled {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, a.recordFailure(ctx, user)
	}

	if user.LockoutEnabled {
		if err = a.lockoutStorage.Reset(ctx, user.ID); err != nil {
			log.Err(err).Str("id", user.ID).Msg("resetting lockout state failed")
			return models.User{}, fmt.Errorf("resetting lockout state failed: %w", err)
		}
	}

	return user, nil
}

// recordFailure counts a wrong password and locks the account once the
// limit is reached. It always returns a non-nil error.
func (a *authService) recordFailure(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	count, err := a.lockoutStorage.RecordFailure(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("id", user.ID).Msg("recording failed login failed")
		return fmt.Errorf("recording failed login failed: %w", err)
	}

	if count < a.maxFailedAccessAttempts {
		log.Info().Str("id", user.ID).Int("failures", count).Msg("wrong password")
		return ErrInvalidCredentials
	}

	until := a.now().Add(a.lockoutDuration)
	if err = a.lockoutStorage.Lock(ctx, user.ID, until); err != nil {
		log.Err(err).Str("id", user.ID).Msg("locking account failed")
		return fmt.Errorf("locking account failed: %w", err)
	}
	log.Warn().Str("id", user.ID).Time("until", until).Msg("account locked after repeated failures")

	return ErrUserLockedOut
}

// CreateToken issues a signed JWT for the given user and wraps it in the
// login response.
//
// Roles are reported in the response as claims of type "role" next to the
// user's permission claims.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.LoginResponse, error) {
	token, err := utils.GenerateJWTToken(a.tokenParams, user)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	claims := make([]models.Claim, 0, len(user.Claims)+len(user.Roles))
	claims = append(claims, user.Claims...)
	for _, role := range user.Roles {
		claims = append(claims, models.Claim{Type: models.ClaimTypeRole, Value: role})
	}

	return models.LoginResponse{
		AccessToken: token.SignedString,
		ExpiresIn:   a.tokenParams.Duration.Seconds(),
		UserToken: models.UserToken{
			ID:     user.ID,
			Email:  user.Email,
			Claims: claims,
		},
	}, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer or audience, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenParams)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}
