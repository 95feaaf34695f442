package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/pkg/helpers"
)

// AuthService owns registration and both login paths. Successful logins end
// with the JWT manager issuing a bearer token for the resolved user.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Google *GoogleVerifier
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, google *GoogleVerifier, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Google: google, Logger: logger}
}

// RegisterInput carries the registration payload. Role defaults to STUDENT
// when empty.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Role       entity.Role
}

// Register creates a password-based account. Duplicate emails surface as
// ErrEmailTaken whether caught by the pre-check or by the unique constraint.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleStudent
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		Department:   in.Department,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// LoginLocal authenticates an email/password pair and issues a token.
// Unknown email, wrong password and Google-only accounts all collapse into
// ErrInvalidCredentials; the true cause is only logged.
func (s *AuthService) LoginLocal(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, "", err
		}
		s.debugAuthFailure(email, "unknown email")
		return nil, "", ErrInvalidCredentials
	}
	if u.PasswordHash == "" {
		s.debugAuthFailure(email, "federated-only account")
		return nil, "", ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		s.debugAuthFailure(email, "password mismatch")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.JWT.Issue(u.ID, 0)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LoginGoogle verifies a Google ID token, resolves it to a local user
// (creating or linking as needed) and issues a token.
func (s *AuthService) LoginGoogle(ctx context.Context, rawToken string) (*entity.User, string, error) {
	identity, err := s.Google.Verify(ctx, rawToken)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("google login rejected")
		}
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.resolveOrCreate(ctx, identity)
	if err != nil {
		return nil, "", err
	}

	token, err := s.JWT.Issue(u.ID, 0)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// resolveOrCreate maps a verified Google identity to a local user:
//  1. existing user with the google id → returned unchanged;
//  2. existing user with the email → google id linked onto it, avatar
//     adopted when the account has none;
//  3. otherwise a fresh STUDENT account with no password.
//
// Two racing first logins can both reach the insert; the unique constraint on
// google_id turns the loser into a conflict, retried as a lookup.
func (s *AuthService) resolveOrCreate(ctx context.Context, identity *GoogleIdentity) (*entity.User, error) {
	u, err := s.Users.GetByGoogleID(ctx, identity.GoogleID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	u, err = s.Users.GetByEmail(ctx, identity.Email)
	if err == nil {
		u.GoogleID = identity.GoogleID
		if u.AvatarURL == "" && identity.AvatarURL != "" {
			u.AvatarURL = identity.AvatarURL
		}
		if err := s.Users.Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	u = &entity.User{
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      entity.RoleStudent,
		AvatarURL: identity.AvatarURL,
		GoogleID:  identity.GoogleID,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost a race with a concurrent first login for the same account.
			return s.Users.GetByGoogleID(ctx, identity.GoogleID)
		}
		return nil, err
	}
	return u, nil
}

// GetProfile loads a user by id.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) debugAuthFailure(email, cause string) {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"email": email, "cause": cause}).Debug("login rejected")
	}
}
