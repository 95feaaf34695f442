package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/pkg/helpers"
)

func newTestAuthService(repo repository.UserRepository, google *GoogleVerifier) *AuthService {
	jwt := helpers.NewJWTManager("test-secret", "HS256", time.Hour)
	return NewAuthService(repo, jwt, google, nil)
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "pw12345",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, u.Role)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "pw12345", u.PasswordHash)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "pw12345",
		Role:     entity.Role("PRINCIPAL"),
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw12345"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "A@EXAMPLE.COM", Password: "pw12345"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginLocal(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw12345", Role: entity.RoleTeacher})
	require.NoError(t, err)

	u, token, err := svc.LoginLocal(ctx, "a@example.com", "pw12345")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RoleTeacher, u.Role)

	id, err := svc.JWT.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

// Unknown email, wrong password and passwordless accounts must be
// indistinguishable to the caller.
func TestLoginLocalUniformFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw12345"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &entity.User{
		Email: "google-only@example.com", Name: "G", Role: entity.RoleStudent, GoogleID: "sub-1",
	}))

	cases := []struct {
		name, email, password string
	}{
		{"unknown email", "nobody@example.com", "pw12345"},
		{"wrong password", "a@example.com", "wrong-pw"},
		{"federated-only account", "google-only@example.com", "pw12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.LoginLocal(ctx, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func googleVerifierFor(subject, email, name, picture string) *GoogleVerifier {
	validate := func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good-token" || audience != "client-web" {
			return nil, errors.New("invalid token")
		}
		return &idtoken.Payload{
			Issuer:  "https://accounts.google.com",
			Subject: subject,
			Claims: map[string]interface{}{
				"email":   email,
				"name":    name,
				"picture": picture,
			},
		}, nil
	}
	return NewGoogleVerifierWithValidator([]string{"client-web"}, validate, nil)
}

func TestLoginGoogleCreatesStudent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, googleVerifierFor("sub-9", "new@example.com", "New User", "http://img"))
	ctx := context.Background()

	u, token, err := svc.LoginGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RoleStudent, u.Role)
	assert.Equal(t, "sub-9", u.GoogleID)
	assert.Equal(t, "http://img", u.AvatarURL)
	assert.Empty(t, u.PasswordHash)
}

func TestLoginGoogleIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, googleVerifierFor("sub-9", "new@example.com", "New User", ""))
	ctx := context.Background()

	first, _, err := svc.LoginGoogle(ctx, "good-token")
	require.NoError(t, err)
	second, _, err := svc.LoginGoogle(ctx, "good-token")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	total, _ := repo.CountAll(ctx)
	assert.Equal(t, int64(1), total)
}

// A Google login on an email that already has a password account links the
// google id to it instead of creating another user, and keeps the role.
func TestLoginGoogleLinksExistingAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, googleVerifierFor("sub-9", "a@example.com", "Other Name", "http://img"))
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Name: "A", Email: "a@example.com", Password: "pw12345", Role: entity.RoleTeacher,
	})
	require.NoError(t, err)

	u, _, err := svc.LoginGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, entity.RoleTeacher, u.Role)
	assert.Equal(t, "sub-9", u.GoogleID)
	assert.Equal(t, "http://img", u.AvatarURL) // adopted, account had none
	assert.Equal(t, "A", u.Name)               // existing name kept

	// Password login still works on the linked account.
	_, _, err = svc.LoginLocal(ctx, "a@example.com", "pw12345")
	assert.NoError(t, err)
}

func TestLoginGoogleKeepsExistingAvatar(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, googleVerifierFor("sub-9", "a@example.com", "A", "http://google-img"))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{
		Email: "a@example.com", Name: "A", Role: entity.RoleStudent, AvatarURL: "http://custom-img",
	}))

	u, _, err := svc.LoginGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, "http://custom-img", u.AvatarURL)
}

// racedUserRepo simulates losing the insert race to a concurrent first
// login: Create stores the other session's row and reports a conflict.
type racedUserRepo struct {
	*fakeUserRepo
	raced bool
}

func (r *racedUserRepo) Create(ctx context.Context, u *entity.User) error {
	if u.GoogleID != "" && !r.raced {
		r.raced = true
		winner := &entity.User{
			Email: u.Email, Name: u.Name, Role: entity.RoleStudent, GoogleID: u.GoogleID,
		}
		if err := r.fakeUserRepo.Create(ctx, winner); err != nil {
			return err
		}
		return repository.ErrConflict
	}
	return r.fakeUserRepo.Create(ctx, u)
}

func TestLoginGoogleConflictResolvesToWinner(t *testing.T) {
	repo := &racedUserRepo{fakeUserRepo: newFakeUserRepo()}
	svc := newTestAuthService(repo, googleVerifierFor("sub-9", "new@example.com", "New User", ""))
	ctx := context.Background()

	u, token, err := svc.LoginGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "sub-9", u.GoogleID)
	assert.True(t, repo.raced)

	total, _ := repo.CountAll(ctx)
	assert.Equal(t, int64(1), total)
}

func TestLoginGoogleBadToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, googleVerifierFor("sub-9", "a@example.com", "A", ""))

	_, _, err := svc.LoginGoogle(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	total, _ := repo.CountAll(context.Background())
	assert.Zero(t, total)
}

func TestGetProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw12345"})
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
