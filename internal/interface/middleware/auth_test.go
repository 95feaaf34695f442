package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/pkg/helpers"
)

// fakeUsers serves GetByID from a map; the remaining methods are unused by
// the middleware.
type fakeUsers map[int64]*entity.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f fakeUsers) Create(context.Context, *entity.User) error { return nil }
func (f fakeUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (f fakeUsers) GetByGoogleID(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (f fakeUsers) Update(context.Context, *entity.User) error { return nil }
func (f fakeUsers) List(context.Context, string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (f fakeUsers) ListAll(context.Context) ([]*entity.User, error) { return nil, nil }
func (f fakeUsers) CountAll(context.Context) (int64, error)         { return 0, nil }
func (f fakeUsers) CountCreatedSince(context.Context, time.Time) (int64, error) {
	return 0, nil
}

var _ repository.UserRepository = (fakeUsers)(nil)

func newAuthRouter(jwt *helpers.JWTManager, users fakeUsers, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Auth(jwt, users)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, u.Email)
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("s", "HS256", time.Hour)
	r := newAuthRouter(jwt, fakeUsers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthBadToken(t *testing.T) {
	jwt := helpers.NewJWTManager("s", "HS256", time.Hour)
	r := newAuthRouter(jwt, fakeUsers{})

	for _, header := range []string{"Bearer garbage", "Basic abc", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthDeletedUser(t *testing.T) {
	jwt := helpers.NewJWTManager("s", "HS256", time.Hour)
	r := newAuthRouter(jwt, fakeUsers{})

	token, err := jwt.Issue(42, 0)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("s", "HS256", time.Hour)
	users := fakeUsers{7: {ID: 7, Email: "a@example.com", Role: entity.RoleStudent}}
	r := newAuthRouter(jwt, users)

	token, err := jwt.Issue(7, 0)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token) // scheme is case-insensitive
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@example.com", w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	jwt := helpers.NewJWTManager("s", "HS256", time.Hour)
	users := fakeUsers{
		1: {ID: 1, Email: "admin@example.com", Role: entity.RoleAdmin},
		2: {ID: 2, Email: "student@example.com", Role: entity.RoleStudent},
	}
	r := newAuthRouter(jwt, users, RequireAdmin())

	cases := []struct {
		userID int64
		want   int
	}{
		{1, http.StatusOK},
		{2, http.StatusForbidden},
	}
	for _, tc := range cases {
		token, err := jwt.Issue(tc.userID, 0)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code)
	}
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireRoles(entity.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
