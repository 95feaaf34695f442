package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
}

func validate(t *testing.T, v sample) map[string]string {
	t.Helper()
	Init()
	err := binding.Validator.ValidateStruct(&v)
	if err == nil {
		return nil
	}
	return ToDetails(err)
}

func TestValidSample(t *testing.T) {
	details := validate(t, sample{Email: "a@example.com", Password: "pw12345", Role: "ADMIN"})
	assert.Nil(t, details)
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	details := validate(t, sample{Password: "pw12345"})
	require.NotNil(t, details)
	assert.Contains(t, details, "email")
	assert.NotContains(t, details, "Email")
}

func TestPasswordMinLength(t *testing.T) {
	details := validate(t, sample{Email: "a@example.com", Password: "pw1234"})
	require.NotNil(t, details)
	assert.Contains(t, details, "password")

	details = validate(t, sample{Email: "a@example.com", Password: "pw12345"})
	assert.Nil(t, details)
}

func TestRoleMustBeKnown(t *testing.T) {
	details := validate(t, sample{Email: "a@example.com", Password: "pw12345", Role: "PRINCIPAL"})
	require.NotNil(t, details)
	assert.Contains(t, details, "role")

	for _, role := range []string{"ADMIN", "TEACHER", "STUDENT", ""} {
		details := validate(t, sample{Email: "a@example.com", Password: "pw12345", Role: role})
		assert.Nil(t, details, role)
	}
}
