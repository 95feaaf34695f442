package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func payloadFor(subject, email string) *idtoken.Payload {
	return &idtoken.Payload{
		Issuer:  "accounts.google.com",
		Subject: subject,
		Claims:  map[string]interface{}{"email": email},
	}
}

func TestGoogleVerifyTriesAudiencesInOrder(t *testing.T) {
	var tried []string
	validate := func(_ context.Context, _ string, audience string) (*idtoken.Payload, error) {
		tried = append(tried, audience)
		if audience != "client-android" {
			return nil, errors.New("audience mismatch")
		}
		return payloadFor("sub-1", "a@example.com"), nil
	}
	v := NewGoogleVerifierWithValidator([]string{"client-web", "client-ios", "client-android"}, validate, nil)

	id, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, []string{"client-web", "client-ios", "client-android"}, tried)
	assert.Equal(t, "sub-1", id.GoogleID)
	assert.Equal(t, "a@example.com", id.Email)
}

func TestGoogleVerifyKeepsLastError(t *testing.T) {
	calls := 0
	validate := func(_ context.Context, _ string, _ string) (*idtoken.Payload, error) {
		calls++
		return nil, errors.New("boom " + string(rune('0'+calls)))
	}
	v := NewGoogleVerifierWithValidator([]string{"a", "b"}, validate, nil)

	_, err := v.Verify(context.Background(), "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom 2")
}

func TestGoogleVerifyRejectsForeignIssuer(t *testing.T) {
	validate := func(_ context.Context, _ string, _ string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Issuer:  "https://evil.example.com",
			Subject: "sub-1",
			Claims:  map[string]interface{}{"email": "a@example.com"},
		}, nil
	}
	v := NewGoogleVerifierWithValidator([]string{"a"}, validate, nil)

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorContains(t, err, "issuer")
}

func TestGoogleVerifyRequiresSubjectAndEmail(t *testing.T) {
	validate := func(_ context.Context, _ string, _ string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Issuer: "accounts.google.com", Subject: "sub-1", Claims: map[string]interface{}{}}, nil
	}
	v := NewGoogleVerifierWithValidator([]string{"a"}, validate, nil)

	_, err := v.Verify(context.Background(), "token")
	assert.Error(t, err)
}

func TestGoogleVerifyNoAudiences(t *testing.T) {
	v := NewGoogleVerifierWithValidator(nil, nil, nil)

	_, err := v.Verify(context.Background(), "token")
	assert.Error(t, err)
}

func TestGoogleVerifyOptionalClaims(t *testing.T) {
	validate := func(_ context.Context, _ string, _ string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Issuer:  "https://accounts.google.com",
			Subject: "sub-1",
			Claims: map[string]interface{}{
				"email":   "a@example.com",
				"name":    "Alice",
				"picture": "http://img",
			},
		}, nil
	}
	v := NewGoogleVerifierWithValidator([]string{"a"}, validate, nil)

	id, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "Alice", id.Name)
	assert.Equal(t, "http://img", id.AvatarURL)
}
