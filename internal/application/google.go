package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/idtoken"
)

// Google's canonical issuer values; anything else in a verified payload is
// rejected even though the signature checked out.
var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// GoogleIdentity is the verified identity extracted from a Google ID token.
type GoogleIdentity struct {
	GoogleID  string // the "sub" claim, stable per Google account
	Email     string
	Name      string // may be absent from the token
	AvatarURL string // "picture" claim, may be absent
}

// ValidateFunc verifies a raw ID token against one audience. Production code
// uses idtoken.Validate, which fetches and caches Google's public keys over
// the network; tests substitute a local implementation.
type ValidateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier verifies Google ID tokens issued for any of the configured
// audiences (one client id per frontend platform).
type GoogleVerifier struct {
	audiences []string
	validate  ValidateFunc
	logger    *logrus.Logger
}

func NewGoogleVerifier(audiences []string, logger *logrus.Logger) *GoogleVerifier {
	return &GoogleVerifier{audiences: audiences, validate: idtoken.Validate, logger: logger}
}

// NewGoogleVerifierWithValidator is used by tests to bypass the network call.
func NewGoogleVerifierWithValidator(audiences []string, validate ValidateFunc, logger *logrus.Logger) *GoogleVerifier {
	return &GoogleVerifier{audiences: audiences, validate: validate, logger: logger}
}

// Verify tries each configured audience in order and accepts the first one
// the token validates against. The last underlying error is kept for
// diagnostics when none match.
func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	if len(g.audiences) == 0 {
		return nil, errors.New("no google audiences configured")
	}

	var payload *idtoken.Payload
	var lastErr error
	for _, aud := range g.audiences {
		p, err := g.validate(ctx, rawToken, aud)
		if err != nil {
			lastErr = err
			continue
		}
		payload = p
		break
	}
	if payload == nil {
		return nil, fmt.Errorf("google token verification failed: %w", lastErr)
	}

	if !googleIssuers[payload.Issuer] {
		return nil, fmt.Errorf("unexpected google token issuer %q", payload.Issuer)
	}

	id := &GoogleIdentity{GoogleID: payload.Subject}
	id.Email, _ = payload.Claims["email"].(string)
	id.Name, _ = payload.Claims["name"].(string)
	id.AvatarURL, _ = payload.Claims["picture"].(string)
	if id.GoogleID == "" || id.Email == "" {
		return nil, errors.New("google token payload missing subject or email")
	}
	return id, nil
}
