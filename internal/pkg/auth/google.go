package auth

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// ErrGoogleVerification is returned when an ID token fails signature or
// audience verification.
var ErrGoogleVerification = errors.New("google id token verification failed")

// GoogleIdentity holds the subset of ID token claims the platform uses.
type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// GoogleVerifier verifies Google ID tokens against a configured client ID.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier bound to an OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify checks the token signature and audience, then decodes the claims.
func (g *GoogleVerifier) Verify(idToken string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return nil, ErrGoogleVerification
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, ErrGoogleVerification
	}
	if claimSet.Email == "" {
		return nil, ErrGoogleVerification
	}

	return &GoogleIdentity{
		Sub:   claimSet.Sub,
		Email: claimSet.Email,
		Name:  claimSet.Name,
	}, nil
}
