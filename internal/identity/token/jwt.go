// Package token verifies bearer credentials. Token issuance belongs to the
// upstream auth service; the signer here exists for dev seeding and tests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"reliefops/pkg/domain"
	dErrors "reliefops/pkg/domain-errors"
)

// Claims are the claims expected on access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens and extracts the subject user id.
type Verifier struct {
	signingKey []byte
	issuer     string
}

func NewVerifier(signingKey, issuer string) *Verifier {
	return &Verifier{signingKey: []byte(signingKey), issuer: issuer}
}

// Verify parses and validates tokenString, returning the subject user id.
// All failure modes (malformed, expired, bad signature, wrong issuer, bad
// user id claim) come back as CodeUnauthorized; callers degrade to anonymous.
func (v *Verifier) Verify(tokenString string) (domain.UserID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return domain.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	userID, err := domain.ParseUserID(claims.UserID)
	if err != nil {
		return domain.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid user id claim")
	}
	return userID, nil
}

// Signer mints tokens compatible with Verifier. Dev and test use only.
type Signer struct {
	signingKey []byte
	issuer     string
}

func NewSigner(signingKey, issuer string) *Signer {
	return &Signer{signingKey: []byte(signingKey), issuer: issuer}
}

// Sign issues a token for userID valid for expiresIn.
func (s *Signer) Sign(userID domain.UserID, expiresIn time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return t.SignedString(s.signingKey)
}
