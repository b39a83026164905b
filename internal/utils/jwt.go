package utils // package utils provides helpers for signing and verifying checkout tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
	"github.com/google/uuid"
)

// ErrInvalidCheckoutToken is returned when a checkout token cannot be
// verified: bad signature, wrong algorithm, expired or malformed claims.
var ErrInvalidCheckoutToken = errors.New("invalid checkout token")

// CheckoutClaims pins a checkout session to one experience, slot and
// quantity.  The session id travels in the standard jti claim.
type CheckoutClaims struct {
	ExperienceID string `json:"experience_id"`
	SlotID       string `json:"slot_id"`
	Quantity     int    `json:"quantity"`
	jwt.RegisteredClaims
}

// CheckoutToken is a signed checkout session along with its expiry.  The
// Token field is sent back by the client in the Authorization header of
// the quote and booking calls.
type CheckoutToken struct {
	Token     string    // the serialized JWT string
	SessionID string    // random session id, also the jti claim
	Exp       time.Time // the UTC expiration time
}

// NewCheckoutToken builds and signs an HS256 JWT for a prepared checkout.
// ttlMin is the lifetime in minutes; values below one are treated as one.
func NewCheckoutToken(secret, experienceID, slotID string, quantity, ttlMin int) (CheckoutToken, error) {
	if ttlMin < 1 {
		ttlMin = 1
	}
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	sid := uuid.NewString()

	claims := CheckoutClaims{
		ExperienceID: experienceID,
		SlotID:       slotID,
		Quantity:     quantity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sid,
			Subject:   experienceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return CheckoutToken{}, err
	}
	return CheckoutToken{Token: signed, SessionID: sid, Exp: exp}, nil
}

// ParseCheckoutToken verifies raw against secret and returns its claims.
// Only HS256 is accepted so a token cannot downgrade the algorithm.
func ParseCheckoutToken(secret, raw string) (*CheckoutClaims, error) {
	claims := &CheckoutClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidCheckoutToken
	}
	if claims.ExperienceID == "" || claims.SlotID == "" || claims.Quantity < 1 {
		return nil, ErrInvalidCheckoutToken
	}
	return claims, nil
}
