package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutTokenRoundTrip(t *testing.T) {
	tok, err := NewCheckoutToken("s3cret", "exp-1", "slot-1", 3, 15)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.SessionID)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseCheckoutToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "exp-1", claims.ExperienceID)
	assert.Equal(t, "slot-1", claims.SlotID)
	assert.Equal(t, 3, claims.Quantity)
	assert.Equal(t, tok.SessionID, claims.ID)
}

func TestParseCheckoutTokenRejects(t *testing.T) {
	good, err := NewCheckoutToken("s3cret", "exp-1", "slot-1", 1, 5)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, CheckoutClaims{
		ExperienceID: "exp-1",
		SlotID:       "slot-1",
		Quantity:     1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredRaw, err := expired.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, CheckoutClaims{
		ExperienceID: "exp-1",
		SlotID:       "slot-1",
		Quantity:     1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	noneRaw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct {
		secret string
		raw    string
	}{
		"wrong secret": {"other", good.Token},
		"expired":      {"s3cret", expiredRaw},
		"alg none":     {"s3cret", noneRaw},
		"garbage":      {"s3cret", "not.a.jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCheckoutToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidCheckoutToken)
		})
	}
}
