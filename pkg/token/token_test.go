package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueDecode(t *testing.T) {
	c := NewCodec("s3cret", nil, 24*time.Hour)
	raw, err := c.Issue("alice", "$2a$hash")
	require.NoError(t, err)

	claims, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Login)
	assert.Equal(t, "$2a$hash", claims.Password)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestDecodeFailuresCollapse(t *testing.T) {
	c := NewCodec("s3cret", nil, time.Hour)
	raw, err := c.Issue("alice", "h")
	require.NoError(t, err)

	other := NewCodec("different", nil, time.Hour)
	_, err = other.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalid)

	expired := NewCodec("s3cret", nil, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("alice", "h")
	require.NoError(t, err)
	_, err = c.Decode(old)
	assert.ErrorIs(t, err, ErrInvalid)

	for _, bad := range []string{"", "garbage", raw + "x"} {
		_, err = c.Decode(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestDecodeRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{Login: "alice", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = NewCodec("s3cret", nil, time.Hour).Decode(raw)
	assert.ErrorIs(t, err, ErrInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewCodec("s3cret", nil, time.Hour).Decode(none)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeWithPreviousSecret(t *testing.T) {
	old := NewCodec("old", nil, time.Hour)
	raw, err := old.Issue("bob", "h")
	require.NoError(t, err)

	rotated := NewCodec("new", []string{"", "old"}, time.Hour)
	claims, err := rotated.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Login)

	fresh, err := rotated.Issue("bob", "h")
	require.NoError(t, err)
	_, err = old.Decode(fresh)
	assert.ErrorIs(t, err, ErrInvalid)
}
