package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid covers every decode failure: bad signature, expiry, wrong
// algorithm or a malformed payload. Callers cannot tell them apart.
var ErrInvalid = errors.New("invalid token")

// Claims is the session snapshot carried by a bearer token.
type Claims struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	jwt.RegisteredClaims
}

// Codec signs with the current secret and verifies with the current secret
// followed by any previous ones.
type Codec struct {
	secret   []byte
	previous [][]byte
	ttl      time.Duration
	now      func() time.Time
}

func NewCodec(secret string, previous []string, ttl time.Duration) *Codec {
	c := &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, p := range previous {
		if p != "" {
			c.previous = append(c.previous, []byte(p))
		}
	}
	return c
}

// Issue signs {login, passwordHash, exp=now+ttl}.
func (c *Codec) Issue(login, passwordHash string) (string, error) {
	now := c.now().UTC()
	claims := &Claims{
		Login:    login,
		Password: passwordHash,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode returns the claims of a well-signed, unexpired token or ErrInvalid.
func (c *Codec) Decode(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalid
	}
	if claims, err := c.decodeWith(raw, c.secret); err == nil {
		return claims, nil
	}
	for _, key := range c.previous {
		if claims, err := c.decodeWith(raw, key); err == nil {
			return claims, nil
		}
	}
	return nil, ErrInvalid
}

func (c *Codec) decodeWith(raw string, key []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid || claims.Login == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
