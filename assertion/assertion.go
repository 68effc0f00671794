// Package assertion build the signed client assertion exchanged at sign in for the user authorization.
package assertion

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// DefaultAudience audience of the jwt grant
const DefaultAudience = "https://idproxy.kore.com/authorize"

// DefaultLifetime validity of a new assertion
const DefaultLifetime = time.Hour

var (
	// ErrEmptySecret signing without client secret
	ErrEmptySecret = errors.New("assertion: client secret is empty")
	// ErrInvalidAssertion parse or signature failure
	ErrInvalidAssertion = errors.New("assertion: invalid token")
)

var now = time.Now

// Claims payload of the client assertion
type Claims struct {
	ClientID    string        `json:"-"`
	Identity    string        `json:"-"`
	Audience    string        `json:"-"`
	IsAnonymous bool          `json:"isAnonymous"`
	Lifetime    time.Duration `json:"-"`
	jwt.StandardClaims
}

// New sign claims with HS256, iss is the client id and sub the user identity
func New(claims Claims, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	issuedAt := now()
	if claims.Lifetime <= 0 {
		claims.Lifetime = DefaultLifetime
	}
	if claims.Audience == "" {
		claims.Audience = DefaultAudience
	}
	claims.StandardClaims = jwt.StandardClaims{
		Issuer:    claims.ClientID,
		Subject:   claims.Identity,
		Audience:  claims.Audience,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: issuedAt.Add(claims.Lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(secret))
}

// Parse verify token signed by New and return its claims
func Parse(token, secret string) (*Claims, error) {
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidAssertion
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidAssertion
	}

	claims.ClientID = claims.Issuer
	claims.Identity = claims.Subject
	claims.Audience = claims.StandardClaims.Audience
	return claims, nil
}
