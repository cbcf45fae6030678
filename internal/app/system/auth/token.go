package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the identity provider puts in its session tokens. The
// subject is the provider's stable user id, which keys the internal user row.
type Claims struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken verifies an identity-provider token and returns its claims.
// The signature, signing method, and issuer are all checked; expiry is
// enforced by the jwt library's default validation.
func ParseToken(secret, issuer, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
