package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the JWT payload for both access and refresh tokens. The
// subject carries the username; validity is fully derivable from the
// registered claims plus the signature.
type AppClaims struct {
	jwt.RegisteredClaims
}
