// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for JWT token inspection, identifier generation,
// and other common operations.
package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ParseUserIDFromJWT extracts the record id claim from a backend auth
// token without verifying the signature. The server is the authority on
// token validity; the client only needs the ambient user id for filter
// scoping and session bookkeeping.
func ParseUserIDFromJWT(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", errors.New("token has no user id claim")
	}
	return id, nil
}
