package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims carries the JWT payload for an authenticated admin session.
type AdminClaims struct {
	jwt.RegisteredClaims
	AdminID      uint   `json:"admin_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}
