package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for admin authentication
type AdminClaims struct {
	Username     string `json:"username"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	jwt.RegisteredClaims
}

// Admin describes the authenticated admin identity
type Admin struct {
	Username     string `json:"username"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Admin   Admin  `json:"admin"`
}
