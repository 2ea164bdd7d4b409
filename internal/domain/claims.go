package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleService = "service"
	RoleAdmin   = "admin"
	RoleViewer  = "viewer"
)

// Claims são as claims dos tokens aceitos pelos endpoints internos
type Claims struct {
	Role           string  `json:"role"`
	OrganizationID *string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

func IsValidRole(role string) bool {
	switch role {
	case RoleService, RoleAdmin, RoleViewer:
		return true
	}
	return false
}
