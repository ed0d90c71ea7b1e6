package domain

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

// Claims é o conteúdo do token emitido no login administrativo
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
