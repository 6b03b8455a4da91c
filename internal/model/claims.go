package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims Claims токена доступа к сессии. Subject - ID сессии
type SessionClaims struct {
	jwt.RegisteredClaims
}
