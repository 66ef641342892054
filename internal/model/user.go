package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// User - учетная запись. Средства пользователя лежат не здесь,
// а на его токен-счетах (TokenAccount).
type User struct {
	ID       int
	Name     string
	Login    string
	Password string
}

type UserClaims struct {
	jwt.RegisteredClaims
}
