package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleAccounts = "ACCOUNTS"
)

// User is a back-office staff account.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
