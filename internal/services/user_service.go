package services

import (
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/idgen"
	"tourdesk/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles back-office staff accounts and login tokens.
type UserService struct {
	Users     UserStore
	IDs       IDSource
	JWTSecret string
	RequestID string
	Now       func() time.Time
}

func (s UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

const tokenTTL = 24 * time.Hour

type RegisterUserInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s UserService) Register(in RegisterUserInput) (models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))

	if in.FullName == "" {
		return models.User{}, domain.ValidationError{Field: "fullName", Msg: "required"}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "valid email required"}
	}
	if len(in.Password) < 8 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "at least 8 characters"}
	}
	switch in.Role {
	case models.RoleAdmin, models.RoleOperator, models.RoleAccounts:
	default:
		return models.User{}, domain.ValidationError{Field: "role", Msg: "unknown role"}
	}

	if _, err := s.Users.GetByEmail(in.Email); err == nil {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	} else if !domain.IsNotFound(err) {
		return models.User{}, domain.InternalError{Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	id, err := s.IDs.Next(idgen.EntityUser)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	u := models.User{
		ID:           id,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    s.now(),
	}
	if err := s.Users.Create(u); err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "user", "register", "id="+u.ID+" role="+u.Role)
	return u, nil
}

// Login checks the credentials and returns a signed bearer token. The
// same message covers unknown email and wrong password.
func (s UserService) Login(email, password string) (string, models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Users.GetByEmail(email)
	if domain.IsNotFound(err) {
		return "", models.User{}, domain.ValidationError{Msg: "invalid email or password"}
	}
	if err != nil {
		return "", models.User{}, domain.InternalError{Err: err}
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", models.User{}, domain.ValidationError{Msg: "invalid email or password"}
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.JWTSecret))
	if err != nil {
		return "", models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "user", "login", "id="+u.ID)
	return signed, u, nil
}

func (s UserService) Profile(id string) (models.User, error) {
	return s.Users.GetByID(id)
}
