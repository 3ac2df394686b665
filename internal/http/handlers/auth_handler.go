package handlers

import (
	"net/http"

	"tourdesk/internal/http/middleware"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users services.UserService
}

func (h AuthHandler) users(c *gin.Context) services.UserService {
	svc := h.Users
	svc.RequestID = requestID(c)
	return svc
}

func (h AuthHandler) Register(c *gin.Context) {
	var in services.RegisterUserInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.users(c).Register(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, u, "user registered")
}

func (h AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	token, u, err := h.users(c).Login(in.Email, in.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"token": token, "user": u}, "login successful")
}

func (h AuthHandler) Profile(c *gin.Context) {
	u, err := h.users(c).Profile(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u, "")
}
