package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"media-planner/api/middleware"
	"media-planner/dto"
	"media-planner/services"
)

// RegisterHandler creates a new account from an email/password pair.
func RegisterHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.Credentials
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		user, err := authSvc.Register(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			var vErr *services.ValidationError
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			case errors.As(err, &vErr):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			}
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler verifies credentials and returns a bearer token.
func LoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.Credentials
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		token, err := authSvc.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// MeHandler returns the authenticated account.
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
