package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Dilshanrad22/mind-case-backend/server/auth"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

const minPasswordLength = 6

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userView `json:"user"`
}

// Signup registers a new user and returns a signed access token.
func (s *APIV1Service) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return respondError(c, apierr.Validation("All fields are required"))
	}
	if len(req.Password) < minPasswordLength {
		return respondError(c, apierr.Validation("Password must be at least 6 characters"))
	}

	existing, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return respondError(c, err)
	}
	if existing != nil {
		return respondError(c, apierr.Validation("User already exists"))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return respondError(c, err)
	}

	now := time.Now().Unix()
	user, err := s.Store.CreateUser(ctx, &store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedTs:    now,
		UpdatedTs:    now,
	})
	if err != nil {
		return respondError(c, err)
	}

	token, err := auth.GenerateAccessToken(user.ID, s.Secret, time.Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    userView{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Login verifies credentials and returns a signed access token.
func (s *APIV1Service) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return respondError(c, apierr.Validation("All fields are required"))
	}

	user, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return respondError(c, err)
	}
	if user == nil || !auth.ComparePassword(user.PasswordHash, req.Password) {
		return respondError(c, apierr.Unauthorized("Invalid credentials"))
	}

	token, err := auth.GenerateAccessToken(user.ID, s.Secret, time.Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    userView{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// GetProfile returns the authenticated user's profile.
func (s *APIV1Service) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	user, err := s.Store.GetUser(ctx, &store.FindUser{ID: &userID})
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return respondError(c, apierr.NotFound("User not found"))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    userView{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
