// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"inventory/internal/delivery/http/response"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// CredentialsRequest is the body of /register and /login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse acknowledges a new account. The password digest never leaves the service.
type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// LoginResponse carries the access token.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, RegisterResponse{
		Message:  "User registered successfully",
		Username: output.User.Username,
	})
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, LoginResponse{
		Message:  "Login successful",
		Token:    output.Token,
		Username: output.User.Username,
	})
}

func bindCredentials(c echo.Context) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return nil, domainerrors.ErrMissingField
	}

	return &req, nil
}
