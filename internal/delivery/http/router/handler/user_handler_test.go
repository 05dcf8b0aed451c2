package handler

import (
	"net/http"
	"testing"
	"time"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	mockUsecase "inventory/internal/mocks/usecase"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserTestEcho(t *testing.T) (*echo.Echo, *mockUsecase.MockUserUsecase) {
	uc := mockUsecase.NewMockUserUsecase(t)
	h := NewUserHandler(uc)

	e := newTestEcho()
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)

	return e, uc
}

func TestUserHandler_Register(t *testing.T) {
	e, uc := newUserTestEcho(t)

	uc.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{Username: "alice", Password: "secret123"}).
		Return(&usecase.RegisterOutput{User: &entity.User{ID: 1, Username: "alice", PasswordHash: "$2a$10$x"}}, nil)

	rec := doJSON(t, e, http.MethodPost, "/register", `{"username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"User registered successfully","username":"alice"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestUserHandler_Register_MissingField(t *testing.T) {
	e, _ := newUserTestEcho(t)

	for _, body := range []string{`{"username":"alice"}`, `{"password":"x"}`, `{}`, `{"username":"","password":""}`} {
		rec := doJSON(t, e, http.MethodPost, "/register", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"message":"Username and password are required","code":"MISSING_FIELD"}`, rec.Body.String(), body)
	}
}

func TestUserHandler_Register_MalformedJSON(t *testing.T) {
	e, _ := newUserTestEcho(t)

	rec := doJSON(t, e, http.MethodPost, "/register", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestUserHandler_Register_UsernameTaken(t *testing.T) {
	e, uc := newUserTestEcho(t)

	uc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUsernameTaken)

	rec := doJSON(t, e, http.MethodPost, "/register", `{"username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Username already exists","code":"USERNAME_TAKEN"}`, rec.Body.String())
}

func TestUserHandler_Login(t *testing.T) {
	e, uc := newUserTestEcho(t)

	uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Username: "alice", Password: "secret123"}).
		Return(&usecase.LoginOutput{
			Token:     "signed.jwt.token",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      &entity.User{ID: 1, Username: "alice"},
		}, nil)

	rec := doJSON(t, e, http.MethodPost, "/login", `{"username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Login successful","token":"signed.jwt.token","username":"alice"}`, rec.Body.String())
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	e, uc := newUserTestEcho(t)

	uc.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

	rec := doJSON(t, e, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password","code":"INVALID_CREDENTIALS"}`, rec.Body.String())
}
