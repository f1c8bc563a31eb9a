package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/devconnect-be/internal/auth"
	"github.com/isdelr/devconnect-be/internal/services"
	"github.com/isdelr/devconnect-be/internal/validation"
	"github.com/rs/zerolog/log"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

// UserHandler handles registration, login and the current-user lookup.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  TokenIssuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens TokenIssuer) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6" msg:"Please enter a password with 6 or more characters"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a user and returns a token for it.
func (h *UserHandler) Register(req *Request) Result {
	var payload RegisterPayload
	if res, ok := bind(req, &payload); !ok {
		return res
	}

	_, err := h.service.GetUserByEmail(req.Context(), payload.Email)
	switch {
	case err == nil:
		return Errors(validation.FieldError{Msg: "User already exists"})
	case !errors.Is(err, services.ErrNotFound):
		return ServerError(err, "Failed to look up user by email")
	}

	user, err := h.service.CreateUser(req.Context(), payload.Name, payload.Email, payload.Password)
	if errors.Is(err, services.ErrPasswordTooLong) {
		return Errors(validation.FieldError{Msg: "Please enter a password of at most 72 bytes", Param: "password", Location: "body"})
	}
	if err != nil {
		return ServerError(err, "Failed to register user")
	}
	log.Info().Str("user_id", user.ID).Msg("User registered")

	return h.issue(user.ID)
}

// Login checks credentials and returns a token.
func (h *UserHandler) Login(req *Request) Result {
	var payload AuthPayload
	if res, ok := bind(req, &payload); !ok {
		return res
	}

	user, err := h.service.AuthenticateUser(req.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			return Errors(validation.FieldError{Msg: "Invalid Credentials"})
		}
		return ServerError(err, "Failed to authenticate user")
	}

	return h.issue(user.ID)
}

// Me returns the authenticated user without the password hash.
func (h *UserHandler) Me(req *Request) Result {
	user, err := h.service.GetUserByID(req.Context(), req.UserID())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return Msg(http.StatusBadRequest, "User not found")
		}
		return ServerError(err, "Failed to load current user")
	}
	return OK(user)
}

func (h *UserHandler) issue(userID string) Result {
	token, err := h.tokens.Issue(auth.Identity{ID: userID})
	if err != nil {
		return ServerError(err, "Failed to generate JWT")
	}
	return OK(tokenResponse{Token: token})
}
