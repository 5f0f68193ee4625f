package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/vrushti/clinic_backend/internal/service/user"
)

type AuthHandler struct {
	svc user.Service
	log *slog.Logger
}

func NewAuthHandler(svc user.Service, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{svc: svc, log: log}
}

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrNameRequired),
		errors.Is(err, user.ErrInvalidPhone),
		errors.Is(err, user.ErrPasswordTooShort):
		return badRequest(c, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		return unauthorized(c, err.Error())
	case errors.Is(err, user.ErrOTPInvalid):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	u, err := h.svc.Register(c.Context(), user.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return created(c, u, "user registered")
}

// POST /auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Email == "" || body.Password == "" {
		return badRequest(c, "email and password are required")
	}

	u, err := h.svc.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, u, "login successful")
}

// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Email == "" {
		return badRequest(c, "email is required")
	}

	if err := h.svc.ForgotPassword(c.Context(), body.Email); err != nil {
		h.log.ErrorContext(c.Context(), "forgot password failed", "error", err)
		return internalError(c)
	}

	// The response is identical whether or not the account exists.
	return ok(c, nil, "if the email is registered, a reset code has been sent")
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var body struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Email == "" || body.OTP == "" {
		return badRequest(c, "email and otp are required")
	}

	err := h.svc.ResetPassword(c.Context(), user.ResetPasswordRequest{
		Email:       body.Email,
		OTP:         body.OTP,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, nil, "password has been reset")
}
