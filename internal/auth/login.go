// Package auth issues the admin session token. Full user accounts and
// sessions live outside this service; the board only needs the binary
// admin / non-admin distinction, so one configured admin credential is
// enough.
package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	secret     []byte
	adminEmail string
	adminHash  string
	log        *slog.Logger
}

func NewHandler(secret []byte, adminEmail, adminHash string, log *slog.Logger) *Handler {
	return &Handler{secret: secret, adminEmail: adminEmail, adminHash: adminHash, log: log}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// POST /admin/login
func (h *Handler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email != h.adminEmail ||
		bcrypt.CompareHashAndPassword([]byte(h.adminHash), []byte(req.Password)) != nil {
		h.log.Warn("failed admin login", "email", req.Email)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	sid := uuid.NewString()
	claims := jwt.MapClaims{
		"role": "admin",
		"sid":  sid,
		"sub":  req.Email,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign token"})
	}

	h.log.Info("admin logged in", "sid", sid)
	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// GET /admin/me
func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"role": c.Get("role"),
		"sid":  c.Get("sid"),
	})
}
