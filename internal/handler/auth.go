package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dmelikov/user-auth-api/internal/model"
	"github.com/dmelikov/user-auth-api/internal/queue"
	"github.com/dmelikov/user-auth-api/internal/repository"
	queue_publisher "github.com/dmelikov/user-auth-api/internal/service"
	"github.com/dmelikov/user-auth-api/internal/utils"
)

// AuthHandler bundles dependencies for the credential lifecycle
// endpoints: registration and login.
type AuthHandler struct {
	Users      repository.UserStore
	Tokens     *utils.TokenCodec
	BcryptCost int
	AMQPURL    string // empty disables event publishing
}

func NewAuthHandler(users repository.UserStore, tokens *utils.TokenCodec, bcryptCost int, amqpURL string) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, BcryptCost: bcryptCost, AMQPURL: amqpURL}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResp struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
}

type loginResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register creates a new user with the default role. Reachable only for
// anonymous callers; the route guard enforces that, not this handler.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username/password required")
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Add(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Username already exists.")
		}
		return fmt.Errorf("add user: %w", err)
	}

	h.publish(queue.AuthEvent{
		Event:    queue.EventUserRegistered,
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
		At:       time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, registerResp{
		Success: true,
		Message: "Registered Successfully",
		User:    u.Public(),
	})
}

// Login verifies credentials and issues a signed token. Unknown username
// and wrong password are deliberately indistinguishable so the endpoint
// cannot be used to enumerate usernames.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. Please provide valid credentials.")
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. Please provide valid credentials.")
	}

	token, err := h.Tokens.Sign(u)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	h.publish(queue.AuthEvent{
		Event:    queue.EventUserLogin,
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
		At:       time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, loginResp{
		Success: true,
		Message: "User access granted.",
		Token:   token,
	})
}

// publish sends an auth event to the broker without ever delaying or
// failing the request. Publish errors are logged inside the publisher.
func (h *AuthHandler) publish(ev queue.AuthEvent) {
	if h.AMQPURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishAuthEvent(ctx, h.AMQPURL, ev)
	}()
}
