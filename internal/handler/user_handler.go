package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactbook/internal/middleware"
	"contactbook/internal/resource"
	"contactbook/internal/service"
)

// UserHandler handles user and session endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest represents a partial profile update.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,max=100"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} resource.Response
// @Failure 400 {object} errors.Envelope
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Register(c.Request().Context(), req.Username, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resource.Response{Data: resource.NewUser(user)})
}

// Login godoc
// @Summary Login and obtain a session token
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} resource.Response
// @Failure 401 {object} errors.Envelope
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewUser(user)})
}

// Current godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Param Authorization header string true "Session token"
// @Success 200 {object} resource.Response
// @Failure 401 {object} errors.Envelope
// @Router /users/current [get]
func (h *UserHandler) Current(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewUser(user)})
}

// Update godoc
// @Summary Update name and/or password of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Session token"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} resource.Response
// @Failure 400 {object} errors.Envelope
// @Router /users/current [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	updated, err := h.userService.Update(c.Request().Context(), user, req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewUser(updated)})
}

// Logout godoc
// @Summary Invalidate the current session token
// @Tags users
// @Produce json
// @Param Authorization header string true "Session token"
// @Success 200 {object} resource.Response
// @Failure 401 {object} errors.Envelope
// @Router /users/logout [delete]
func (h *UserHandler) Logout(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if err := h.userService.Logout(c.Request().Context(), user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: true})
}
