package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "contactbook/internal/errors"
	"contactbook/internal/middleware"
	"contactbook/internal/repository"
	"contactbook/internal/resource"
	"contactbook/internal/service"
)

// ContactHandler handles contact endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents a contact create or full-update payload.
type ContactRequest struct {
	FirstName string `json:"firstname" validate:"required,max=100"`
	LastName  string `json:"lastname" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=200"`
	Phone     string `json:"phone" validate:"required,max=20"`
}

func (r ContactRequest) input() service.ContactInput {
	return service.ContactInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// Create godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param Authorization header string true "Session token"
// @Param request body ContactRequest true "Contact data"
// @Success 201 {object} resource.Response
// @Failure 400 {object} errors.Envelope
// @Router /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	contact, err := h.contactService.Create(c.Request().Context(), user, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resource.Response{Data: resource.NewContact(contact)})
}

// Get godoc
// @Summary Get a contact by id
// @Tags contacts
// @Produce json
// @Param Authorization header string true "Session token"
// @Param id path int true "Contact id"
// @Success 200 {object} resource.Response
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	contact, err := h.contactService.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewContact(contact)})
}

// Update godoc
// @Summary Replace a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param Authorization header string true "Session token"
// @Param id path int true "Contact id"
// @Param request body ContactRequest true "Contact data"
// @Success 200 {object} resource.Response
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	contact, err := h.contactService.Update(c.Request().Context(), user, id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewContact(contact)})
}

// Delete godoc
// @Summary Delete a contact and its addresses
// @Tags contacts
// @Produce json
// @Param Authorization header string true "Session token"
// @Param id path int true "Contact id"
// @Success 200 {object} resource.Response
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.contactService.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: true})
}

// Search godoc
// @Summary Search the user's contacts
// @Tags contacts
// @Produce json
// @Param Authorization header string true "Session token"
// @Param name query string false "Substring match on first or last name"
// @Param email query string false "Substring match on email"
// @Param phone query string false "Substring match on phone"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 10, max 100)"
// @Success 200 {object} resource.Response
// @Router /contacts [get]
func (h *ContactHandler) Search(c echo.Context) error {
	filter := repository.ContactFilter{
		Name:  c.QueryParam("name"),
		Email: c.QueryParam("email"),
		Phone: c.QueryParam("phone"),
		Page:  queryInt(c, "page"),
		Size:  queryInt(c, "size"),
	}

	user := middleware.CurrentUser(c)
	contacts, meta, err := h.contactService.Search(c.Request().Context(), user, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{
		Data: resource.NewContacts(contacts),
		Meta: meta,
	})
}

// pathID parses a numeric path parameter. A non-numeric id cannot name any
// resource, so it reports the same not-found as a missing row.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}

// queryInt parses an optional numeric query parameter; anything unparseable
// falls through to 0 and the service applies its default.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
