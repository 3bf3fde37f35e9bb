package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactbook/internal/middleware"
	"contactbook/internal/resource"
	"contactbook/internal/service"
)

// AddressHandler handles address endpoints nested under a contact.
type AddressHandler struct {
	addressService service.AddressService
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// AddressRequest represents an address create or full-update payload.
type AddressRequest struct {
	Street     string `json:"street" validate:"omitempty,max=200"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

func (r AddressRequest) input() service.AddressInput {
	return service.AddressInput{
		Street:     r.Street,
		City:       r.City,
		Province:   r.Province,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

// Create godoc
// @Summary Create an address under a contact
// @Tags addresses
// @Accept json
// @Produce json
// @Param Authorization header string true "Session token"
// @Param contactId path int true "Contact id"
// @Param request body AddressRequest true "Address data"
// @Success 201 {object} resource.Response
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{contactId}/addresses [post]
func (h *AddressHandler) Create(c echo.Context) error {
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	address, err := h.addressService.Create(c.Request().Context(), user, contactID, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resource.Response{Data: resource.NewAddress(address)})
}

// Get godoc
// @Summary Get an address
// @Tags addresses
// @Produce json
// @Param Authorization header string true "Session token"
// @Param contactId path int true "Contact id"
// @Param addressId path int true "Address id"
// @Success 200 {object} resource.Response
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{contactId}/addresses/{addressId} [get]
func (h *AddressHandler) Get(c echo.Context) error {
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	addressID, err := pathID(c, "addressId")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	address, err := h.addressService.Get(c.Request().Context(), user, contactID, addressID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewAddress(address)})
}

// Update godoc
// @Summary Replace an address
// @Tags addresses
// @Accept json
// @Produce json
// @Param Authorization header string true "Session token"
// @Param contactId path int true "Contact id"
// @Param addressId path int true "Address id"
// @Param request body AddressRequest true "Address data"
// @Success 200 {object} resource.Response
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{contactId}/addresses/{addressId} [put]
func (h *AddressHandler) Update(c echo.Context) error {
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	addressID, err := pathID(c, "addressId")
	if err != nil {
		return err
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	address, err := h.addressService.Update(c.Request().Context(), user, contactID, addressID, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewAddress(address)})
}

// Delete godoc
// @Summary Delete an address
// @Tags addresses
// @Produce json
// @Param Authorization header string true "Session token"
// @Param contactId path int true "Contact id"
// @Param addressId path int true "Address id"
// @Success 200 {object} resource.Response
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{contactId}/addresses/{addressId} [delete]
func (h *AddressHandler) Delete(c echo.Context) error {
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	addressID, err := pathID(c, "addressId")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.addressService.Delete(c.Request().Context(), user, contactID, addressID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: true})
}

// List godoc
// @Summary List all addresses of a contact
// @Tags addresses
// @Produce json
// @Param Authorization header string true "Session token"
// @Param contactId path int true "Contact id"
// @Success 200 {object} resource.Response
// @Failure 404 {object} errors.Envelope
// @Router /contacts/{contactId}/addresses [get]
func (h *AddressHandler) List(c echo.Context) error {
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	addresses, err := h.addressService.List(c.Request().Context(), user, contactID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource.Response{Data: resource.NewAddresses(addresses)})
}
