package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/handler"
	"contactbook/internal/middleware"
	"contactbook/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	userRepo repository.UserRepository,
	tokenStore auth.TokenStoreInterface,
	userHandler *handler.UserHandler,
	contactHandler *handler.ContactHandler,
	addressHandler *handler.AddressHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = apperrors.ErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Register)
	api.POST("/users/login", userHandler.Login)

	// Secured routes (require a valid session token)
	secured := api.Group("", middleware.Auth(userRepo, tokenStore))

	secured.GET("/users/current", userHandler.Current)
	secured.PATCH("/users/current", userHandler.Update)
	secured.DELETE("/users/logout", userHandler.Logout)

	secured.POST("/contacts", contactHandler.Create)
	secured.GET("/contacts", contactHandler.Search)
	secured.GET("/contacts/:id", contactHandler.Get)
	secured.PUT("/contacts/:id", contactHandler.Update)
	secured.DELETE("/contacts/:id", contactHandler.Delete)

	// the contact segment reuses :id so every route shares one param name
	// at that position
	secured.POST("/contacts/:id/addresses", addressHandler.Create)
	secured.GET("/contacts/:id/addresses", addressHandler.List)
	secured.GET("/contacts/:id/addresses/:addressId", addressHandler.Get)
	secured.PUT("/contacts/:id/addresses/:addressId", addressHandler.Update)
	secured.DELETE("/contacts/:id/addresses/:addressId", addressHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator. Validation errors are keyed by
// the json tag name so the error envelope matches the wire field names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
