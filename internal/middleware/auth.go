package middleware

import (
	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// userContextKey is where the resolved user lives on the echo context.
const userContextKey = "auth.user"

// Auth resolves the opaque token from the Authorization header into a user
// before any handler runs. The header carries the raw token, no scheme
// prefix. Unknown or missing tokens fail with the uniform 401 envelope.
func Auth(users repository.UserRepository, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(echo.HeaderAuthorization)
			if token == "" {
				return apperrors.ErrUnauthorized
			}

			ctx := c.Request().Context()

			user, err := tokens.Get(ctx, token)
			if err != nil || user == nil {
				user, err = users.FindByToken(ctx, token)
				if err != nil {
					return apperrors.ErrUnauthorized
				}
				_ = tokens.Save(ctx, token, user)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Auth. Handlers fetch it once and
// pass it explicitly into the service layer.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
