package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astralgate/auth-system/internal/api/middleware"
	"github.com/astralgate/auth-system/internal/core/domain"
)

// ctxAccount extracts the account injected by the Session middleware.
// A missing account means the middleware did not run for this route; treat
// it as unauthenticated rather than panicking on the type assertion.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, ok := c.Get(middleware.ContextAccount).(*domain.Account)
	if !ok || account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return account, nil
}
