package handler

import (
	"errors"
	"net/http"

	"github.com/mhbagheri-99/e-commerce/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// httpError maps the service failure taxonomy onto HTTP statuses. Unknown
// errors fall through as 500 so the echo error handler logs them.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return echo.NewHTTPError(http.StatusNotFound, service.ErrProductNotFound.Error())
	case errors.Is(err, service.ErrInvalidDiscountCode):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, service.ErrInvalidDiscountCode.Error())
	case errors.Is(err, service.ErrDuplicatePurchase):
		return echo.NewHTTPError(http.StatusConflict, service.ErrDuplicatePurchase.Error())
	case errors.Is(err, service.ErrPaymentProvider):
		return echo.NewHTTPError(http.StatusBadGateway, service.ErrPaymentProvider.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusBadRequest, service.ErrInvalidSignature.Error())
	case errors.Is(err, service.ErrMalformedEvent):
		return echo.NewHTTPError(http.StatusBadRequest, service.ErrMalformedEvent.Error())
	case errors.Is(err, service.ErrCouponInvalid):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrProductHasOrders):
		return echo.NewHTTPError(http.StatusConflict, service.ErrProductHasOrders.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	default:
		return err
	}
}
