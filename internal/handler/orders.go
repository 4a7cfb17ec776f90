package handler

import (
	"net/http"

	"github.com/mhbagheri-99/e-commerce/internal/dto"
	"github.com/mhbagheri-99/e-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderHistoryService service.OrderHistoryService
}

func NewOrderHandler(orderHistoryService service.OrderHistoryService) *OrderHandler {
	return &OrderHandler{
		orderHistoryService: orderHistoryService,
	}
}

func (h *OrderHandler) EmailOrderHistory(c echo.Context) error {
	var req dto.EmailHistoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	}

	message, err := h.orderHistoryService.EmailOrderHistory(c.Request().Context(), req.Email)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.EmailHistoryResponse{Message: message})
}
