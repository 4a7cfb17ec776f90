package handler

import (
	"net/http"

	"github.com/mhbagheri-99/e-commerce/internal/dto"
	"github.com/mhbagheri-99/e-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// -------- products --------

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.adminService.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.adminService.ListProducts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req dto.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.adminService.UpdateProduct(c.Request().Context(), c.Param("id"), &req); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) SetProductAvailability(c echo.Context) error {
	var req dto.SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.adminService.SetProductAvailability(c.Request().Context(), c.Param("id"), req.IsAvailable); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.adminService.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// -------- coupons --------

func (h *AdminHandler) CreateCoupon(c echo.Context) error {
	var req dto.CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	coupon, err := h.adminService.CreateCoupon(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, coupon)
}

func (h *AdminHandler) ListCoupons(c echo.Context) error {
	coupons, err := h.adminService.ListCoupons(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, coupons)
}

func (h *AdminHandler) SetCouponActive(c echo.Context) error {
	var req dto.SetCouponActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.adminService.SetCouponActive(c.Request().Context(), c.Param("id"), req.IsActive); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) DeleteCoupon(c echo.Context) error {
	if err := h.adminService.DeleteCoupon(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// -------- customers --------

func (h *AdminHandler) ListCustomers(c echo.Context) error {
	customers, err := h.adminService.ListCustomers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, customers)
}

func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	if err := h.adminService.DeleteCustomer(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
