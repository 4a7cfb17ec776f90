package handler

import (
	"net/http"

	"github.com/mhbagheri-99/e-commerce/internal/dto"
	"github.com/mhbagheri-99/e-commerce/internal/model"
	"github.com/mhbagheri-99/e-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	catalogService  service.CatalogService
}

func NewCheckoutHandler(checkoutService service.CheckoutService, catalogService service.CatalogService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		catalogService:  catalogService,
	}
}

func productResponse(product *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		PriceInCents: product.PriceInCents,
		Currency:     product.Currency,
		ImagePath:    product.ImagePath,
	}
}

func (h *CheckoutHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogService.ListAvailableProducts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	resp := make([]*dto.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, productResponse(product))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogService.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, productResponse(product))
}

// PreviewCoupon backs the purchase page: it resolves a code string with the
// same predicate the purchase submit uses, so render-time and submit-time
// checks cannot drift.
func (h *CheckoutHandler) PreviewCoupon(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing code query parameter")
	}

	preview, err := h.checkoutService.PreviewCoupon(c.Request().Context(), c.Param("id"), code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, preview)
}

func (h *CheckoutHandler) Purchase(c echo.Context) error {
	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.checkoutService.CreatePaymentIntent(c.Request().Context(), req.Email, c.Param("id"), req.DiscountCodeID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) PurchaseSuccess(c echo.Context) error {
	paymentIntentID := c.QueryParam("payment_intent")
	if paymentIntentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment_intent query parameter")
	}

	resp, err := h.checkoutService.PurchaseSuccess(c.Request().Context(), paymentIntentID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}
