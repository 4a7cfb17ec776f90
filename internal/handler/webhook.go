package handler

import (
	"io"
	"net/http"

	"github.com/mhbagheri-99/e-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

const signatureHeader = "Payment-Signature"

type WebhookHandler struct {
	fulfillmentService service.FulfillmentService
}

func NewWebhookHandler(fulfillmentService service.FulfillmentService) *WebhookHandler {
	return &WebhookHandler{
		fulfillmentService: fulfillmentService,
	}
}

// HandlePaymentWebhook consumes provider deliveries. 4xx responses are
// terminal for that delivery; any other failure surfaces as 500 so the
// provider's retry-with-backoff takes over.
func (h *WebhookHandler) HandlePaymentWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "read webhook body")
	}

	err = h.fulfillmentService.HandleWebhook(c.Request().Context(), body, c.Request().Header.Get(signatureHeader))
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusOK)
}
