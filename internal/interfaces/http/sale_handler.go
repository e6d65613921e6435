package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/sales"
)

// SaleHandler checkout, historial y recibos.
type SaleHandler struct {
	checkout *sales.CheckoutUseCase
	receipt  *sales.ReceiptUseCase
	list     *sales.ListUseCase
	log      zerolog.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(checkout *sales.CheckoutUseCase, receipt *sales.ReceiptUseCase, list *sales.ListUseCase, log zerolog.Logger) *SaleHandler {
	return &SaleHandler{checkout: checkout, receipt: receipt, list: list, log: log}
}

// Checkout godoc
// @Summary      Registrar pedido
// @Description  Reparte descuento (proporcional) y flete (partes iguales) entre las líneas,
// @Description  descuenta stock y guarda las ventas en una sola transacción.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.checkout.Checkout(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/sales?search=&limit=20&offset=0
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.list.List(c.Context(), c.Query("search"), pageFrom(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF del pedido
// @Tags         sales
// @Produce      application/pdf
// @Param        orderID  path  string  true  "Código del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/orders/{orderID}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	orderID := c.Params("orderID")
	pdf, err := h.receipt.GeneratePDF(c.Context(), orderID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="recibo-%s.pdf"`, orderID))
	return c.Send(pdf)
}
