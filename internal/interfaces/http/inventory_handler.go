package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/usecase"
)

// InventoryHandler vista agrupada del estoque.
type InventoryHandler struct {
	uc  *usecase.InventoryUseCase
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Groups godoc
// @Summary      Productos agrupados por referencia
// @Tags         inventory
// @Produce      json
// @Param        search  query  string  false  "Filtro de variantes"
// @Success      200  {array}  dto.InventoryGroupDTO
// @Router       /api/inventory/groups [get]
func (h *InventoryHandler) Groups(c *fiber.Ctx) error {
	out, err := h.uc.Groups(c.Context(), c.Query("search"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
