package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/analytics"
	"github.com/jhoicas/boutique-api/internal/application/dto"
)

// AnalyticsHandler reporte financiero, mix de productos y meta de ganancia.
type AnalyticsHandler struct {
	report *analytics.ReportUseCase
	goals  *analytics.GoalUseCase
	log    zerolog.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(report *analytics.ReportUseCase, goals *analytics.GoalUseCase, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{report: report, goals: goals, log: log}
}

func reportRequest(c *fiber.Ctx) dto.ReportRequest {
	return dto.ReportRequest{
		Filter:     c.Query("filter"),
		Start:      c.Query("start"),
		End:        c.Query("end"),
		Projection: c.Query("projection"),
	}
}

// Report godoc
// @Summary      Reporte de ganancias del período
// @Tags         analytics
// @Produce      json
// @Param        filter      query  string  false  "total | mensal | periodo"  default(mensal)
// @Param        start       query  string  false  "YYYY-MM-DD (filter=periodo)"
// @Param        end         query  string  false  "YYYY-MM-DD (filter=periodo)"
// @Param        projection  query  string  false  "delta | cumulative"  default(delta)
// @Success      200  {object}  dto.ReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/analytics/report [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	out, err := h.report.Report(c.Context(), reportRequest(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ProductMix godoc
// @Summary      Top 5 productos por ingreso
// @Tags         analytics
// @Produce      json
// @Param        filter  query  string  false  "total | mensal | periodo"
// @Param        start   query  string  false  "YYYY-MM-DD"
// @Param        end     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ProductMixDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/product-mix [get]
func (h *AnalyticsHandler) ProductMix(c *fiber.Ctx) error {
	out, err := h.report.ProductMix(c.Context(), reportRequest(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetGoal godoc
// @Summary      Meta de ganancia y avance del mes
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.GoalDTO
// @Router       /api/analytics/goal [get]
func (h *AnalyticsHandler) GetGoal(c *fiber.Ctx) error {
	out, err := h.report.Goal(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateGoal godoc
// @Summary      Guardar meta de ganancia
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateGoalRequest  true  "Nueva meta"
// @Success      200  {object}  dto.GoalDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/analytics/goal [put]
func (h *AnalyticsHandler) UpdateGoal(c *fiber.Ctx) error {
	var in dto.UpdateGoalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if _, err := h.goals.Save(c.Context(), in.Value); err != nil {
		return respondError(c, h.log, err)
	}
	return h.GetGoal(c)
}
