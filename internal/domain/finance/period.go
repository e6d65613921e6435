package finance

import (
	"fmt"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain"
)

// FilterType modo de filtro del reporte.
type FilterType string

const (
	FilterAllTime     FilterType = "total"
	FilterMonthly     FilterType = "mensal"
	FilterCustomRange FilterType = "periodo"
)

// ParseFilterType convierte el parámetro de consulta; vacío equivale a mensual.
func ParseFilterType(s string) (FilterType, error) {
	switch FilterType(s) {
	case "":
		return FilterMonthly, nil
	case FilterAllTime, FilterMonthly, FilterCustomRange:
		return FilterType(s), nil
	}
	return "", fmt.Errorf("filtro %q desconocido: %w", s, domain.ErrInvalidInput)
}

// DateRange par de fechas de calendario (la hora se ignora).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filter configuración de período elegida por el usuario.
// Range solo se usa con FilterCustomRange.
type Filter struct {
	Type  FilterType
	Range DateRange
}

// Window intervalo cerrado [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains indica si t cae dentro de la ventana (ambos extremos incluidos).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Period ventana actual y ventana de comparación inmediatamente anterior.
// Con FilterAllTime no hay comparación y HasComparison es false.
type Period struct {
	Current       Window
	Comparison    Window
	HasComparison bool
	Location      *time.Location
}

// ResolvePeriod calcula las ventanas del reporte en la zona horaria de now.
//
//   - mensual: día 1 del mes a las 00:00 hasta now; comparación = mes calendario anterior completo,
//     hasta start - 1ns. El último día del mes anterior entra entero: la comparación no se corta
//     a las 00:00 de ese día, así que las ventas de esas horas cuentan.
//   - periodo: start 00:00:00 hasta end 23:59:59; comparación de igual duración que termina 1ms antes.
//   - total:   desde la época Unix hasta now; sin comparación.
func ResolvePeriod(f Filter, now time.Time) (Period, error) {
	loc := now.Location()
	switch f.Type {
	case FilterMonthly, "":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		prevStart := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, loc)
		return Period{
			Current:       Window{Start: start, End: now},
			Comparison:    Window{Start: prevStart, End: start.Add(-time.Nanosecond)},
			HasComparison: true,
			Location:      loc,
		}, nil

	case FilterCustomRange:
		if f.Range.Start.IsZero() || f.Range.End.IsZero() {
			return Period{}, fmt.Errorf("periodo personalizado sin fechas: %w", domain.ErrInvalidInput)
		}
		sy, sm, sd := f.Range.Start.Date()
		ey, em, ed := f.Range.End.Date()
		start := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
		end := time.Date(ey, em, ed, 23, 59, 59, 0, loc)
		if end.Before(start) {
			return Period{}, fmt.Errorf("la fecha inicial es posterior a la final: %w", domain.ErrInvalidInput)
		}
		compareEnd := start.Add(-time.Millisecond)
		compareStart := compareEnd.Add(-end.Sub(start))
		return Period{
			Current:       Window{Start: start, End: end},
			Comparison:    Window{Start: compareStart, End: compareEnd},
			HasComparison: true,
			Location:      loc,
		}, nil

	case FilterAllTime:
		return Period{
			Current:  Window{Start: time.Unix(0, 0).In(loc), End: now},
			Location: loc,
		}, nil
	}
	return Period{}, fmt.Errorf("filtro %q desconocido: %w", f.Type, domain.ErrInvalidInput)
}
