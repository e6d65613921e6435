package finance

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
)

// Projection forma de la serie temporal.
type Projection string

const (
	// ProjectionDelta ganancia o pérdida de cada bucket.
	ProjectionDelta Projection = "delta"
	// ProjectionCumulative total acumulado a lo largo de los buckets ordenados.
	ProjectionCumulative Projection = "cumulative"
)

// ParseProjection convierte el parámetro de consulta; vacío equivale a delta.
func ParseProjection(s string) (Projection, error) {
	switch Projection(s) {
	case "":
		return ProjectionDelta, nil
	case ProjectionDelta, ProjectionCumulative:
		return Projection(s), nil
	}
	return "", fmt.Errorf("proyección %q desconocida: %w", s, domain.ErrInvalidInput)
}

// Granularity tamaño del bucket de la serie.
type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityMonth
)

// GranularityFor total agrupa por mes; mensual y periodo agrupan por día del mes.
func GranularityFor(ft FilterType) Granularity {
	if ft == FilterAllTime {
		return GranularityMonth
	}
	return GranularityDay
}

// TimelinePoint un punto de la serie de ganancia/pérdida.
type TimelinePoint struct {
	Key    string
	Label  string
	Amount decimal.Decimal
}

var monthAbbrevPT = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// MonthKey clave ordenable YYYY-MM.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// DayKey día del mes con dos dígitos.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%02d", t.Day())
}

// MonthShortLabel etiqueta corta estilo "nov/24".
func MonthShortLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s/%02d", monthAbbrevPT[month-1], year%100)
}

func monthLongLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s de %02d", monthAbbrevPT[month-1], year%100)
}

func bucketKey(t time.Time, g Granularity) string {
	if g == GranularityMonth {
		return MonthKey(t)
	}
	return DayKey(t)
}

func bucketLabel(key string, g Granularity) string {
	if g == GranularityMonth {
		var y, m int
		if _, err := fmt.Sscanf(key, "%d-%d", &y, &m); err != nil || m < 1 || m > 12 {
			return key
		}
		return monthLongLabel(y, time.Month(m))
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return key
	}
	return strconv.Itoa(n)
}

// BuildTimeline agrupa las contribuciones por bucket y devuelve la serie ordenada por clave.
// Las claves tienen ancho fijo, así que el orden lexicográfico es cronológico.
// Con entradas vacías devuelve una serie vacía (no nil).
func BuildTimeline(entries []Entry, g Granularity, proj Projection, loc *time.Location) []TimelinePoint {
	if loc == nil {
		loc = time.Local
	}
	buckets := make(map[string]decimal.Decimal)
	for _, e := range entries {
		k := bucketKey(e.At.In(loc), g)
		buckets[k] = buckets[k].Add(e.Amount)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]TimelinePoint, 0, len(keys))
	running := decimal.Zero
	for _, k := range keys {
		amount := buckets[k]
		if proj == ProjectionCumulative {
			running = running.Add(amount)
			amount = running
		}
		series = append(series, TimelinePoint{Key: k, Label: bucketLabel(k, g), Amount: amount})
	}
	return series
}
