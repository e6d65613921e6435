package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain"
)

// DateLayout formato de fecha de calendario en requests y query params.
const DateLayout = "2006-01-02"

// ParseDate interpreta s (YYYY-MM-DD) como medianoche en loc. Vacío devuelve nil.
func ParseDate(field, s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("%s %q no tiene formato YYYY-MM-DD: %w", field, s, domain.ErrInvalidInput)
	}
	return &t, nil
}
