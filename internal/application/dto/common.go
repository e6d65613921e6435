package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Paginate recorta items según Limit/Offset y devuelve los metadatos con el total.
func Paginate[T any](items []T, p PageRequest) ([]T, PageResponse) {
	p.DefaultPage()
	total := len(items)
	if p.Offset >= total {
		return []T{}, PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return items[p.Offset:end], PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}
}
