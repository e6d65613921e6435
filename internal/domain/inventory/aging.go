// Package inventory contiene las reglas de giro y agrupación del catálogo.
package inventory

import (
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// AgingStatus clasificación de una pieza según su tiempo en tienda.
type AgingStatus string

const (
	AgingStale AgingStatus = "parada"       // Peça Parada
	AgingFast  AgingStatus = "saida_rapida" // Saída Rápida
	AgingOK    AgingStatus = "em_giro"      // Em Giro
)

// Label etiqueta mostrada al usuario.
func (s AgingStatus) Label() string {
	switch s {
	case AgingStale:
		return "Peça Parada"
	case AgingFast:
		return "Saída Rápida"
	case AgingOK:
		return "Em Giro"
	}
	return ""
}

// Aging resultado del análisis de giro de un producto.
type Aging struct {
	Status       AgingStatus
	DaysInStock  int
	ExpectedDays int
}

// AgingOf calcula el giro de p en la fecha now. Sin fecha de compra devuelve nil.
//
//	parada:       días > esperado y hay stock
//	saida_rapida: días < esperado/2 y stock < 2
//	em_giro:      cualquier otro caso
func AgingOf(p *entity.Product, now time.Time) *Aging {
	if p.PurchaseDate == nil {
		return nil
	}
	days := int(now.Sub(*p.PurchaseDate).Hours() / 24)
	expected := p.ExpectedShelfDays()

	status := AgingOK
	switch {
	case days > expected && p.Stock > 0:
		status = AgingStale
	case float64(days) < float64(expected)/2 && p.Stock < 2:
		status = AgingFast
	}
	return &Aging{Status: status, DaysInStock: days, ExpectedDays: expected}
}

// Replenishment copia p como nueva entrada de mercadería: mismo nombre, referencia, precios y variante,
// con el stock indicado y fecha de compra now. ID y CreatedAt los asigna quien persiste.
func Replenishment(p *entity.Product, stock int, now time.Time) entity.Product {
	purchase := now
	return entity.Product{
		Name:          p.Name,
		ReferenceCode: p.ReferenceCode,
		PurchasePrice: p.PurchasePrice,
		Price:         p.Price,
		Stock:         stock,
		Size:          p.Size,
		Color:         p.Color,
		PurchaseDate:  &purchase,
		ExpectedDays:  p.ExpectedShelfDays(),
	}
}
