// Package crm reúne las reglas de seguimiento de clientas del panel de inicio.
package crm

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

const (
	// BirthdayWindowDays horizonte de cumpleaños próximos.
	BirthdayWindowDays = 15
	// InactiveAfterDays días sin comprar a partir de los cuales una clienta está inactiva.
	InactiveAfterDays = 30
	// NeverPurchasedDays valor para clientas sin compras.
	NeverPurchasedDays = 999
	// UnknownCustomerName nombre usado cuando la venta no trae clienta.
	UnknownCustomerName = "Cliente"
)

// Birthday cumpleaños próximo de una clienta.
type Birthday struct {
	Customer entity.Customer
	Next     time.Time // próxima fecha en la zona de now
	DaysLeft int
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// UpcomingBirthdays cumpleaños entre hoy y hoy+BirthdayWindowDays (por mes/día, el año se ignora).
// Un cumpleaños que ya pasó este año se proyecta al siguiente. Devuelve a lo sumo limit, del más próximo al más lejano.
func UpcomingBirthdays(customers []entity.Customer, now time.Time, limit int) []Birthday {
	today := midnight(now)
	out := make([]Birthday, 0)
	for _, c := range customers {
		if c.Birthday == nil {
			continue
		}
		next := time.Date(today.Year(), c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, today.Location())
		if next.Before(today) {
			next = next.AddDate(1, 0, 0)
		}
		days := int(next.Sub(today).Hours()/24 + 0.5)
		if days < 0 || days > BirthdayWindowDays {
			continue
		}
		out = append(out, Birthday{Customer: c, Next: next, DaysLeft: days})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Inactivity días desde la última compra.
type Inactivity struct {
	CustomerID string
	Name       string
	Phone      string
	Days       int
}

// InactiveCustomers clientas con InactiveAfterDays o más días sin comprar, de la más inactiva a la menos.
func InactiveCustomers(customers []entity.Customer, sales []entity.Sale, now time.Time, limit int) []Inactivity {
	last := make(map[string]time.Time, len(customers))
	for _, s := range sales {
		if prev, ok := last[s.CustomerID]; !ok || s.CreatedAt.After(prev) {
			last[s.CustomerID] = s.CreatedAt
		}
	}

	out := make([]Inactivity, 0)
	for _, c := range customers {
		days := NeverPurchasedDays
		if t, ok := last[c.ID]; ok {
			days = int(now.Sub(t).Hours() / 24)
		}
		if days < InactiveAfterDays {
			continue
		}
		out = append(out, Inactivity{CustomerID: c.ID, Name: c.Name, Phone: c.Phone, Days: days})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Days != out[j].Days {
			return out[i].Days > out[j].Days
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Spender total gastado por una clienta.
type Spender struct {
	Name  string
	Total decimal.Decimal
}

// TopSpender clienta que más gastó entre las ventas dadas; nil si no hay ventas.
// Las ventas sin clienta se acumulan bajo UnknownCustomerName.
func TopSpender(sales []entity.Sale) *Spender {
	totals := make(map[string]decimal.Decimal)
	for _, s := range sales {
		name := UnknownCustomerName
		if s.Customer != nil && s.Customer.Name != "" {
			name = s.Customer.Name
		}
		totals[name] = totals[name].Add(s.Value)
	}
	var best *Spender
	for name, total := range totals {
		if best == nil || total.GreaterThan(best.Total) || (total.Equal(best.Total) && name < best.Name) {
			best = &Spender{Name: name, Total: total}
		}
	}
	return best
}
