package crm_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/domain/crm"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

var brt = time.FixedZone("BRT", -3*60*60)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, brt)
	return &t
}

func TestUpcomingBirthdays(t *testing.T) {
	now := time.Date(2024, time.December, 24, 15, 0, 0, 0, brt)
	customers := []entity.Customer{
		{ID: "1", Name: "Ana", Birthday: date(1990, time.December, 24)},   // hoy
		{ID: "2", Name: "Bia", Birthday: date(1985, time.January, 5)},     // año siguiente, 12 días
		{ID: "3", Name: "Carla", Birthday: date(1992, time.December, 20)}, // ya pasó
		{ID: "4", Name: "Duda", Birthday: date(1999, time.January, 9)},    // 16 días
		{ID: "5", Name: "Eva"},
		{ID: "6", Name: "Fê", Birthday: date(2000, time.December, 30)},
	}

	got := crm.UpcomingBirthdays(customers, now, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "Ana", got[0].Customer.Name)
	assert.Equal(t, 0, got[0].DaysLeft)
	assert.Equal(t, "Fê", got[1].Customer.Name)
	assert.Equal(t, 6, got[1].DaysLeft)
	assert.Equal(t, "Bia", got[2].Customer.Name)
	assert.Equal(t, 12, got[2].DaysLeft)
	assert.Equal(t, 2025, got[2].Next.Year())
}

func TestInactiveCustomers(t *testing.T) {
	now := time.Date(2024, time.November, 30, 12, 0, 0, 0, brt)
	customers := []entity.Customer{
		{ID: "a", Name: "Ana"},
		{ID: "b", Name: "Bia"},
		{ID: "c", Name: "Carla"},
		{ID: "d", Name: "Duda"},
	}
	sales := []entity.Sale{
		{CustomerID: "a", CreatedAt: now.AddDate(0, 0, -45)},
		{CustomerID: "a", CreatedAt: now.AddDate(0, 0, -31)},
		{CustomerID: "b", CreatedAt: now.AddDate(0, 0, -2)},
		{CustomerID: "c", CreatedAt: now.AddDate(0, 0, -30)},
	}

	got := crm.InactiveCustomers(customers, sales, now, 3)

	require.Len(t, got, 3)
	assert.Equal(t, crm.Inactivity{CustomerID: "d", Name: "Duda", Days: crm.NeverPurchasedDays}, got[0])
	assert.Equal(t, "Ana", got[1].Name)
	assert.Equal(t, 31, got[1].Days)
	assert.Equal(t, "Carla", got[2].Name)
	assert.Equal(t, 30, got[2].Days)
}

func TestTopSpender(t *testing.T) {
	assert.Nil(t, crm.TopSpender(nil))

	ana := &entity.Customer{Name: "Ana"}
	sales := []entity.Sale{
		{Customer: ana, Value: decimal.NewFromInt(100)},
		{Customer: ana, Value: decimal.NewFromInt(50)},
		{Customer: &entity.Customer{Name: "Bia"}, Value: decimal.NewFromInt(120)},
		{Value: decimal.NewFromInt(10)},
	}
	got := crm.TopSpender(sales)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.True(t, decimal.NewFromInt(150).Equal(got.Total))
}
