package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// GoalUseCase lee y guarda la meta de ganancia mensual.
type GoalUseCase struct {
	settings    repository.SettingRepository
	defaultGoal decimal.Decimal
}

// NewGoalUseCase construye el caso de uso. defaultGoal se usa mientras no se guarde una meta.
func NewGoalUseCase(settings repository.SettingRepository, defaultGoal decimal.Decimal) *GoalUseCase {
	return &GoalUseCase{settings: settings, defaultGoal: defaultGoal}
}

// Load devuelve la meta guardada o el valor por defecto.
func (uc *GoalUseCase) Load(ctx context.Context) (decimal.Decimal, error) {
	v, ok, err := uc.settings.GetDecimal(ctx, entity.SettingIdealProfitGoal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("meta: leer: %w", err)
	}
	if !ok {
		return uc.defaultGoal, nil
	}
	return v, nil
}

// Save interpreta raw ("5000", "5.000,00") y guarda la meta. Debe ser mayor que cero.
func (uc *GoalUseCase) Save(ctx context.Context, raw string) (decimal.Decimal, error) {
	v, err := finance.ParseMoney(entity.SettingIdealProfitGoal, "value", raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("meta: %s debe ser mayor que cero: %w", v, domain.ErrInvalidInput)
	}
	if err := uc.settings.SetDecimal(ctx, entity.SettingIdealProfitGoal, v); err != nil {
		return decimal.Zero, fmt.Errorf("meta: guardar: %w", err)
	}
	return v, nil
}
