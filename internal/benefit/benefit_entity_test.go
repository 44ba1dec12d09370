package benefit_test

import (
	"testing"

	"go-cargos-salarios/internal/benefit"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBenefitCost(t *testing.T) {
	salary := decimal.NewFromInt(5000)

	t.Run("fixed benefit ignores salary", func(t *testing.T) {
		vr := benefit.Benefit{
			Name:  "Vale Refeição",
			Type:  benefit.TypeFixed,
			Value: decimal.RequireFromString("880.00"),
		}

		assert.True(t, vr.Cost(salary).Equal(decimal.RequireFromString("880.00")))
		assert.True(t, vr.Cost(decimal.Zero).Equal(decimal.RequireFromString("880.00")))
	})

	t.Run("percentage benefit scales with salary", func(t *testing.T) {
		ps := benefit.Benefit{
			Name:  "Previdência Privada",
			Type:  benefit.TypePercentage,
			Value: decimal.RequireFromString("4.00"),
		}

		assert.True(t, ps.Cost(salary).Equal(decimal.NewFromInt(200)))
		assert.True(t, ps.Cost(decimal.NewFromInt(8000)).Equal(decimal.NewFromInt(320)))
	})

	t.Run("percentage of zero salary is zero", func(t *testing.T) {
		ps := benefit.Benefit{
			Name:  "Previdência Privada",
			Type:  benefit.TypePercentage,
			Value: decimal.RequireFromString("4.00"),
		}

		assert.True(t, ps.Cost(decimal.Zero).IsZero())
	})
}
