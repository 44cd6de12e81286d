package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	f := NewFactors([]Factor{
		{Key: "diesel_litre", Scope: Scope1, Unit: "litre", KgCO2ePerUnit: 2.5},
		{Key: "grid_kwh", Scope: Scope2, Unit: "kWh", KgCO2ePerUnit: 0.2},
		{Key: "flight_km", Scope: Scope3, Unit: "km", KgCO2ePerUnit: 0.15},
	})

	res := f.Calculate([]Activity{
		{FactorKey: "diesel_litre", Quantity: 100},
		{FactorKey: "grid_kwh", Quantity: 10000},
		{FactorKey: "flight_km", Quantity: 2000},
		{FactorKey: "grid_kwh", Quantity: -50},
		{FactorKey: "unicorn"},
	})

	assert.Equal(t, 250.0, res.Scope1Kg)
	assert.Equal(t, 2000.0, res.Scope2Kg)
	assert.Equal(t, 300.0, res.Scope3Kg)
	assert.Equal(t, 2550.0, res.TotalKg)
	assert.Equal(t, 2.55, res.TotalTonnes)
	assert.Equal(t, []string{"unicorn"}, res.Unknown)
	require.Len(t, res.Lines, 4)
	assert.Equal(t, 0.0, res.Lines[3].KgCO2e)
}

func TestCalculateEmpty(t *testing.T) {
	res := NewFactors(nil).Calculate(nil)
	assert.Equal(t, 0.0, res.TotalKg)
	assert.Empty(t, res.Lines)
	assert.Nil(t, res.Unknown)
}

func TestAllSorted(t *testing.T) {
	f := NewFactors([]Factor{{Key: "b", Scope: Scope2}, {Key: "a", Scope: Scope2}, {Key: "z", Scope: Scope1}})
	all := f.All()
	require.Len(t, all, 3)
	assert.Equal(t, "z", all[0].Key)
	assert.Equal(t, "a", all[1].Key)
}
