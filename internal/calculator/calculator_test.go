package calculator

import (
	"math"
	"testing"

	"github.com/Dan9191/irpf-calculator/internal/scales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func TestComputeNet(t *testing.T) {
	tests := []struct {
		name    string
		country string
		gross   float64
		want    float64
	}{
		{name: "unknown country", country: "xx", gross: 50000, want: 0},
		{name: "zero income", country: "es", gross: 0, want: 0},
		{name: "spain first bracket only", country: "es", gross: 10000, want: 8100},
		{name: "spain exactly on boundary stays in lower bracket", country: "es", gross: 12450, want: 12450 * 0.81},
		{name: "spain one unit over boundary", country: "es", gross: 12451, want: 12450*0.81 + 1*0.76},
		{name: "spain middle", country: "es", gross: 50000, want: 35798.5},
		{name: "spain top bracket", country: "es", gross: 100000, want: 100000 - (12450*.19 + 7750*.24 + 15000*.30 + 24800*.37 + 40000*.45)},
		{
			name:    "italy all five brackets",
			country: "it",
			gross:   100000,
			want:    100000 - (15000*.23 + 13000*.27 + 27000*.38 + 20000*.41 + 25000*.43),
		},
		{name: "italy exactly on top boundary", country: "it", gross: 75000, want: 75000 - (15000*.23 + 13000*.27 + 27000*.38 + 20000*.41)},
		{name: "negative income taxed at lowest rate", country: "es", gross: -1000, want: -1000 * 0.81},
		{name: "negative income italy", country: "it", gross: -1000, want: -1000 * 0.77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeNet(tt.country, tt.gross), delta)
		})
	}
}

func TestComputeNetBounds(t *testing.T) {
	grosses := []float64{0, 1, 999.99, 12450, 15000, 20200, 28000, 35200, 55000, 60000, 75000, 123456.78, 1e7}

	for _, code := range scales.Codes() {
		maxPercentage := scales.MaxPercentage(code)
		for _, g := range grosses {
			net := ComputeNet(code, g)
			assert.LessOrEqual(t, net, g+delta, "%s %.2f", code, g)
			assert.GreaterOrEqual(t, net, g*(1-maxPercentage/100)-delta, "%s %.2f", code, g)
		}
	}
}

func TestComputeNetIsDeterministic(t *testing.T) {
	first := ComputeNet("it", 64321.5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeNet("it", 64321.5))
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4166.67, Round2(50000.0/12))
	assert.Equal(t, 2983.21, Round2(35798.5/12))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
}

func TestCalculateValuesSpain(t *testing.T) {
	values := CalculateValues("es", 50000)

	assert.Equal(t, "50.000,00 €", values.GrossIncome)
	assert.Equal(t, "4166,67 €", values.GrossIncomePerMonth)
	assert.Equal(t, "35.798,50 €", values.NetIncome)
	assert.Equal(t, "2983,21 €", values.NetIncomePerMonth)
	assert.Contains(t, values.FinalPercentage, "28,40")
	assert.Contains(t, values.FinalPercentage, "%")
}

func TestCalculateValuesItaly(t *testing.T) {
	values := CalculateValues("it", 100000)

	assert.Equal(t, "100.000,00 €", values.GrossIncome)
	assert.Equal(t, "63.830,00 €", values.NetIncome)
	assert.Contains(t, values.FinalPercentage, "36,17")
}

func TestCalculateValuesUnknownCountry(t *testing.T) {
	values := CalculateValues("xx", 20000)

	assert.Equal(t, "20.000,00 €", values.GrossIncome)
	assert.Contains(t, values.NetIncome, "0,00")
	assert.Contains(t, values.FinalPercentage, "100,00")
}

func TestCalculateValuesZeroGross(t *testing.T) {
	require.NotPanics(t, func() {
		values := CalculateValues("es", 0)
		assert.NotEmpty(t, values.FinalPercentage)
	})
}
