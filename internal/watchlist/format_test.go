package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$227.52", FormatPrice(227.52))
	assert.Equal(t, "$0.99", FormatPrice(0.994))
	assert.Equal(t, "N/A", FormatPrice(0))
	assert.Equal(t, "N/A", FormatPrice(-3.2))
}

func TestFormatChangePercent(t *testing.T) {
	assert.Equal(t, "+1.25%", FormatChangePercent(1.25))
	assert.Equal(t, "-0.40%", FormatChangePercent(-0.4))
	assert.Equal(t, "+0.00%", FormatChangePercent(0))
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		name     string
		millions float64
		want     string
	}{
		{name: "trillions", millions: 3.44e6, want: "$3.44T"},
		{name: "trillions trimmed", millions: 3.4e6, want: "$3.4T"},
		{name: "billions", millions: 12500, want: "$12.5B"},
		{name: "billions exact", millions: 1000, want: "$1B"},
		{name: "millions", millions: 900, want: "$900M"},
		{name: "small", millions: 12.34, want: "$12.34M"},
		{name: "zero", millions: 0, want: "N/A"},
		{name: "negative", millions: -5, want: "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMarketCap(tt.millions))
		})
	}
}
