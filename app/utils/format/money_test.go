package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,299.50", Money(decimal.NewFromFloat(1299.5)))
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "$24.50", Money(decimal.NewFromFloat(24.5)))
}
