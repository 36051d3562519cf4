package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var money = accounting.Accounting{Symbol: "$", Precision: 2}

// Money renders a product price for templates, e.g. "$1,299.50".
func Money(amount decimal.Decimal) string {
	return money.FormatMoney(amount)
}
