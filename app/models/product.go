package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Catalog files written by earlier deployments store prices as bare
	// JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  int             `json:"category_id"`
	Views       int             `json:"views"`
}
