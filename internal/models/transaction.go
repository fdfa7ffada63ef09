package models

import (
	"github.com/shopspring/decimal"
)

// Labels of the bootstrap dataset. The classifier can only ever emit these.
const (
	CategoryGroceries = "Groceries"
	CategoryUtilities = "Utilities"
	CategoryFood      = "Food"
	CategoryIncome    = "Income"
	CategoryHealth    = "Health"
)

// Transaction is one CSV row. It only lives for the duration of an upload.
type Transaction struct {
	Description string
	Amount      decimal.Decimal
}

type CategorizedTransaction struct {
	Transaction
	Category string
}
