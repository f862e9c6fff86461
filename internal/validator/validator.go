// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finanzio/internal/uuid"
)

// validCurrencies contains the ISO 4217 currency codes accepted for wallets.
var validCurrencies = map[string]bool{
	"AED": true, "ARS": true, "AUD": true, "BDT": true, "BRL": true,
	"CAD": true, "CHF": true, "CNY": true, "CZK": true, "DKK": true,
	"EGP": true, "EUR": true, "GBP": true, "HKD": true, "HUF": true,
	"IDR": true, "ILS": true, "INR": true, "JPY": true, "KES": true,
	"KRW": true, "KWD": true, "LKR": true, "MAD": true, "MXN": true,
	"MYR": true, "NGN": true, "NOK": true, "NZD": true, "PHP": true,
	"PKR": true, "PLN": true, "QAR": true, "RON": true, "RUB": true,
	"SAR": true, "SEK": true, "SGD": true, "THB": true, "TRY": true,
	"TWD": true, "UAH": true, "USD": true, "VND": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("uuid_ref", validateUUIDRef)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "INCOME", "EXPENSE":
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "INCOME", "EXPENSE":
		return true
	}
	return false
}

func validateUUIDRef(fl validator.FieldLevel) bool {
	return uuid.IsValid(fl.Field().String())
}
