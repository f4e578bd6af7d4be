package handlers

import (
	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrency reports whether the field holds an ISO 4217 code known to
// the currency table.
func validCurrency(fl validator.FieldLevel) bool {
	return money.GetCurrency(fl.Field().String()) != nil
}

// registerCustomValidators attaches the "currency" binding tag used by
// request DTOs. Registration is idempotent, so calling it again on the
// shared engine is harmless.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validCurrency)
	}
}
