package handlers

import (
	"fmt"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/utils"
	"github.com/SscSPs/wallet_backend/internal/utils/accounting"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the wallet's custom binding tags to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("ledger_kind", validateLedgerKind); err != nil {
		return err
	}
	if err := v.RegisterValidation("ngn_amount", validateNGNAmount); err != nil {
		return err
	}
	return v.RegisterValidation("wallet_pin", validateWalletPin)
}

func validateLedgerKind(fl validator.FieldLevel) bool {
	return domain.ParseKind(fl.Field().String()).Known()
}

// validateNGNAmount accepts positive decimal strings with at most two decimal places.
func validateNGNAmount(fl validator.FieldLevel) bool {
	_, err := accounting.ParseAmount(fl.Field().String())
	return err == nil
}

func validateWalletPin(fl validator.FieldLevel) bool {
	return utils.IsValidPin(fl.Field().String())
}
