package handlers

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var accountCodePattern = regexp.MustCompile(`^[0-9]{1,10}$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// dateOnly accepts YYYY-MM-DD calendar dates.
func dateOnly(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

// accountCode accepts numeric chart codes such as "1000".
func accountCode(fl validator.FieldLevel) bool {
	return accountCodePattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the custom binding rules to gin's validator engine.
// It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("dateonly", dateOnly); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("accountcode", accountCode)
	})
	return registerErr
}
