package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/nsepulse/internal/domain/models"
)

var registerOnce sync.Once

// registerValidators adds the custom binding tags used by request structs:
//   - symbol: an exchange ticker (see models.ValidSymbol)
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
			return models.ValidSymbol(fl.Field().String())
		})
	})
}

// Request parameter shapes. Dates stay strings here; the query service parses
// them so that every caller gets the same MalformedInput errors.

type dateURI struct {
	Date string `uri:"date" binding:"required"`
}

type companyMetricsURI struct {
	Symbol string `uri:"symbol" binding:"required,symbol"`
	Date   string `uri:"date" binding:"required"`
}

type symbolURI struct {
	Symbol string `uri:"symbol" binding:"required,symbol"`
}

type historyQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

type trendsQuery struct {
	Period string `form:"period"`
}
