package dto

import (
	"net/url"

	"marketplace-sync/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("locator", validateLocator)
		_ = v.RegisterValidation("display_price", validateDisplayPrice)
	}
}

// validateLocator accepts http, https and ipfs URLs.
func validateLocator(fl validator.FieldLevel) bool {
	return IsLocator(fl.Field().String())
}

// IsLocator reports whether raw is a locator an uploaded image can resolve at.
func IsLocator(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	case "ipfs":
		return true
	default:
		return false
	}
}

// validateDisplayPrice accepts decimal ether amounts that convert to wei exactly.
func validateDisplayPrice(fl validator.FieldLevel) bool {
	_, err := domain.ParsePrice(fl.Field().String())
	return err == nil
}
