package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lunefall/rewardengine/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for reward enums
	_ = v.RegisterValidation("rewardtype", validateRewardType)
	_ = v.RegisterValidation("source", validateSource)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "rewardtype":
			errs[field] = "Invalid reward type"
		case "source":
			errs[field] = "Invalid acquire source"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidRewardTypes defines the reward types accepted over the API.
// RewardNone is internal only; a client asking for NONE is a mistake.
var ValidRewardTypes = map[domain.RewardType]bool{
	domain.RewardItem:      true,
	domain.RewardCurrency:  true,
	domain.RewardCharacter: true,
	domain.RewardTable:     true,
	domain.RewardGacha:     true,
}

// ValidSources defines supported acquire sources
var ValidSources = map[domain.AcquireSource]bool{
	domain.SourceNone:         true,
	domain.SourceExchange:     true,
	domain.SourceMail:         true,
	domain.SourceCompensation: true,
}

func validateRewardType(fl validator.FieldLevel) bool {
	return ValidRewardTypes[domain.RewardType(fl.Field().String())]
}

func validateSource(fl validator.FieldLevel) bool {
	source := fl.Field().String()
	// Empty defaults to SourceNone downstream
	if source == "" {
		return true
	}
	return ValidSources[domain.AcquireSource(source)]
}
