package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Scam type validation
	validate.RegisterValidation("scam_type", func(fl validator.FieldLevel) bool {
		scamType := fl.Field().String()
		validTypes := []string{
			"investment", "romance", "phishing", "tech_support",
			"online_shopping", "lottery", "fake_job", "charity",
			"rental", "crypto", "identity_theft", "other",
		}
		for _, t := range validTypes {
			if scamType == t {
				return true
			}
		}
		return false
	})

	// Report status validation (moderation targets only)
	validate.RegisterValidation("report_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"approved", "rejected", "under_review"}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Currency code: three uppercase letters
	validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if code == "" {
			return true
		}
		if len(code) != 3 {
			return false
		}
		for i := 0; i < 3; i++ {
			if code[i] < 'A' || code[i] > 'Z' {
				return false
			}
		}
		return true
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "scam_type":
			errors[field] = "Invalid scam type"
		case "report_status":
			errors[field] = "Invalid status. Must be: approved, rejected, or under_review"
		case "currency":
			errors[field] = "Invalid currency code (ISO 4217, e.g. USD)"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
