package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

// DatePrecisions lists the accepted capture-date precisions, finest first
var DatePrecisions = []string{"hour", "day", "month", "year", "decade"}

// RotationDegrees lists the accepted clockwise rotations
var RotationDegrees = []int{90, 180, 270}

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
	validate.RegisterValidation("date_precision", func(fl validator.FieldLevel) bool {
		return IsDatePrecision(fl.Field().String())
	})

	validate.RegisterValidation("rotation", func(fl validator.FieldLevel) bool {
		return IsRotation(int(fl.Field().Int()))
	})

	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// IsDatePrecision reports whether p is one of DatePrecisions
func IsDatePrecision(p string) bool {
	for _, v := range DatePrecisions {
		if p == v {
			return true
		}
	}
	return false
}

// IsRotation reports whether degrees is one of RotationDegrees
func IsRotation(degrees int) bool {
	for _, v := range RotationDegrees {
		if degrees == v {
			return true
		}
	}
	return false
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range validationErrors {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "notblank":
			errors[field] = "This field must not be blank"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "uuid":
			errors[field] = "Invalid UUID"
		case "date_precision":
			errors[field] = "Must be one of: hour, day, month, year, decade"
		case "rotation":
			errors[field] = "Must be 90, 180, or 270"
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
