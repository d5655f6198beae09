package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

var courseCodePattern = regexp.MustCompile(`^[A-Z]{2,4}\d{3}$`)

// NewValidator returns a validator that reports json field names and knows the coursecode rule.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return courseCodePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// fieldMessages maps field -> validation tag -> message shown next to the field.
type fieldMessages map[string]map[string]string

var courseMessages = fieldMessages{
	"title": {
		"required": "Course title is required",
		"min":      "Title must be at least 3 characters",
	},
	"id": {
		"required":   "Course code is required",
		"coursecode": "Invalid format (e.g., CS101, MATH202)",
	},
	"description": {
		"required": "Description is required",
		"min":      "Description must be at least 20 characters",
	},
	"department": {"required": "Department is required"},
	"credits": {
		"required": "Credits are required",
		"min":      "Minimum 1 credit",
		"max":      "Maximum 6 credits",
	},
	"capacity": {
		"required": "Capacity is required",
		"min":      "Minimum 5 students",
		"max":      "Maximum 200 students",
	},
	"instructor":    {"required": "Instructor is required"},
	"prerequisites": {"coursecode": "Invalid prerequisite code"},
}

var profileMessages = fieldMessages{
	"name":  {"required": "Name and email are required"},
	"email": {"required": "Name and email are required", "email": "Invalid email address"},
}

const passwordTooLong = "Password must be at most 72 characters"

var passwordMessages = fieldMessages{
	"currentPassword": {"required": fillAllPasswordFields},
	"newPassword":     {"required": fillAllPasswordFields, "max": passwordTooLong},
	"confirmPassword": {"required": fillAllPasswordFields},
}

// validate runs struct validation and converts failures into a field keyed validation error.
func validate(v *validator.Validate, payload interface{}, messages fieldMessages) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := fields[field]; seen {
			continue
		}
		msg := messages[field][fe.Tag()]
		if msg == "" {
			msg = fmt.Sprintf("%s failed %s validation", field, fe.Tag())
		}
		fields[field] = msg
	}
	return appErrors.Invalid(fields)
}
