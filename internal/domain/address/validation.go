// internal/domain/address/validation.go
package address

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries per-field messages for a rejected address.
// Every failing field is reported; submission is blocked until all
// fields pass simultaneously.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "address validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "address validation failed: " + strings.Join(parts, "; ")
}

var (
	fullNameChars = regexp.MustCompile(`^[A-Za-z' -]+$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

// validate is the package-level validator with the address rules
// registered once
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Letters, spaces, hyphens and apostrophes only, and at least a
	// first and last name
	_ = v.RegisterValidation("full_name", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		if !fullNameChars.MatchString(name) {
			return false
		}
		return len(strings.Fields(name)) >= 2
	})

	// Nigerian phone formats: 11 digits leading 0, or 13 digits
	// leading 234, after stripping separators
	_ = v.RegisterValidation("ng_phone", func(fl validator.FieldLevel) bool {
		digits := nonDigits.ReplaceAllString(fl.Field().String(), "")
		switch {
		case len(digits) == 11 && strings.HasPrefix(digits, "0"):
			return true
		case len(digits) == 13 && strings.HasPrefix(digits, "234"):
			return true
		}
		return false
	})

	// Minimum length after trimming surrounding whitespace
	_ = v.RegisterValidation("trimmin", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(strings.TrimSpace(fl.Field().String())) >= min
	})

	return v
}

// fieldMessages maps struct fields to the inline messages shown next to
// the offending input
var fieldMessages = map[string]string{
	"FullName": "Enter your first and last name (letters, hyphens and apostrophes only)",
	"Phone":    "Enter a valid phone number (0XXXXXXXXXX or 234XXXXXXXXXX)",
	"Street":   "Street address must be at least 5 characters",
	"City":     "City must be at least 2 characters",
	"State":    "State must be at least 2 characters",
	"Label":    "Label must be Home, Office or Other",
}

// fieldKeys maps struct fields to their wire names for the error map
var fieldKeys = map[string]string{
	"FullName": "full_name",
	"Phone":    "phone",
	"Street":   "street",
	"City":     "city",
	"State":    "state",
	"Label":    "label",
}

// checkRequest runs the local validation gate before any network call
func checkRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("address validation failed: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKeys[fe.StructField()]
		if key == "" {
			key = strings.ToLower(fe.StructField())
		}
		msg := fieldMessages[fe.StructField()]
		if msg == "" {
			msg = "This field is invalid"
		}
		if fe.Tag() == "required" {
			msg = "This field is required"
		}
		fields[key] = msg
	}

	return &ValidationError{Fields: fields}
}

// NormalizePhone converts an accepted phone into +234XXXXXXXXXX form.
// Inputs that do not match the accepted formats are returned unchanged;
// callers are expected to validate first.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "+234" + digits[1:]
	case len(digits) == 13 && strings.HasPrefix(digits, "234"):
		return "+" + digits
	}
	return phone
}
