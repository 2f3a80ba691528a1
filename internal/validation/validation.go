package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	// MaxPrice is the largest value a NUMERIC(5,2) price column holds.
	MaxPrice = decimal.RequireFromString("999.99")

	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		// decimals are validated through their string form
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
			return ValidPrice(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// ValidPrice reports whether s is a decimal in [0, 999.99] with at most two
// fractional digits.
func ValidPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	if d.IsNegative() || d.GreaterThan(MaxPrice) {
		return false
	}
	return d.Equal(d.Truncate(2))
}

// Struct validates s against its `validate` tags and converts failures into
// an *apperror.ValidationError.
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &apperror.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperror.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "slug":
		return "enter a valid slug consisting of letters, numbers, underscores or hyphens"
	case "price":
		return "ensure this value is between 0 and 999.99 with at most 2 decimal places"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
