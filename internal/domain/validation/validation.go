// Package validation holds the stateless shape and uniqueness rules of the catalog,
// venue and account entities. Every rule returns nil or an *apperror.AppError.
package validation

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/core/types"
	"dastarkhan/internal/domain/derive"
)

// MaxPriceDigits bounds original_price (NUMERIC(10,2)): ten digits in total,
// two of them after the point.
const MaxPriceDigits = 10

var (
	phonePattern = regexp.MustCompile(`^\+998\d{9}$`)
	maxDiscount  = decimal.RequireFromString("99.99")
	two          = decimal.NewFromInt(2)
)

// NameChecker reports whether a stored record other than exclude already uses name.
type NameChecker interface {
	NameTaken(ctx context.Context, name string, exclude *id.ID) (bool, error)
}

// IsNumeric reports a non-empty string made only of digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Required rejects blank values.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.NewInvalidInput(field, field+" is required")
	}
	return nil
}

// MaxLength rejects values longer than n characters.
func MaxLength(field, value string, n int) error {
	if utf8.RuneCountInString(value) > n {
		return apperror.NewInvalidInput(field, field+" is too long").
			WithDetail("max_length", n)
	}
	return nil
}

// CategoryName rejects purely numeric names and names whose capitalized form
// already belongs to another category.
func CategoryName(ctx context.Context, name string, names NameChecker, exclude *id.ID) error {
	if err := Required("name", name); err != nil {
		return err
	}
	if IsNumeric(name) {
		return apperror.NewInvalidInput("name", "category name must not be numeric").
			WithDetail("value", name)
	}

	stored := derive.Capitalize(name)
	taken, err := names.NameTaken(ctx, stored, exclude)
	if err != nil {
		return err
	}
	if taken {
		return apperror.NewDuplicate("category", "name", stored)
	}
	return nil
}

// UniqueName is the generic form of the name pre-check used for products and the restaurant.
func UniqueName(ctx context.Context, entity, name string, names NameChecker, exclude *id.ID) error {
	taken, err := names.NameTaken(ctx, name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return apperror.NewDuplicate(entity, "name", name)
	}
	return nil
}

// PricePositive rejects zero and negative prices.
func PricePositive(value decimal.Decimal) error {
	if !value.IsPositive() {
		return apperror.NewInvalidInput("original_price", "price must be greater than zero").
			WithDetail("value", value.String())
	}
	return nil
}

// PriceDigitBound rejects prices the NUMERIC(10,2) column can not hold exactly:
// more than MaxPriceDigits digits, more than 8 before the point or more than 2 after it.
func PriceDigitBound(value decimal.Decimal) error {
	scale := int(types.PriceScale)
	if types.TotalDigits(value) > MaxPriceDigits {
		return apperror.NewInvalidInput("original_price", "price has too many digits").
			WithDetail("max_digits", MaxPriceDigits)
	}
	if types.IntegerDigits(value) > MaxPriceDigits-scale {
		return apperror.NewInvalidInput("original_price", "price has too many digits before the decimal point").
			WithDetail("max_whole_digits", MaxPriceDigits-scale)
	}
	if types.DecimalPlaces(value) > scale {
		return apperror.NewInvalidInput("original_price", "price allows at most 2 decimal places").
			WithDetail("value", value.String())
	}
	return nil
}

// DiscountBounds accepts (0, 99.99] with at most two decimal places.
func DiscountBounds(value decimal.Decimal) error {
	if !value.IsPositive() || value.GreaterThan(maxDiscount) {
		return apperror.NewInvalidInput("discount_percent", "discount must be greater than 0 and at most 99.99").
			WithDetail("value", value.String())
	}
	if types.DecimalPlaces(value) > int(types.PriceScale) {
		return apperror.NewInvalidInput("discount_percent", "discount allows at most 2 decimal places").
			WithDetail("value", value.String())
	}
	return nil
}

// DiscountConsistency forbids a caller-supplied discounted price without a percent.
func DiscountConsistency(discounted, percent *decimal.Decimal) error {
	if discounted != nil && percent == nil {
		return apperror.NewInvalidInput("discounted_price", "discounted price can not be set without discount percent")
	}
	return nil
}

// Rating accepts 0.5 through 5.0 in half steps.
func Rating(value decimal.Decimal) error {
	doubled := value.Mul(two)
	if !doubled.IsInteger() || doubled.LessThan(decimal.NewFromInt(1)) || doubled.GreaterThan(decimal.NewFromInt(10)) {
		return apperror.NewInvalidInput("rating", "rating must be one of 0.5, 1.0, ... 5.0").
			WithDetail("value", value.String())
	}
	return nil
}

// PhoneNumber accepts +998 followed by exactly nine digits.
func PhoneNumber(value string) error {
	if !phonePattern.MatchString(value) {
		return apperror.NewInvalidInput("phone_number", "phone number must be entered in the format: +998XXXXXXXXX").
			WithDetail("value", value)
	}
	return nil
}

// Username rejects names of two characters or fewer and purely numeric names.
func Username(value string) error {
	if utf8.RuneCountInString(value) <= 2 || IsNumeric(value) {
		return apperror.NewInvalidInput("first_name", "name must be longer than 2 characters and not only digits")
	}
	return nil
}

// Password requires at least 8 characters and at least one digit.
func Password(value string) error {
	if utf8.RuneCountInString(value) < 8 || !strings.ContainsAny(value, "0123456789") {
		return apperror.NewInvalidInput("password", "password must be at least 8 characters long and contain a digit")
	}
	return nil
}

// PasswordsMatch compares a password with its confirmation.
func PasswordsMatch(password, confirm string) error {
	if password != confirm {
		return apperror.NewInvalidInput("confirm_password", "Passwords do not match")
	}
	return nil
}
