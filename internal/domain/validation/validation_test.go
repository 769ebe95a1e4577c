package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
)

type namesStub struct {
	taken map[string]id.ID
	err   error
}

func (n namesStub) NameTaken(_ context.Context, name string, exclude *id.ID) (bool, error) {
	if n.err != nil {
		return false, n.err
	}
	owner, ok := n.taken[name]
	if !ok {
		return false, nil
	}
	return exclude == nil || *exclude != owner, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCategoryName(t *testing.T) {
	ctx := context.Background()
	burgerID := id.New()
	names := namesStub{taken: map[string]id.ID{"Burger": burgerID}}

	t.Run("numeric", func(t *testing.T) {
		err := CategoryName(ctx, "5000", names, nil)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, apperror.IsInvalidInput(CategoryName(ctx, "  ", names, nil)))
	})

	t.Run("collides after capitalization", func(t *testing.T) {
		err := CategoryName(ctx, "bURGER", names, nil)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("own name on update", func(t *testing.T) {
		assert.NoError(t, CategoryName(ctx, "burger", names, &burgerID))
	})

	t.Run("fresh name", func(t *testing.T) {
		assert.NoError(t, CategoryName(ctx, "Salads", names, nil))
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		boom := errors.New("db down")
		err := CategoryName(ctx, "Soups", namesStub{err: boom}, nil)
		assert.ErrorIs(t, err, boom)
	})
}

func TestPriceRules(t *testing.T) {
	assert.NoError(t, PricePositive(dec("0.01")))
	assert.True(t, apperror.IsInvalidInput(PricePositive(dec("0"))))
	assert.True(t, apperror.IsInvalidInput(PricePositive(dec("-5"))))

}

func TestPriceDigitBound(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"12345678.90", true},
		{"99999999.99", true},
		{"0.01", true},
		{"1.50", true},
		{"123456789.01", false},
		{"123456789.5", false},
		{"123456789", false},
		{"1.005", false},
		{"0.125", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := PriceDigitBound(dec(tt.in))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperror.IsInvalidInput(err), "got %v", err)
		})
	}
}

func TestDiscountBounds(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"0", false},
		{"-1", false},
		{"0.01", true},
		{"10", true},
		{"99.99", true},
		{"100", false},
		{"99.999", false},
		{"12.345", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := DiscountBounds(dec(tt.in))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.IsInvalidInput(err))
			}
		})
	}
}

func TestDiscountConsistency(t *testing.T) {
	price := dec("90")
	pct := dec("10")

	assert.NoError(t, DiscountConsistency(nil, nil))
	assert.NoError(t, DiscountConsistency(nil, &pct))
	assert.NoError(t, DiscountConsistency(&price, &pct))
	assert.True(t, apperror.IsInvalidInput(DiscountConsistency(&price, nil)))
}

func TestRating(t *testing.T) {
	for _, ok := range []string{"0.5", "1", "1.0", "3.5", "5", "5.0"} {
		assert.NoError(t, Rating(dec(ok)), ok)
	}
	for _, bad := range []string{"0", "3.3", "5.5", "-0.5", "4.25"} {
		assert.True(t, apperror.IsInvalidInput(Rating(dec(bad))), bad)
	}
}

func TestPhoneNumber(t *testing.T) {
	assert.NoError(t, PhoneNumber("+998901234567"))
	for _, bad := range []string{"998901234567", "+99890123456", "+9989012345678", "+998 90 123 45 67", "+79001234567"} {
		assert.True(t, apperror.IsInvalidInput(PhoneNumber(bad)), bad)
	}
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username("Ali"))
	assert.True(t, apperror.IsInvalidInput(Username("Al")))
	assert.True(t, apperror.IsInvalidInput(Username("12345")))
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("secret12"))
	assert.True(t, apperror.IsInvalidInput(Password("secret1")))
	assert.True(t, apperror.IsInvalidInput(Password("secretsecret")))
}

func TestPasswordsMatch(t *testing.T) {
	assert.NoError(t, PasswordsMatch("secret12", "secret12"))
	err := PasswordsMatch("secret12", "secret13")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Passwords do not match", appErr.Message)
}

func TestMaxLength(t *testing.T) {
	assert.NoError(t, MaxLength("feedback", "ок", 2))
	assert.True(t, apperror.IsInvalidInput(MaxLength("feedback", "abc", 2)))
}
