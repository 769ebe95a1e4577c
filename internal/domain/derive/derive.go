// Package derive computes the fields that are never accepted from callers:
// slugs, discounted prices and storage paths.
package derive

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"dastarkhan/internal/core/types"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeFileRun = regexp.MustCompile(`[^-\w.]`)
	unsafeSlugRun = regexp.MustCompile(`[^\w\s-]`)
	dashSpaceRun  = regexp.MustCompile(`[-\s]+`)
	hundred       = decimal.NewFromInt(100)
)

// Slugify lower-cases name and replaces every whitespace run with one hyphen.
// Collisions are left to the storage layer's unique constraint.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// DiscountedPrice returns nil when percent is nil, otherwise
// original - original*percent/100 rounded half away from zero to 2 places.
func DiscountedPrice(original decimal.Decimal, percent *decimal.Decimal) *decimal.Decimal {
	if percent == nil {
		return nil
	}
	off := original.Mul(*percent).Div(hundred)
	v := types.RoundPrice(original.Sub(off))
	return &v
}

// UploadPath builds "{type}_images/{slug}{ext}". ext may be given with or without the dot.
func UploadPath(kind, slug, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s_images/%s%s", strings.ToLower(kind), slug, strings.ToLower(ext))
}

// SafeSlug is a filename-safe variant of Slugify: punctuation is dropped,
// hyphen and whitespace runs collapse to one hyphen, edges are trimmed.
func SafeSlug(s string) string {
	s = unsafeSlugRun.ReplaceAllString(strings.ToLower(s), "")
	s = dashSpaceRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}

// QRCodePath is where the restaurant QR image for domain lives.
func QRCodePath(domain string) string {
	return fmt.Sprintf("qr_codes/qr_code-%s.png", SafeSlug(domain))
}

// MediaPath is the gallery location of an uploaded restaurant image.
func MediaPath(filename string) string {
	return "restaurant_images/" + SanitizeFilename(filename)
}

// AvatarPath builds "avatars/user_{id}_{hash6}_{name}" where hash6 is the
// first six hex digits of md5(name).
func AvatarPath(userID, filename string) string {
	name := SanitizeFilename(filename)
	sum := md5.Sum([]byte(name))
	return fmt.Sprintf("avatars/user_%s_%s_%s", userID, hex.EncodeToString(sum[:])[:6], name)
}

// SanitizeFilename keeps the base name, turns spaces into underscores and
// drops anything that is not a word character, dot or hyphen.
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	return unsafeFileRun.ReplaceAllString(name, "")
}

// Ext returns the lower-cased extension of filename including the dot.
func Ext(filename string) string {
	return strings.ToLower(path.Ext(filename))
}
