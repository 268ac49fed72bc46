package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Numeric is any integer or float type.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Rule is a deferred check and the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// newRule builds a rule whose translation values hold field plus the
// key/value pairs in kv.
func newRule(field, key, message string, check func() bool, kv ...any) Rule {
	values := map[string]any{"field": field}
	for i := 0; i+1 < len(kv); i += 2 {
		values[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    "validation." + key,
			TranslationValues: values,
		},
	}
}

// Custom builds a rule from an arbitrary check, for constraints that span
// several fields.
func Custom(field, message string, check func() bool) Rule {
	return newRule(field, "custom", message, check)
}

// RequiredString fails on empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return newRule(field, "required", "field is required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MaxLenString counts runes, not bytes.
func MaxLenString(field, value string, max int) Rule {
	return newRule(field, "max_length", fmt.Sprintf("must be at most %d characters long", max),
		func() bool { return utf8.RuneCountInString(value) <= max },
		"max", max)
}

// InListString validates that value is one of allowed. Empty values pass;
// combine with RequiredString when the field is mandatory.
func InListString(field, value string, allowed []string) Rule {
	return newRule(field, "in_list", "must be one of: "+strings.Join(allowed, ", "),
		func() bool { return value == "" || slices.Contains(allowed, value) },
		"values", allowed)
}

// RangeNum validates that min <= value <= max.
func RangeNum[T Numeric](field string, value, min, max T) Rule {
	return newRule(field, "range", fmt.Sprintf("must be between %v and %v", min, max),
		func() bool { return value >= min && value <= max },
		"min", min, "max", max)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidHexColor accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA. Empty values pass.
func ValidHexColor(field, value string) Rule {
	return newRule(field, "hex_color", "must be a hex color like #000000", func() bool {
		return value == "" || hexColor.MatchString(value)
	})
}
