package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"yamlmeta/internal/common"
)

// Convention selects how Go identifiers become YAML keys.
type Convention int

const (
	LowerCamelCase Convention = iota // orderID
	UpperCamelCase                   // OrderID
	SnakeCase                        // order_id
	KebabCase                        // order-id
)

// Default is the convention used when a type does not pick one.
const Default = LowerCamelCase

// String returns the directive spelling of the convention.
func (c Convention) String() string {
	switch c {
	case LowerCamelCase:
		return "lowerCamelCase"
	case UpperCamelCase:
		return "UpperCamelCase"
	case SnakeCase:
		return "snake_case"
	case KebabCase:
		return "kebab-case"
	default:
		return common.UnknownStr
	}
}

// IsValid returns true for the four known conventions.
func (c Convention) IsValid() bool {
	return c >= LowerCamelCase && c <= KebabCase
}

// ParseConvention parses a convention name. Spelling and separators are
// ignored, so "snake_case", "SnakeCase" and "snake" all parse.
func ParseConvention(s string) (Convention, error) {
	switch Normalize(s) {
	case "lowercamelcase", "lowercamel", "camelcase", "camel":
		return LowerCamelCase, nil
	case "uppercamelcase", "uppercamel", "pascalcase", "pascal":
		return UpperCamelCase, nil
	case "snakecase", "snake":
		return SnakeCase, nil
	case "kebabcase", "kebab":
		return KebabCase, nil
	default:
		return Default, fmt.Errorf("unknown naming convention %q", s)
	}
}

// Apply rewrites name according to the convention.
func (c Convention) Apply(name string) string {
	tokens := Tokenize(name)
	if len(tokens) == 0 {
		return name
	}

	switch c {
	case UpperCamelCase:
		for i, t := range tokens {
			tokens[i] = upperFirst(t)
		}

		return strings.Join(tokens, "")

	case SnakeCase:
		return strings.ToLower(strings.Join(tokens, "_"))

	case KebabCase:
		return strings.ToLower(strings.Join(tokens, "-"))

	default:
		tokens[0] = strings.ToLower(tokens[0])
		for i := 1; i < len(tokens); i++ {
			tokens[i] = upperFirst(tokens[i])
		}

		return strings.Join(tokens, "")
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
