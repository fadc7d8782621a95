package rules

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// spaceClass lists the characters treated as whitespace by the rules. It is
// kept in sync with IsSpace.
const spaceClass = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

const (
	emailExpr = `^[^` + spaceClass + `@]+@[^` + spaceClass + `@]+\.[^` + spaceClass + `@]+$`
	phoneExpr = `^[0-9]{7,}$`
	dniExpr   = `^[0-9]{7,8}$`
)

var (
	emailPattern = regexp.MustCompile(emailExpr)
	phonePattern = regexp.MustCompile(phoneExpr)
	dniPattern   = regexp.MustCompile(dniExpr)
)

// FullName requires more than six characters and at least one whitespace.
func FullName(value string) bool {
	return TextLength(value) > 6 && hasSpace(value)
}

// Email requires local@domain.tld with no whitespace or '@' inside the parts.
func Email(value string) bool {
	return emailPattern.MatchString(value)
}

// Password requires at least eight characters mixing letters and digits.
func Password(value string) bool {
	return TextLength(value) >= 8 && hasDigit(value) && hasLetter(value)
}

// ConfirmPassword compares value against the password field as it is now.
func ConfirmPassword(value string, fields Lookup) bool {
	if fields == nil {
		return value == ""
	}
	return value == fields.Value(FieldPassword)
}

// Age requires a base-10 integer of at least 18. Surrounding whitespace is
// ignored; fractions, signs-only and trailing garbage fail.
func Age(value string) bool {
	trimmed := strings.TrimFunc(value, IsSpace)
	if trimmed == "" {
		return false
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		// out of range values are still integers; ParseInt clamps them
		if !errors.Is(err, strconv.ErrRange) {
			return false
		}
	}
	return n >= 18
}

// Phone requires seven or more digits and nothing else.
func Phone(value string) bool {
	return phonePattern.MatchString(value)
}

// Address requires five characters including a digit, a letter and a space.
func Address(value string) bool {
	return TextLength(value) >= 5 && hasDigit(value) && hasLetter(value) && hasSpace(value)
}

// City requires at least three characters.
func City(value string) bool {
	return TextLength(value) >= 3
}

// PostalCode requires at least three characters.
func PostalCode(value string) bool {
	return TextLength(value) >= 3
}

// DNI requires exactly seven or eight digits.
func DNI(value string) bool {
	return dniPattern.MatchString(value)
}

// TextLength counts UTF-16 code units, the length a browser input reports
// for the same text. Every minimum length in the rules uses it.
func TextLength(value string) int {
	n := 0
	for _, r := range value {
		if r >= 0x10000 {
			n += 2
			continue
		}
		n++
	}
	return n
}

func hasSpace(value string) bool {
	return strings.IndexFunc(value, IsSpace) >= 0
}

func hasDigit(value string) bool {
	return strings.IndexFunc(value, func(r rune) bool {
		return r >= '0' && r <= '9'
	}) >= 0
}

func hasLetter(value string) bool {
	return strings.IndexFunc(value, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
}

// IsSpace reports whether r is whitespace for the purpose of the rules:
// ASCII blanks, no-break and Unicode space separators, line and paragraph
// separators and the byte order mark.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
