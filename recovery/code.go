package recovery

import (
	"strings"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
)

// CodeLength is the number of single-digit positions in a one-time code
const CodeLength = 6

// Code is a one-time code collected one digit per position.
type Code [CodeLength]string

// Input puts v into position i and returns the position that should hold focus next.
// Only the last character typed is kept and anything but a digit leaves the position empty.
func (c *Code) Input(i int, v string) int {
	if i < 0 || i >= CodeLength {
		return clamp(i)
	}
	if v == "" {
		c[i] = ""
		return i
	}
	last := v[len(v)-1:]
	if last < "0" || last > "9" {
		return i
	}
	c[i] = last
	if i < CodeLength-1 {
		return i + 1
	}
	return i
}

// Backspace handles a backspace in position i and returns the position to focus.
// An empty position hands focus back to the one before it.
func (c *Code) Backspace(i int) int {
	if i < 0 || i >= CodeLength {
		return clamp(i)
	}
	if c[i] != "" {
		c[i] = ""
		return i
	}
	if i > 0 {
		return i - 1
	}
	return i
}

func (c Code) Complete() bool {
	for _, d := range c {
		if d == "" {
			return false
		}
	}
	return true
}

func (c Code) String() string {
	return strings.Join(c[:], "")
}

// ParseCode reads a code from its six form fields.
func ParseCode(digits []string) (Code, error) {
	var c Code
	if len(digits) > CodeLength {
		return c, apperrors.NewValidationError("otp", "incomplete code")
	}
	for i, d := range digits {
		c.Input(i, strings.TrimSpace(d))
	}
	if !c.Complete() {
		return c, apperrors.NewValidationError("otp", "incomplete code")
	}
	return c, nil
}

// ParseCodeString reads a code pasted as one string.
func ParseCodeString(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if len(s) != CodeLength {
		return Code{}, apperrors.NewValidationError("otp", "incomplete code")
	}
	return ParseCode(strings.Split(s, ""))
}

func clamp(i int) int {
	return max(0, min(i, CodeLength-1))
}
