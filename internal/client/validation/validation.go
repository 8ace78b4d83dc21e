package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 8

// Email messages, in the order the rules run.
const (
	MsgEmailEmpty      = "Email cannot be empty"
	MsgEmailMissingAt  = "Email must contain @"
	MsgEmailWhitespace = "Email cannot contain spaces"
	MsgEmailLocalChars = "Only letters, digits, '.', '_' and '-' are allowed before @"
	MsgEmailFormat     = "Email must look like name@domain.com"
)

// Password messages, in the order the rules run.
const (
	MsgPasswordEmpty   = "Password cannot be empty"
	MsgPasswordUpper   = "Password must contain an uppercase letter"
	MsgPasswordLower   = "Password must contain a lowercase letter"
	MsgPasswordDigit   = "Password must contain a digit"
	MsgPasswordSpecial = "Password must contain a special character"
	MsgPasswordLength  = "Password must be at least 8 characters long"
)

const (
	MsgNameEmpty        = "Name cannot be empty"
	MsgDisplayNameEmpty = "Display name cannot be empty"
	MsgProfileEmail     = "Enter a valid email address"
	MsgPhoneEmpty       = "Phone number cannot be empty"
	MsgPhoneLength      = "Phone number must be at least 9 digits"
	MsgPhoneDigits      = "Phone number can only contain digits"
	MsgOTP              = "The code must be 4 to 8 digits"
	MsgConfirmMismatch  = "Passwords do not match"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)
	localRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]*$`)
	otpRegex   = regexp.MustCompile(`^[0-9]{4,8}$`)

	validate = validator.New()
)

// Email checks a login email. The first failing rule wins.
func Email(email string) string {
	local, _, found := strings.Cut(email, "@")
	switch {
	case email == "":
		return MsgEmailEmpty
	case !found:
		return MsgEmailMissingAt
	case strings.IndexFunc(email, unicode.IsSpace) >= 0:
		return MsgEmailWhitespace
	case !localRegex.MatchString(local):
		return MsgEmailLocalChars
	case !emailRegex.MatchString(email):
		return MsgEmailFormat
	}
	return ""
}

type classes struct {
	upper, lower, digit, special bool
}

func classify(s string) classes {
	var c classes
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case !unicode.IsLetter(r):
			c.special = true
		}
	}
	return c
}

// Password checks a login password. The first failing rule wins.
func Password(password string) string {
	c := classify(password)
	switch {
	case password == "":
		return MsgPasswordEmpty
	case !c.upper:
		return MsgPasswordUpper
	case !c.lower:
		return MsgPasswordLower
	case !c.digit:
		return MsgPasswordDigit
	case !c.special:
		return MsgPasswordSpecial
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return MsgPasswordLength
	}
	return ""
}

// PasswordStrength lists every requirement password misses, e.g.
// "Password must contain at least 8 characters, an uppercase letter and a digit".
func PasswordStrength(password string) string {
	c := classify(password)

	var missing []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		missing = append(missing, "at least 8 characters")
	}
	if !c.upper {
		missing = append(missing, "an uppercase letter")
	}
	if !c.lower {
		missing = append(missing, "a lowercase letter")
	}
	if !c.digit {
		missing = append(missing, "a digit")
	}
	if !c.special {
		missing = append(missing, "a special character")
	}

	switch len(missing) {
	case 0:
		return ""
	case 1:
		return "Password must contain " + missing[0]
	}
	last := len(missing) - 1
	return "Password must contain " + strings.Join(missing[:last], ", ") + " and " + missing[last]
}

// Confirm checks that the repeated password matches.
func Confirm(password, confirm string) string {
	if password != confirm {
		return MsgConfirmMismatch
	}
	return ""
}

// Name checks a registration name.
func Name(name string) string {
	if strings.TrimSpace(name) == "" {
		return MsgNameEmpty
	}
	return ""
}

// DisplayName checks the profile display name.
func DisplayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return MsgDisplayNameEmpty
	}
	return ""
}

// ProfileEmail checks an email against the standard address grammar.
func ProfileEmail(email string) string {
	if err := validate.Var(email, "required,email"); err != nil {
		return MsgProfileEmail
	}
	return ""
}

// Phone checks a profile phone number.
func Phone(phone string) string {
	switch {
	case strings.TrimSpace(phone) == "":
		return MsgPhoneEmpty
	case utf8.RuneCountInString(phone) < 9:
		return MsgPhoneLength
	case strings.IndexFunc(phone, func(r rune) bool { return r < '0' || r > '9' }) >= 0:
		return MsgPhoneDigits
	}
	return ""
}

// OTP checks a one-time code.
func OTP(code string) string {
	if !otpRegex.MatchString(code) {
		return MsgOTP
	}
	return ""
}

// First returns the first non-empty message.
func First(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}
