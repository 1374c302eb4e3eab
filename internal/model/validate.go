package model

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	loginPattern = regexp.MustCompile(`^[a-zA-Z0-9-]{1,30}$`)
	phonePattern = regexp.MustCompile(`^\+\d+$`)
)

const (
	minPasswordLength = 6
	maxPasswordLength = 100
)

// ConstraintError names the first field constraint a value violated.
type ConstraintError struct {
	Field string
	Rule  string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("field %s violates %s", e.Field, e.Rule)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared instance with the identity rules registered.
// The gin binding engine registers the same rules in the router.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = RegisterRules(validate)
	})
	return validate
}

// RegisterRules adds login, phone and strongpassword to v.
func RegisterRules(v *validator.Validate) error {
	if err := v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return loginPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return CheckPasswordPolicy(fl.Field().String())
	})
}

// ValidateUser checks the stored shape of u. It returns nil or a *ConstraintError.
func ValidateUser(u *User) error {
	return constraintFrom(Validator().Struct(u))
}

// ValidateLogin reports whether login is a well-formed login.
func ValidateLogin(login string) bool {
	return loginPattern.MatchString(login)
}

// ValidatePost checks content and tag limits. Content length counts characters, not bytes.
func ValidatePost(content string, tags []string) error {
	if utf8.RuneCountInString(content) > MaxPostContentLength {
		return &ConstraintError{Field: "content", Rule: "max"}
	}
	if len(tags) > MaxPostTags {
		return &ConstraintError{Field: "tags", Rule: "max"}
	}
	return nil
}

// CheckPasswordPolicy requires 6..100 characters with at least one lower case
// letter, one upper case letter and one digit.
func CheckPasswordPolicy(plain string) bool {
	n := utf8.RuneCountInString(plain)
	if n < minPasswordLength || n > maxPasswordLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range plain {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

func constraintFrom(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ConstraintError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
	}
	return err
}
