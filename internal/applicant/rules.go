package applicant

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	msgName       = "Name must contain only letters and be at least 2 characters long."
	msgState      = "Enter a valid U.S. state abbreviation."
	msgCountry    = "Country code must be 'US'."
	msgSSN        = "SSN must be exactly 9 digits."
	msgPostalCode = "ZIP Code must be exactly 5 digits."
	msgPhone      = "Phone number must be exactly 10 digits."
	msgEmail      = "Please enter a valid email address."
	msgBirthDate  = "Date of birth must use the YYYY-MM-DD format."
	msgRequired   = "This field is required."

	// AcceptedCountry is the only country code the evaluation workflow accepts.
	AcceptedCountry = "US"
	birthDateLayout = "2006-01-02"
)

var (
	emailRegexp = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	ssnRegexp   = regexp.MustCompile(`^[0-9]{9}$`)
	zipRegexp   = regexp.MustCompile(`^[0-9]{5}$`)
	phoneRegexp = regexp.MustCompile(`^[0-9]{10}$`)
)

// USStates lists the 50 two-letter state abbreviations accepted for address_state.
var USStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA",
	"RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// RuleViolation is returned by Rule.Validate when a candidate is rejected.
type RuleViolation struct {
	Rule    string
	Message string
	Err     error
}

func (v *RuleViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

func (v *RuleViolation) Unwrap() error { return v.Err }

// Rule is a pure format predicate for one kind of applicant field.
type Rule struct {
	Name      string
	normalize func(string) string
	rules     []validation.Rule
}

// Validate normalizes candidate and checks it. It either returns a value that
// satisfies the rule or a *RuleViolation, never both.
func (r Rule) Validate(candidate string) (string, error) {
	value := candidate
	if r.normalize != nil {
		value = r.normalize(value)
	}
	if err := validation.Validate(value, r.rules...); err != nil {
		return "", &RuleViolation{Rule: r.Name, Message: err.Error(), Err: err}
	}
	return value, nil
}

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func lettersOnly(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		for _, r := range s {
			if !unicode.IsLetter(r) {
				return errors.New(msg)
			}
		}
		return nil
	}
}

func stateValues() []interface{} {
	out := make([]interface{}, 0, len(USStates))
	for _, s := range USStates {
		out = append(out, s)
	}
	return out
}

var (
	NameRule = Rule{
		Name:      "name",
		normalize: strings.TrimSpace,
		rules: []validation.Rule{
			validation.Required.Error(msgName),
			validation.RuneLength(2, 0).Error(msgName),
			validation.By(lettersOnly(msgName)),
		},
	}

	StateRule = Rule{
		Name:      "state",
		normalize: upperTrim,
		rules: []validation.Rule{
			validation.Required.Error(msgState),
			validation.In(stateValues()...).Error(msgState),
		},
	}

	CountryRule = Rule{
		Name:      "country",
		normalize: upperTrim,
		rules: []validation.Rule{
			validation.Required.Error(msgCountry),
			validation.In(AcceptedCountry).Error(msgCountry),
		},
	}

	SSNRule = Rule{
		Name:      "ssn",
		normalize: strings.TrimSpace,
		rules: []validation.Rule{
			validation.Required.Error(msgSSN),
			validation.Match(ssnRegexp).Error(msgSSN),
		},
	}

	PostalCodeRule = Rule{
		Name:      "postal_code",
		normalize: strings.TrimSpace,
		rules: []validation.Rule{
			validation.Required.Error(msgPostalCode),
			validation.Match(zipRegexp).Error(msgPostalCode),
		},
	}

	PhoneRule = Rule{
		Name:      "phone",
		normalize: strings.TrimSpace,
		rules: []validation.Rule{
			validation.Required.Error(msgPhone),
			validation.Match(phoneRegexp).Error(msgPhone),
		},
	}

	EmailRule = Rule{
		Name:      "email",
		normalize: strings.TrimSpace,
		rules: []validation.Rule{
			validation.Required.Error(msgEmail),
			validation.Match(emailRegexp).Error(msgEmail),
		},
	}

	BirthDateRule = Rule{
		Name:      "birth_date",
		normalize: strings.TrimSpace,
		rules: []validation.Rule{
			validation.Required.Error(msgBirthDate),
			validation.Date(birthDateLayout).Error(msgBirthDate),
		},
	}

	// TextRule accepts any non-empty text after trimming.
	TextRule = Rule{
		Name:      "text",
		normalize: strings.TrimSpace,
		rules: []validation.Rule{
			validation.Required.Error(msgRequired),
		},
	}

	// OptionalTextRule accepts anything, including an empty answer.
	OptionalTextRule = Rule{
		Name:      "optional_text",
		normalize: strings.TrimSpace,
	}
)
