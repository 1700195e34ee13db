package applicant

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleAcceptance(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		input string
		want  string
	}{
		{"name simple", NameRule, "Jo", "Jo"},
		{"name trimmed", NameRule, "  Alice ", "Alice"},
		{"name unicode letters", NameRule, "José", "José"},
		{"email dotted", EmailRule, "a.b@example.com", "a.b@example.com"},
		{"email hyphen domain", EmailRule, "first-last@mail-host.co.uk", "first-last@mail-host.co.uk"},
		{"ssn", SSNRule, "123456789", "123456789"},
		{"ssn trimmed", SSNRule, " 123456789 ", "123456789"},
		{"state lower", StateRule, "ny", "NY"},
		{"state padded", StateRule, " wy ", "WY"},
		{"country lower", CountryRule, "us", "US"},
		{"zip", PostalCodeRule, "10001", "10001"},
		{"phone", PhoneRule, "2125550100", "2125550100"},
		{"birth date", BirthDateRule, "1990-02-28", "1990-02-28"},
		{"text", TextRule, "  1 Main St  ", "1 Main St"},
		{"optional empty", OptionalTextRule, "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Validate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleRejection(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		input   string
		message string
	}{
		{"name too short", NameRule, "J", msgName},
		{"name digits", NameRule, "J0hn", msgName},
		{"name space inside", NameRule, "Mary Ann", msgName},
		{"name empty", NameRule, "", msgName},
		{"email plain", EmailRule, "not-an-email", msgEmail},
		{"email no tld", EmailRule, "a@b", msgEmail},
		{"email trailing dot", EmailRule, "a@b.", msgEmail},
		{"ssn short", SSNRule, "12345", msgSSN},
		{"ssn letter", SSNRule, "12345678a", msgSSN},
		{"ssn dashes", SSNRule, "123-45-6789", msgSSN},
		{"ssn long", SSNRule, "1234567890", msgSSN},
		{"state unknown", StateRule, "ZZ", msgState},
		{"state dc", StateRule, "DC", msgState},
		{"state empty", StateRule, "", msgState},
		{"country other", CountryRule, "CA", msgCountry},
		{"country long", CountryRule, "USA", msgCountry},
		{"zip plus four", PostalCodeRule, "10001-1234", msgPostalCode},
		{"zip short", PostalCodeRule, "1000", msgPostalCode},
		{"phone dashes", PhoneRule, "212-555-0100", msgPhone},
		{"phone short", PhoneRule, "555010", msgPhone},
		{"birth date us order", BirthDateRule, "02/28/1990", msgBirthDate},
		{"birth date impossible", BirthDateRule, "1990-02-30", msgBirthDate},
		{"text empty", TextRule, "  ", msgRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Validate(tt.input)
			require.Error(t, err)
			assert.Empty(t, got)
			var violation *RuleViolation
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, tt.rule.Name, violation.Rule)
			assert.Equal(t, tt.message, violation.Message)
		})
	}
}

func TestStateListIsComplete(t *testing.T) {
	assert.Len(t, USStates, 50)
	seen := make(map[string]struct{}, len(USStates))
	for _, s := range USStates {
		_, dup := seen[s]
		assert.False(t, dup, "duplicate state %s", s)
		seen[s] = struct{}{}
		got, err := StateRule.Validate(strings.ToLower(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isName(s string) bool {
	if utf8.RuneCountInString(s) < 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isState(s string) bool {
	for _, st := range USStates {
		if st == s {
			return true
		}
	}
	return false
}

func isBirthDate(s string) bool {
	_, err := time.Parse(birthDateLayout, s)
	return err == nil
}

// Every accepted value must satisfy an independent restatement of the rule.
func TestRulesNeverReturnInvalidValues(t *testing.T) {
	gofakeit.Seed(42)
	oracles := map[string]struct {
		rule  Rule
		check func(string) bool
	}{
		"name":        {NameRule, isName},
		"state":       {StateRule, isState},
		"country":     {CountryRule, func(s string) bool { return s == AcceptedCountry }},
		"ssn":         {SSNRule, func(s string) bool { return allDigits(s, 9) }},
		"postal_code": {PostalCodeRule, func(s string) bool { return allDigits(s, 5) }},
		"phone":       {PhoneRule, func(s string) bool { return allDigits(s, 10) }},
		"email":       {EmailRule, emailRegexp.MatchString},
		"birth_date":  {BirthDateRule, isBirthDate},
	}

	candidates := func() []string {
		return []string{
			gofakeit.Numerify("#########"),
			gofakeit.Numerify("#####"),
			gofakeit.Numerify("##########"),
			gofakeit.Numerify("####-##"),
			gofakeit.LetterN(uint(gofakeit.Number(0, 4))),
			gofakeit.FirstName(),
			gofakeit.Email(),
			gofakeit.StateAbr(),
			gofakeit.Word() + gofakeit.Numerify("#"),
			gofakeit.Date().Format(birthDateLayout),
			" " + gofakeit.Numerify("#########") + " ",
			fmt.Sprintf("%s@%s", gofakeit.Word(), gofakeit.Word()),
		}
	}

	for i := 0; i < 200; i++ {
		for _, c := range candidates() {
			for name, o := range oracles {
				got, err := o.rule.Validate(c)
				if err != nil {
					continue
				}
				assert.True(t, o.check(got), "rule %s accepted %q as %q", name, c, got)
			}
		}
	}
}
