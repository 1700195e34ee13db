package applicant

// Attribute keys sent to the evaluation endpoint.
const (
	KeyFirstName   = "name_first"
	KeyLastName    = "name_last"
	KeyEmail       = "email_address"
	KeyPhone       = "phone_number"
	KeyAddress1    = "address_line_1"
	KeyAddress2    = "address_line_2"
	KeyCity        = "address_city"
	KeyState       = "address_state"
	KeyPostalCode  = "address_postal_code"
	KeyCountryCode = "address_country_code"
	KeySSN         = "document_ssn"
	KeyBirthDate   = "birth_date"
)

// Field binds an attribute key to its prompt label and format rule.
type Field struct {
	Key   string
	Label string
	Rule  Rule
}

var fields = []Field{
	{Key: KeyFirstName, Label: "First Name: ", Rule: NameRule},
	{Key: KeyLastName, Label: "Last Name: ", Rule: NameRule},
	{Key: KeyEmail, Label: "Email Address: ", Rule: EmailRule},
	{Key: KeyPhone, Label: "Phone Number (10 digits, no dashes or spaces): ", Rule: PhoneRule},
	{Key: KeyAddress1, Label: "Address Line 1: ", Rule: TextRule},
	{Key: KeyAddress2, Label: "Address Line 2 (optional): ", Rule: OptionalTextRule},
	{Key: KeyCity, Label: "City: ", Rule: TextRule},
	{Key: KeyState, Label: "State (2-letter code, e.g., NY): ", Rule: StateRule},
	{Key: KeyPostalCode, Label: "ZIP Code (5 digits): ", Rule: PostalCodeRule},
	{Key: KeyCountryCode, Label: "Country Code (must be 'US'): ", Rule: CountryRule},
	{Key: KeySSN, Label: "SSN (9 digits, no dashes): ", Rule: SSNRule},
	{Key: KeyBirthDate, Label: "Date of Birth (YYYY-MM-DD): ", Rule: BirthDateRule},
}

// Fields returns the applicant fields in collection order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldByKey looks up a field definition by its attribute key.
func FieldByKey(key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
