package query

import (
	"regexp"
	"strings"

	"github.com/corecraft/worldkit/world"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits and, for 11-digit numbers,
// a leading US/Canada country code. Empty input normalizes to "".
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	return digits
}

// Mismatch describes one identifier that did not match the customer record.
type Mismatch struct {
	Field    string `json:"field"`
	Provided string `json:"provided"`
	Message  string `json:"message"`
}

// Verification is the outcome of a customer identity check.
type Verification struct {
	Validated  bool       `json:"validated"`
	CustomerID string     `json:"customer_id"`
	Matches    []string   `json:"matches"`
	Mismatches []Mismatch `json:"mismatches"`
	Message    string     `json:"message"`
}

// IdentifierError reports that fewer than two identifiers were supplied.
type IdentifierError struct {
	Provided []string
}

func (e *IdentifierError) Error() string {
	return "at least 2 of the following must be provided: email, phone, zip_code"
}

func (e *IdentifierError) ErrorResult() map[string]any {
	return map[string]any{
		"error":                e.Error(),
		"provided_identifiers": e.Provided,
		"required_count":       2,
		"actual_count":         len(e.Provided),
	}
}

// VerifyCustomer checks the provided identifiers against the customer
// record. At least two of email, phone and zip code must be supplied; the
// identity validates only when every provided identifier matches. Phone
// numbers compare digit-normalized, zip codes compare against every address
// on file ignoring spaces and case.
func VerifyCustomer(w *world.World, customerID string, email, phone, zipCode *string) (*Verification, error) {
	var provided []string
	if email != nil {
		provided = append(provided, "email")
	}
	if phone != nil {
		provided = append(provided, "phone")
	}
	if zipCode != nil {
		provided = append(provided, "zip_code")
	}
	if len(provided) < 2 {
		return nil, &IdentifierError{Provided: provided}
	}

	customer, ok := w.Get("customer", customerID)
	if !ok {
		return nil, &world.NotFoundError{Kind: "customer", ID: customerID}
	}

	v := &Verification{
		CustomerID: customerID,
		Matches:    []string{},
		Mismatches: []Mismatch{},
	}

	if email != nil {
		onFile, _ := customer["email"].(string)
		if strings.EqualFold(onFile, *email) {
			v.Matches = append(v.Matches, "email")
		} else {
			v.Mismatches = append(v.Mismatches, Mismatch{
				Field: "email", Provided: *email,
				Message: "Email does not match customer record",
			})
		}
	}
	if phone != nil {
		onFile, _ := customer["phone"].(string)
		normOnFile, normProvided := NormalizePhone(onFile), NormalizePhone(*phone)
		if normOnFile != "" && normProvided != "" && normOnFile == normProvided {
			v.Matches = append(v.Matches, "phone")
		} else {
			v.Mismatches = append(v.Mismatches, Mismatch{
				Field: "phone", Provided: *phone,
				Message: "Phone number does not match customer record",
			})
		}
	}
	if zipCode != nil {
		if zipMatches(customer, *zipCode) {
			v.Matches = append(v.Matches, "zip_code")
		} else {
			v.Mismatches = append(v.Mismatches, Mismatch{
				Field: "zip_code", Provided: *zipCode,
				Message: "Zip code does not match any customer address",
			})
		}
	}

	if len(v.Mismatches) > 0 {
		v.Validated = false
		v.Message = "One or more identifiers do not match the customer record"
		return v, nil
	}
	v.Validated = true
	v.Message = "Customer identity verified"
	return v, nil
}

func zipMatches(customer world.Entity, zip string) bool {
	want := strings.ToUpper(strings.ReplaceAll(zip, " ", ""))
	addresses, _ := customer["addresses"].([]any)
	for _, a := range addresses {
		addr, ok := a.(map[string]any)
		if !ok {
			continue
		}
		postal, _ := addr["postalCode"].(string)
		if strings.ToUpper(strings.ReplaceAll(postal, " ", "")) == want {
			return true
		}
	}
	return false
}
