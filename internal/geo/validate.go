package geo

import (
	"fmt"
	"strings"
)

// WikipediaPrefix must appear in every non-empty wikipedia_link.
const WikipediaPrefix = "https://en.wikipedia.org/wiki/"

// Entity names used in validation messages.
const (
	EntityContinent = "continent"
	EntityCountry   = "country"
	EntityRegion    = "region"
)

// ValidationError reports a code or link that breaks its format rule.
type ValidationError struct {
	// Entity is one of EntityContinent, EntityCountry, EntityRegion.
	Entity string

	// Field is the column that failed (e.g. "continent_code").
	Field string

	// Message is the human-readable reason.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(entity, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Entity:  entity,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// isUpperLetter reports whether b is an ASCII uppercase letter.
func isUpperLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// isTwoLetterCode reports whether code is exactly two ASCII uppercase letters.
func isTwoLetterCode(code string) bool {
	return len(code) == 2 && isUpperLetter(code[0]) && isUpperLetter(code[1])
}

// ValidateContinentCode checks that code is two uppercase letters.
func ValidateContinentCode(code string) error {
	if !isTwoLetterCode(code) {
		return newValidationError(EntityContinent, "continent_code",
			"Invalid continent code %q (should be two capital letters)", code)
	}
	return nil
}

// ValidateCountryCode checks that code is two uppercase letters.
func ValidateCountryCode(code string) error {
	if !isTwoLetterCode(code) {
		return newValidationError(EntityCountry, "country_code",
			"Invalid country code %q (should be two capital letters)", code)
	}
	return nil
}

// ValidateWikipediaLink checks a nullable link. Nil and empty links pass.
func ValidateWikipediaLink(entity string, link *string) error {
	if link == nil || *link == "" {
		return nil
	}
	if !strings.Contains(*link, WikipediaPrefix) {
		return newValidationError(entity, "wikipedia_link",
			"Invalid web link %q (should contain %s)", *link, WikipediaPrefix)
	}
	return nil
}

// ValidateRegionCode checks the XX-YYY shape of regionCode and that the part
// after the dash equals localCode.
func ValidateRegionCode(regionCode, localCode string) error {
	if len(regionCode) < 4 || !isUpperLetter(regionCode[0]) || !isUpperLetter(regionCode[1]) || regionCode[2] != '-' {
		return newValidationError(EntityRegion, "region_code",
			"Invalid region code %q (should be two capital letters, a dash and a local code)", regionCode)
	}
	if regionCode[3:] != localCode {
		return newValidationError(EntityRegion, "local_code",
			"Invalid local code %q (should match %q, the part of the region code after the dash)",
			localCode, regionCode[3:])
	}
	return nil
}

// Validate checks every format rule of a continent about to be inserted.
func (c Continent) Validate() error {
	return ValidateContinentCode(c.Code)
}

// Validate checks every format rule of a country about to be inserted.
func (c Country) Validate() error {
	if err := ValidateCountryCode(c.Code); err != nil {
		return err
	}
	return ValidateWikipediaLink(EntityCountry, c.WikipediaLink)
}

// Validate checks every format rule of a region about to be inserted.
func (r Region) Validate() error {
	if err := ValidateRegionCode(r.Code, r.LocalCode); err != nil {
		return err
	}
	return ValidateWikipediaLink(EntityRegion, r.WikipediaLink)
}
