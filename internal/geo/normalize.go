package geo

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims surrounding whitespace and converts s to Unicode NFC.
//
// Names typed by users often arrive decomposed ("Côte") while the
// store holds the composed form ("Côte"). Both writes and search filters go
// through here so equality matches in SQL see a single spelling.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizePtr applies NormalizeText to a nullable value.
func normalizePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := NormalizeText(*p)
	return &v
}

// Normalized returns a copy of c with its text fields normalized. Codes
// are left as given so that validation sees exactly what was supplied.
func (c Continent) Normalized() Continent {
	c.Name = NormalizeText(c.Name)
	return c
}

// Normalized returns a copy of c with its text fields normalized.
func (c Country) Normalized() Country {
	c.Name = NormalizeText(c.Name)
	c.WikipediaLink = normalizePtr(c.WikipediaLink)
	c.Keywords = normalizePtr(c.Keywords)
	return c
}

// Normalized returns a copy of r with its text fields normalized.
func (r Region) Normalized() Region {
	r.Name = NormalizeText(r.Name)
	r.WikipediaLink = normalizePtr(r.WikipediaLink)
	r.Keywords = normalizePtr(r.Keywords)
	return r
}

// Normalized returns a copy of f with its values normalized.
func (f ContinentFilter) Normalized() ContinentFilter {
	f.Code = strings.TrimSpace(f.Code)
	f.Name = NormalizeText(f.Name)
	return f
}

// Normalized returns a copy of f with its values normalized.
func (f CountryFilter) Normalized() CountryFilter {
	f.Code = strings.TrimSpace(f.Code)
	f.Name = NormalizeText(f.Name)
	return f
}

// Normalized returns a copy of f with its values normalized.
func (f RegionFilter) Normalized() RegionFilter {
	f.Code = strings.TrimSpace(f.Code)
	f.LocalCode = strings.TrimSpace(f.LocalCode)
	f.Name = NormalizeText(f.Name)
	return f
}
