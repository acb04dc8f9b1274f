package geo

// Continent is a row of the continent table.
type Continent struct {
	ID   int64  `db:"continent_id" json:"continent_id" yaml:"continent_id"`
	Code string `db:"continent_code" json:"continent_code" yaml:"continent_code"`
	Name string `db:"name" json:"name" yaml:"name"`
}

// Country is a row of the country table.
//
// WikipediaLink and Keywords are nullable columns. A nil pointer means NULL
// when read, and "leave unchanged" when used as an edit.
type Country struct {
	ID            int64   `db:"country_id" json:"country_id" yaml:"country_id"`
	Code          string  `db:"country_code" json:"country_code" yaml:"country_code"`
	Name          string  `db:"name" json:"name" yaml:"name"`
	ContinentID   int64   `db:"continent_id" json:"continent_id" yaml:"continent_id"`
	WikipediaLink *string `db:"wikipedia_link" json:"wikipedia_link,omitempty" yaml:"wikipedia_link,omitempty"`
	Keywords      *string `db:"keywords" json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Region is a row of the region table.
type Region struct {
	ID            int64   `db:"region_id" json:"region_id" yaml:"region_id"`
	Code          string  `db:"region_code" json:"region_code" yaml:"region_code"`
	LocalCode     string  `db:"local_code" json:"local_code" yaml:"local_code"`
	Name          string  `db:"name" json:"name" yaml:"name"`
	ContinentID   int64   `db:"continent_id" json:"continent_id" yaml:"continent_id"`
	CountryID     int64   `db:"country_id" json:"country_id" yaml:"country_id"`
	WikipediaLink *string `db:"wikipedia_link" json:"wikipedia_link,omitempty" yaml:"wikipedia_link,omitempty"`
	Keywords      *string `db:"keywords" json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// ContinentFilter selects continents by equality on its non-empty fields.
type ContinentFilter struct {
	Code string `json:"continent_code,omitempty" yaml:"continent_code,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// CountryFilter selects countries by equality on its non-empty fields.
type CountryFilter struct {
	Code string `json:"country_code,omitempty" yaml:"country_code,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RegionFilter selects regions by equality on its non-empty fields.
type RegionFilter struct {
	Code      string `json:"region_code,omitempty" yaml:"region_code,omitempty"`
	LocalCode string `json:"local_code,omitempty" yaml:"local_code,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Ptr returns a pointer to s. Convenient for the nullable text columns.
func Ptr(s string) *string {
	return &s
}

// Deref returns the value of p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
