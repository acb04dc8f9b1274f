package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText_ComposesAccents(t *testing.T) {
	decomposed := "Co\u0302te d'Ivoire"
	composed := "C\u00f4te d'Ivoire"

	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, composed, NormalizeText(decomposed))
	assert.Equal(t, composed, NormalizeText(composed))
}

func TestNormalizeText_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Europe", NormalizeText("  Europe\t"))
}

func TestCountryNormalized_KeepsNilPointers(t *testing.T) {
	c := Country{Code: "US", Name: " United States "}.Normalized()
	assert.Equal(t, "United States", c.Name)
	assert.Nil(t, c.WikipediaLink)
	assert.Nil(t, c.Keywords)
}

func TestRegionNormalized_NormalizesNullableFields(t *testing.T) {
	r := Region{
		Code:      "FR-IDF",
		LocalCode: "IDF",
		Name:      "I\u0302le-de-France",
		Keywords:  Ptr(" Paris "),
	}.Normalized()

	assert.Equal(t, "\u00cele-de-France", r.Name)
	assert.Equal(t, "Paris", Deref(r.Keywords))
	assert.Nil(t, r.WikipediaLink)
}

func TestNormalized_KeepsCodesVerbatim(t *testing.T) {
	assert.Equal(t, " NA ", Continent{Code: " NA "}.Normalized().Code)
	assert.Equal(t, "US ", Country{Code: "US "}.Normalized().Code)

	r := Region{Code: " US-CA", LocalCode: "CA "}.Normalized()
	assert.Equal(t, " US-CA", r.Code)
	assert.Equal(t, "CA ", r.LocalCode)
}

func TestFilterNormalized(t *testing.T) {
	f := RegionFilter{Code: " US-CA", Name: "California"}.Normalized()
	assert.Equal(t, "US-CA", f.Code)
	assert.Equal(t, "California", f.Name)
	assert.Equal(t, "", f.LocalCode)
}

