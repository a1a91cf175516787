package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithharz/glotrade-ecom-sub001/internal/domain"
)

func TestCompileFilters_AlwaysPinsActiveStatus(t *testing.T) {
	q := CompileFilters(domain.SearchFilters{}, testIndex())

	assert.Equal(t, domain.ProductStatusActive, q.Status)
	assert.Empty(t, q.CategoryNames)
	assert.Nil(t, q.Brand)
	assert.Nil(t, q.Shipping)
}

func TestCompileFilters_CategorySubtreeBySlug(t *testing.T) {
	q := CompileFilters(domain.SearchFilters{Category: "electronics"}, testIndex())

	assert.Equal(t, []string{"Electronics", "Cameras", "Phones", "Lenses"}, q.CategoryNames)
}

func TestCompileFilters_CategoryByDisplayName(t *testing.T) {
	q := CompileFilters(domain.SearchFilters{Category: "Cameras"}, testIndex())

	assert.Equal(t, []string{"Cameras", "Lenses"}, q.CategoryNames)
}

func TestCompileFilters_UnknownCategoryKeptLiteral(t *testing.T) {
	q := CompileFilters(domain.SearchFilters{Category: "Vintage Radios"}, testIndex())

	assert.Equal(t, []string{"Vintage Radios"}, q.CategoryNames)
}

func TestCompileFilters_SellerIDNormalizedWhenUUID(t *testing.T) {
	q := CompileFilters(domain.SearchFilters{
		SellerID: "A4E8D7C2-1B3F-4A5E-9C8D-7B6A5F4E3D2C",
	}, testIndex())

	require.NotNil(t, q.SellerID)
	assert.Equal(t, "a4e8d7c2-1b3f-4a5e-9c8d-7b6a5f4e3d2c", *q.SellerID)
}

func TestCompileFilters_SellerIDKeptRawWhenNotUUID(t *testing.T) {
	q := CompileFilters(domain.SearchFilters{SellerID: "shop-42"}, testIndex())

	require.NotNil(t, q.SellerID)
	assert.Equal(t, "shop-42", *q.SellerID)
}

func TestCompileFilters_CreatedSinceDays(t *testing.T) {
	q := CompileFilters(domain.SearchFilters{CreatedSinceDays: 30}, testIndex())

	require.NotNil(t, q.CreatedAfter)
	expected := time.Now().UTC().AddDate(0, 0, -30)
	assert.WithinDuration(t, expected, *q.CreatedAfter, time.Minute)

	q = CompileFilters(domain.SearchFilters{CreatedSinceDays: 0}, testIndex())
	assert.Nil(t, q.CreatedAfter)
}

func TestCompileFilters_ShippingSharedSubMatch(t *testing.T) {
	eta := 3

	q := CompileFilters(domain.SearchFilters{FreeShipping: true}, testIndex())
	require.NotNil(t, q.Shipping)
	assert.True(t, q.Shipping.FreeOnly)
	assert.Nil(t, q.Shipping.MaxETADays)

	q = CompileFilters(domain.SearchFilters{ETAMaxDays: &eta}, testIndex())
	require.NotNil(t, q.Shipping)
	assert.False(t, q.Shipping.FreeOnly)
	require.NotNil(t, q.Shipping.MaxETADays)
	assert.Equal(t, 3, *q.Shipping.MaxETADays)

	q = CompileFilters(domain.SearchFilters{FreeShipping: true, ETAMaxDays: &eta}, testIndex())
	require.NotNil(t, q.Shipping)
	assert.True(t, q.Shipping.FreeOnly)
	require.NotNil(t, q.Shipping.MaxETADays)
}

func TestCompileFilters_VerifiedAndRatingNotCompiled(t *testing.T) {
	ratingMin := 4.0
	q := CompileFilters(domain.SearchFilters{
		VerifiedSeller: true,
		RatingMin:      &ratingMin,
	}, testIndex())

	// Both are page-level filters; the compiled query carries only status.
	assert.Equal(t, domain.ProductStatusActive, q.Status)
	assert.Nil(t, q.SellerID)
}

func TestCompileFilters_Passthrough(t *testing.T) {
	minPrice := int64(1000)
	maxPrice := int64(9000)
	discount := 20

	q := CompileFilters(domain.SearchFilters{
		Query:       "trail camera",
		Brand:       "Acme",
		Condition:   domain.ConditionUsed,
		Location:    "Berlin",
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		DiscountMin: &discount,
		Attributes:  map[string][]string{"color": {"green"}},
		SortBy:      domain.SortPriceAsc,
	}, testIndex())

	assert.Equal(t, "trail camera", q.Text)
	require.NotNil(t, q.Brand)
	assert.Equal(t, "Acme", *q.Brand)
	require.NotNil(t, q.Condition)
	assert.Equal(t, domain.ConditionUsed, *q.Condition)
	require.NotNil(t, q.Location)
	assert.Equal(t, "Berlin", *q.Location)
	assert.Equal(t, minPrice, *q.MinPrice)
	assert.Equal(t, maxPrice, *q.MaxPrice)
	assert.Equal(t, discount, *q.DiscountMin)
	assert.Equal(t, map[string][]string{"color": {"green"}}, q.Attributes)
	assert.Equal(t, domain.SortPriceAsc, q.SortBy)
}
