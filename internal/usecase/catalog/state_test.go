package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendyhq/storefront/internal/domain"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Red Cap", Category: "Caps", Price: 5000},
		{ID: 2, Name: "Blue Cap", Category: "Caps", Price: 7000},
		{ID: 3, Name: "Black Hoodie", Category: "Hoodies", Price: 15000},
	}
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestNewState_IncludesWholeCatalog(t *testing.T) {
	state := NewState(testProducts(), 6)

	assert.Equal(t, []int64{1, 2, 3}, productIDs(state.FilteredItems))
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, "", state.SearchQuery)
	assert.Nil(t, state.SelectedCategory)
	assert.Equal(t, int64(0), state.PriceRange.Min)
	assert.Equal(t, int64(15000), state.PriceRange.Max)
}

func TestWithCategory_FiltersExactMatch(t *testing.T) {
	caps := "Caps"
	state := NewState(testProducts(), 6).WithCategory(&caps)

	assert.Equal(t, []int64{1, 2}, productIDs(state.FilteredItems))
}

func TestWithCategory_Nil_ShowsAllCategories(t *testing.T) {
	caps := "Caps"
	state := NewState(testProducts(), 6).WithCategory(&caps).WithCategory(nil)

	assert.Equal(t, []int64{1, 2, 3}, productIDs(state.FilteredItems))
}

func TestWithCategory_IsCaseSensitive(t *testing.T) {
	caps := "caps"
	state := NewState(testProducts(), 6).WithCategory(&caps)

	assert.Empty(t, state.FilteredItems)
}

func TestWithSearchQuery_MatchesNameCaseInsensitively(t *testing.T) {
	state := NewState(testProducts(), 6).WithSearchQuery("cAp")

	assert.Equal(t, []int64{1, 2}, productIDs(state.FilteredItems))
}

func TestWithSearchQuery_Whitespace_MatchesEverything(t *testing.T) {
	state := NewState(testProducts(), 6).WithSearchQuery("   ")

	assert.Equal(t, []int64{1, 2, 3}, productIDs(state.FilteredItems))
}

func TestWithPriceRange_InclusiveBounds(t *testing.T) {
	state := NewState(testProducts(), 6).WithPriceRange(5000, 7000)

	assert.Equal(t, []int64{1, 2}, productIDs(state.FilteredItems))
}

func TestFilters_Conjunction_PreservesOrder(t *testing.T) {
	caps := "Caps"
	state := NewState(testProducts(), 6).
		WithCategory(&caps).
		WithSearchQuery("cap").
		WithPriceRange(6000, 20000)

	// Only the Blue Cap satisfies all three clauses
	assert.Equal(t, []int64{2}, productIDs(state.FilteredItems))

	state = state.WithPriceRange(0, 20000)
	assert.Equal(t, []int64{1, 2}, productIDs(state.FilteredItems))
}

func TestFilterMutations_ResetCurrentPage(t *testing.T) {
	caps := "Caps"
	state := NewState(testProducts(), 1).WithPage(3)
	assert.Equal(t, 3, state.CurrentPage)

	assert.Equal(t, 1, state.WithSearchQuery("cap").CurrentPage)
	assert.Equal(t, 1, state.WithCategory(&caps).CurrentPage)
	assert.Equal(t, 1, state.WithPriceRange(0, 9000).CurrentPage)
}

func TestNextPage_AdvancesUntilLastPage(t *testing.T) {
	state := NewState(testProducts(), 2)
	assert.Equal(t, 2, state.TotalPages())

	state = state.NextPage()
	assert.Equal(t, 2, state.CurrentPage)

	// Already on the last page: no-op
	state = state.NextPage()
	assert.Equal(t, 2, state.CurrentPage)
}

func TestNextPage_EmptyFilteredView_IsNoOp(t *testing.T) {
	state := NewState(nil, 6)

	assert.Equal(t, 0, state.TotalPages())
	assert.Equal(t, 1, state.NextPage().CurrentPage)
}

func TestPaginatedItems_CumulativeReveal(t *testing.T) {
	products := make([]domain.Product, 0, 15)
	for i := int64(1); i <= 15; i++ {
		products = append(products, domain.Product{ID: i, Name: "Item", Category: "Misc", Price: 1000})
	}

	state := NewState(products, 6)

	// Page 1 reveals items 1-6
	assert.Len(t, state.PaginatedItems(), 6)

	// Page 2 reveals items 1-12, not 7-12
	state = state.NextPage()
	revealed := state.PaginatedItems()
	assert.Len(t, revealed, 12)
	assert.Equal(t, int64(1), revealed[0].ID)

	// Last page reveals everything
	state = state.NextPage()
	assert.Len(t, state.PaginatedItems(), 15)
}

func TestPaginatedItems_PrefixSupersetAfterNextPage(t *testing.T) {
	products := make([]domain.Product, 0, 10)
	for i := int64(1); i <= 10; i++ {
		products = append(products, domain.Product{ID: i, Name: "Item", Category: "Misc", Price: 1000})
	}

	state := NewState(products, 3)
	before := state.PaginatedItems()
	after := state.NextPage().PaginatedItems()

	assert.True(t, len(after) >= len(before))
	assert.Equal(t, before, after[:len(before)])
}

func TestPaginatedItems_OutOfRangePage_Degrades(t *testing.T) {
	state := NewState(testProducts(), 6)

	assert.Len(t, state.WithPage(99).PaginatedItems(), 3)
	assert.Empty(t, state.WithPage(0).PaginatedItems())
	assert.Empty(t, state.WithPage(-1).PaginatedItems())
}

func TestTransitions_DoNotMutateReceiver(t *testing.T) {
	caps := "Caps"
	state := NewState(testProducts(), 6)

	_ = state.WithCategory(&caps)
	_ = state.WithSearchQuery("hoodie")
	_ = state.NextPage()

	assert.Equal(t, []int64{1, 2, 3}, productIDs(state.FilteredItems))
	assert.Nil(t, state.SelectedCategory)
	assert.Equal(t, "", state.SearchQuery)
	assert.Equal(t, 1, state.CurrentPage)
}

func TestFilter_EmptyCatalog_DegradesToEmpty(t *testing.T) {
	state := NewState(nil, 6).WithSearchQuery("anything")

	assert.Empty(t, state.FilteredItems)
	assert.Empty(t, state.PaginatedItems())
	assert.Equal(t, 0, state.TotalPages())
}
