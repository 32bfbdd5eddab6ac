package dto_test

import (
	"net/http"
	"net/url"
	"testing"

	"basecamp/internal/domains/packages/model"
	"basecamp/internal/domains/packages/model/dto"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	gModel "basecamp/shared/model"
	"basecamp/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func catalogRequest(params map[string]string) *http.Request {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	return &http.Request{URL: &url.URL{RawQuery: values.Encode()}}
}

func TestCatalogQuery_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		expected dto.CatalogQuery
	}{
		{
			name:   "empty request uses defaults",
			params: map[string]string{},
			expected: dto.CatalogQuery{
				PageNumber: constant.DefaultValuePage,
				SortBy:     dto.SortCreatedDesc,
				MinPrice:   constant.CatalogMinPrice,
				MaxPrice:   constant.CatalogMaxPrice,
			},
		},
		{
			name: "all valid parameters",
			params: map[string]string{
				"pageNumber":  "3",
				"searchQuery": "everest",
				"sortBy":      dto.SortTitleAsc,
				"minPrice":    "1000",
				"maxPrice":    "5000",
				"duration":    "4-7",
				"difficulty":  "moderate",
			},
			expected: dto.CatalogQuery{
				PageNumber:  3,
				SearchQuery: "everest",
				SortBy:      dto.SortTitleAsc,
				MinPrice:    1000,
				MaxPrice:    5000,
				Duration:    "4-7",
				Difficulty:  "moderate",
			},
		},
		{
			name: "malformed values fall back to defaults",
			params: map[string]string{
				"pageNumber": "zero",
				"sortBy":     "price-sideways",
				"minPrice":   "-50",
				"maxPrice":   "lots",
				"duration":   "2-5",
			},
			expected: dto.CatalogQuery{
				PageNumber: constant.DefaultValuePage,
				SortBy:     dto.SortCreatedDesc,
				MinPrice:   constant.CatalogMinPrice,
				MaxPrice:   constant.CatalogMaxPrice,
			},
		},
		{
			name: "negative page falls back to first",
			params: map[string]string{
				"pageNumber": "-2",
			},
			expected: dto.CatalogQuery{
				PageNumber: constant.DefaultValuePage,
				SortBy:     dto.SortCreatedDesc,
				MinPrice:   constant.CatalogMinPrice,
				MaxPrice:   constant.CatalogMaxPrice,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := dto.CatalogQuery{}
			query.FromRequest(catalogRequest(tt.params))

			assert.Equal(t, tt.expected, query)
		})
	}
}

func TestCatalogQuery_ToQueryParams(t *testing.T) {
	tests := []struct {
		name            string
		query           dto.CatalogQuery
		expectedSortBy  string
		expectedSortDir string
	}{
		{
			name:            "title ascending",
			query:           dto.CatalogQuery{PageNumber: 2, SortBy: dto.SortTitleAsc},
			expectedSortBy:  "packages.name",
			expectedSortDir: gDto.SortDirAsc,
		},
		{
			name:            "newest first",
			query:           dto.CatalogQuery{PageNumber: 1, SortBy: dto.SortCreatedDesc},
			expectedSortBy:  "packages.created_at",
			expectedSortDir: gDto.SortDirDesc,
		},
		{
			name:            "unknown sort falls back to newest first",
			query:           dto.CatalogQuery{PageNumber: 1, SortBy: "bogus"},
			expectedSortBy:  "packages.created_at",
			expectedSortDir: gDto.SortDirDesc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.query.ToQueryParams()

			assert.Equal(t, tt.query.PageNumber, params.Page)
			assert.Equal(t, constant.CatalogPageSize, params.Limit)
			assert.Equal(t, tt.expectedSortBy, params.SortBy)
			assert.Equal(t, tt.expectedSortDir, params.SortDir)
			assert.Equal(t, "packages.id", params.TieBreak)
		})
	}
}

func TestCatalogQuery_ToFilterGroup(t *testing.T) {
	t.Run("price filter is always present", func(t *testing.T) {
		query := dto.CatalogQuery{MinPrice: 0, MaxPrice: 100000}

		group := query.ToFilterGroup()

		assert.Equal(t, gDto.FilterGroupOperatorAnd, group.Operator)
		assert.Len(t, group.Filters, 1)

		filter, ok := group.Filters[0].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, gDto.FilterPlainQuery, filter.Operator)
		assert.Equal(t, 0.0, filter.Args["min_price"])
		assert.Equal(t, 100000.0, filter.Args["max_price"])
	})

	t.Run("search adds a name filter", func(t *testing.T) {
		query := dto.CatalogQuery{SearchQuery: "annapurna", MaxPrice: 100000}

		group := query.ToFilterGroup()

		assert.Len(t, group.Filters, 2)

		nameFilter, ok := group.Filters[0].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, gDto.FilterOperatorLike, nameFilter.Operator)
		assert.Equal(t, "annapurna", nameFilter.Value)
	})

	t.Run("bounded duration bucket uses a range", func(t *testing.T) {
		query := dto.CatalogQuery{Duration: "8-14", MaxPrice: 100000}

		group := query.ToFilterGroup()

		assert.Len(t, group.Filters, 2)

		durationFilter, ok := group.Filters[1].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, gDto.FilterPlainQuery, durationFilter.Operator)
		assert.Equal(t, 8, durationFilter.Args["min_days"])
		assert.Equal(t, 14, durationFilter.Args["max_days"])
	})

	t.Run("open-ended duration bucket uses a lower bound", func(t *testing.T) {
		query := dto.CatalogQuery{Duration: "30+", MaxPrice: 100000}

		group := query.ToFilterGroup()

		assert.Len(t, group.Filters, 2)

		durationFilter, ok := group.Filters[1].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, gDto.FilterOperatorGreaterEq, durationFilter.Operator)
		assert.Equal(t, 31, durationFilter.Value)
	})

	t.Run("difficulty adds an equality filter", func(t *testing.T) {
		query := dto.CatalogQuery{Difficulty: "hard", MaxPrice: 100000}

		group := query.ToFilterGroup()

		assert.Len(t, group.Filters, 2)

		difficultyFilter, ok := group.Filters[1].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, gDto.FilterOperatorEq, difficultyFilter.Operator)
		assert.Equal(t, "hard", difficultyFilter.Value)
	})
}

func TestCreatePackageRequest_ToModel(t *testing.T) {
	discounted := 3999.0
	req := dto.CreatePackageRequest{
		Name:        "Everest Base Camp Trek",
		Description: "A classic.",
		Duration:    "12 Days",
		Difficulty:  "hard",
		Altitude:    "5364m",
		Inclusions:  "Guide, permits",
		Exclusions:  "Flights",
		Itinerary: []dto.ItineraryStepRequest{
			{Heading: "Day 1", Description: "Fly to Lukla"},
		},
		FAQs: []dto.FAQEntryRequest{
			{Question: "Is it safe?", Answer: "Yes, with acclimatization."},
		},
		Highlights: []dto.HighlightRequest{
			{Heading: "Kala Patthar", Description: "Sunrise view"},
		},
		BookingDates:    []string{"2026-03-15"},
		ThumbnailURL:    "https://cdn.example.com/ebc.jpg",
		GalleryURLs:     []string{"https://cdn.example.com/ebc-1.jpg"},
		Price:           4500,
		DiscountedPrice: &discounted,
	}

	userID := "test-user-id"
	pkg := req.ToModel(userID)

	assert.NotEmpty(t, pkg.ID, "expected ID to be generated")
	assert.Equal(t, req.Name, pkg.Name)
	assert.Equal(t, "everest-base-camp-trek", pkg.Slug)
	assert.NotNil(t, pkg.DurationDays)
	assert.Equal(t, 12, *pkg.DurationDays)
	assert.Equal(t, model.ItinerarySteps{{Heading: "Day 1", Description: "Fly to Lukla"}}, pkg.Itinerary)
	assert.Equal(t, model.FAQEntries{{Question: "Is it safe?", Answer: "Yes, with acclimatization."}}, pkg.FAQs)
	assert.Equal(t, model.Highlights{{Heading: "Kala Patthar", Description: "Sunrise view"}}, pkg.Highlights)
	assert.Equal(t, model.StringList{"2026-03-15"}, pkg.BookingDates)
	assert.Equal(t, model.StringList{"https://cdn.example.com/ebc-1.jpg"}, pkg.GalleryURLs)
	assert.Equal(t, req.Price, pkg.Price)
	assert.Equal(t, req.DiscountedPrice, pkg.DiscountedPrice)
	assert.Equal(t, userID, pkg.CreatedBy)
	assert.Equal(t, userID, pkg.ModifiedBy)
	assert.False(t, pkg.CreatedAt.IsZero(), "expected CreatedAt to be set")
	assert.False(t, pkg.ModifiedAt.IsZero(), "expected ModifiedAt to be set")
}

func TestCreatePackageRequest_ToModelEmptyCollections(t *testing.T) {
	req := dto.CreatePackageRequest{
		Name:  "Day Hike",
		Price: 100,
	}

	pkg := req.ToModel("test-user-id")

	assert.Nil(t, pkg.DurationDays)
	assert.NotNil(t, pkg.Itinerary)
	assert.Empty(t, pkg.Itinerary)
	assert.NotNil(t, pkg.BookingDates)
	assert.Empty(t, pkg.BookingDates)
	assert.NotNil(t, pkg.GalleryURLs)
	assert.Empty(t, pkg.GalleryURLs)
}

func TestPackageSummary_FromModel(t *testing.T) {
	discounted := 3999.0
	pkg := model.Package{
		ID:              "pkg-id",
		Name:            "Everest Base Camp Trek",
		Slug:            "everest-base-camp-trek",
		Duration:        "12 Days",
		Difficulty:      "hard",
		Altitude:        "5364m",
		ThumbnailURL:    "https://cdn.example.com/ebc.jpg",
		Price:           4500,
		DiscountedPrice: &discounted,
	}

	var summary dto.PackageSummary
	summary.FromModel(pkg)

	assert.Equal(t, pkg.ID, summary.ID)
	assert.Equal(t, pkg.Slug, summary.Slug)
	assert.Equal(t, pkg.Price, summary.Price)
	assert.Equal(t, discounted, summary.EffectivePrice)
}

func TestCatalogResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	models := []model.Package{
		{
			ID:    "pkg-1",
			Name:  "Trek One",
			Slug:  "trek-one",
			Price: 1200,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
		{
			ID:    "pkg-2",
			Name:  "Trek Two",
			Slug:  "trek-two",
			Price: 2400,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
	}

	var response dto.CatalogResponse
	response.FromModels(models, 1, constant.CatalogPageSize, 20)

	assert.Len(t, response.Packages, 2)
	assert.Equal(t, "trek-one", response.Packages[0].Slug)
	assert.Equal(t, 1, response.Pagination.CurrentPage)
	assert.Equal(t, 3, response.Pagination.TotalPages)
	assert.Equal(t, 20, response.Pagination.TotalItems)
	assert.True(t, response.Pagination.HasNextPage)
	assert.False(t, response.Pagination.HasPrevPage)
}
