package dto

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"basecamp/internal/domains/packages/model"
	"basecamp/shared"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	gModel "basecamp/shared/model"
	"basecamp/shared/timezone"
)

const (
	SortTitleAsc    = "title-asc"
	SortTitleDesc   = "title-desc"
	SortCreatedAsc  = "created-asc"
	SortCreatedDesc = "created-desc"
)

type sortOrder struct {
	column    string
	direction string
}

var catalogSortOrders = map[string]sortOrder{
	SortTitleAsc:    {column: model.TableName + "." + model.FieldName, direction: gDto.SortDirAsc},
	SortTitleDesc:   {column: model.TableName + "." + model.FieldName, direction: gDto.SortDirDesc},
	SortCreatedAsc:  {column: model.TableName + "." + model.FieldCreatedAt, direction: gDto.SortDirAsc},
	SortCreatedDesc: {column: model.TableName + "." + model.FieldCreatedAt, direction: gDto.SortDirDesc},
}

// CatalogQuery is the public catalog's filter/sort/paging parameter set.
type CatalogQuery struct {
	PageNumber  int     `json:"pageNumber"`
	SearchQuery string  `json:"searchQuery"`
	SortBy      string  `json:"sortBy"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	Duration    string  `json:"duration"`
	Difficulty  string  `json:"difficulty"`
}

// FromRequest fills the query from URL parameters. Malformed values fall
// back to their defaults instead of being rejected: a bad page number is
// page 1, bad price bounds are the full range, an unknown sort or duration
// bucket is ignored. Invalid input defaults rather than errors.
func (q *CatalogQuery) FromRequest(r *http.Request) {
	params := r.URL.Query()

	q.PageNumber = constant.DefaultValuePage
	if page, err := strconv.Atoi(params.Get(constant.RequestParamPageNumber)); err == nil && page > 0 {
		q.PageNumber = page
	}

	q.SearchQuery = params.Get(constant.RequestParamSearchQuery)

	q.SortBy = SortCreatedDesc
	if _, known := catalogSortOrders[params.Get(constant.RequestParamCatalogSort)]; known {
		q.SortBy = params.Get(constant.RequestParamCatalogSort)
	}

	q.MinPrice = constant.CatalogMinPrice
	if minPrice, err := strconv.ParseFloat(params.Get(constant.RequestParamMinPrice), 64); err == nil && minPrice >= 0 {
		q.MinPrice = minPrice
	}

	q.MaxPrice = constant.CatalogMaxPrice
	if maxPrice, err := strconv.ParseFloat(params.Get(constant.RequestParamMaxPrice), 64); err == nil && maxPrice >= 0 {
		q.MaxPrice = maxPrice
	}

	if _, known := model.BucketByLabel(params.Get(constant.RequestParamDuration)); known {
		q.Duration = params.Get(constant.RequestParamDuration)
	}

	q.Difficulty = params.Get(constant.RequestParamDifficulty)
}

// ToQueryParams maps the catalog sort enum onto the repository's ordering,
// always tie-breaking by id so the order is total and repeatable.
func (q *CatalogQuery) ToQueryParams() gDto.QueryParams {
	order := catalogSortOrders[q.SortBy]
	if order.column == "" {
		order = catalogSortOrders[SortCreatedDesc]
	}

	return gDto.QueryParams{
		Page:     q.PageNumber,
		Limit:    constant.CatalogPageSize,
		SortBy:   order.column,
		SortDir:  order.direction,
		TieBreak: model.TableName + "." + model.FieldID,
	}
}

// ToFilterGroup builds the WHERE clause terms. The effective price is
// LEAST(discounted-or-base, base), so a discounted price above the base
// price never widens eligibility. Rows whose duration never parsed have
// NULL duration_days and drop out of any bucket comparison on their own.
func (q *CatalogQuery) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if q.SearchQuery != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    q.SearchQuery,
			Table:    model.TableName,
		})
	}

	group.Filters = append(group.Filters, gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    "LEAST(COALESCE(packages.discounted_price, packages.price), packages.price) BETWEEN :min_price AND :max_price",
		Args: map[string]any{
			"min_price": q.MinPrice,
			"max_price": q.MaxPrice,
		},
	})

	if bucket, ok := model.BucketByLabel(q.Duration); ok {
		if bucket.MaxDays > 0 {
			group.Filters = append(group.Filters, gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    "packages.duration_days BETWEEN :min_days AND :max_days",
				Args: map[string]any{
					"min_days": bucket.MinDays,
					"max_days": bucket.MaxDays,
				},
			})
		} else {
			group.Filters = append(group.Filters, gDto.Filter{
				ArgName:  "min_days",
				Field:    model.FieldDurationDays,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    bucket.MinDays,
				Table:    model.TableName,
			})
		}
	}

	if q.Difficulty != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldDifficulty,
			Operator: gDto.FilterOperatorEq,
			Value:    q.Difficulty,
			Table:    model.TableName,
		})
	}

	return group
}

type ItineraryStepRequest struct {
	Heading     string `json:"heading"     validate:"required"`
	Description string `json:"description"`
}

type FAQEntryRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

type HighlightRequest struct {
	Heading     string `json:"heading"     validate:"required"`
	Description string `json:"description"`
}

type CreatePackageRequest struct {
	Name            string                 `json:"name"             validate:"required,min=3,max=150"`
	Description     string                 `json:"description"`
	Duration        string                 `json:"duration"`
	Difficulty      string                 `json:"difficulty"`
	Altitude        string                 `json:"altitude"`
	Inclusions      string                 `json:"inclusions"`
	Exclusions      string                 `json:"exclusions"`
	Itinerary       []ItineraryStepRequest `json:"itinerary"        validate:"omitempty,dive"`
	FAQs            []FAQEntryRequest      `json:"faqs"             validate:"omitempty,dive"`
	Highlights      []HighlightRequest     `json:"highlights"       validate:"omitempty,dive"`
	BookingDates    []string               `json:"booking_dates"    validate:"omitempty,dive,datetime=2006-01-02"`
	ThumbnailURL    string                 `json:"thumbnail_url"    validate:"omitempty,url"`
	GalleryURLs     []string               `json:"gallery_urls"     validate:"omitempty,dive,url"`
	Price           float64                `json:"price"            validate:"required,gt=0"`
	DiscountedPrice *float64               `json:"discounted_price" validate:"omitempty"`
}

func (c *CreatePackageRequest) ToModel(user string) model.Package {
	pkg := model.Package{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Slug:            shared.Slugify(c.Name),
		Description:     c.Description,
		Duration:        c.Duration,
		DurationDays:    model.ParseDurationDays(c.Duration),
		Difficulty:      c.Difficulty,
		Altitude:        c.Altitude,
		Inclusions:      c.Inclusions,
		Exclusions:      c.Exclusions,
		BookingDates:    model.StringList(c.BookingDates),
		ThumbnailURL:    c.ThumbnailURL,
		GalleryURLs:     model.StringList(c.GalleryURLs),
		Price:           c.Price,
		DiscountedPrice: c.DiscountedPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	pkg.Itinerary = make(model.ItinerarySteps, len(c.Itinerary))
	for i, step := range c.Itinerary {
		pkg.Itinerary[i] = model.ItineraryStep{Heading: step.Heading, Description: step.Description}
	}

	pkg.FAQs = make(model.FAQEntries, len(c.FAQs))
	for i, entry := range c.FAQs {
		pkg.FAQs[i] = model.FAQEntry{Question: entry.Question, Answer: entry.Answer}
	}

	pkg.Highlights = make(model.Highlights, len(c.Highlights))
	for i, highlight := range c.Highlights {
		pkg.Highlights[i] = model.Highlight{Heading: highlight.Heading, Description: highlight.Description}
	}

	if pkg.BookingDates == nil {
		pkg.BookingDates = model.StringList{}
	}

	if pkg.GalleryURLs == nil {
		pkg.GalleryURLs = model.StringList{}
	}

	return pkg
}

type UpdatePackageRequest struct {
	Name            string                 `db:"name"             json:"name"             validate:"omitempty,min=3,max=150"`
	Description     string                 `db:"description"      json:"description"      validate:"omitempty"`
	Duration        string                 `db:"duration"         json:"duration"         validate:"omitempty"`
	Difficulty      string                 `db:"difficulty"       json:"difficulty"       validate:"omitempty"`
	Altitude        string                 `db:"altitude"         json:"altitude"         validate:"omitempty"`
	Inclusions      string                 `db:"inclusions"       json:"inclusions"       validate:"omitempty"`
	Exclusions      string                 `db:"exclusions"       json:"exclusions"       validate:"omitempty"`
	Itinerary       []ItineraryStepRequest `db:"-"                json:"itinerary"        validate:"omitempty,dive"`
	FAQs            []FAQEntryRequest      `db:"-"                json:"faqs"             validate:"omitempty,dive"`
	Highlights      []HighlightRequest     `db:"-"                json:"highlights"       validate:"omitempty,dive"`
	BookingDates    []string               `db:"-"                json:"booking_dates"    validate:"omitempty,dive,datetime=2006-01-02"`
	ThumbnailURL    string                 `db:"thumbnail_url"    json:"thumbnail_url"    validate:"omitempty,url"`
	GalleryURLs     []string               `db:"-"                json:"gallery_urls"     validate:"omitempty,dive,url"`
	Price           float64                `db:"price"            json:"price"            validate:"omitempty,gt=0"`
	DiscountedPrice *float64               `db:"discounted_price" json:"discounted_price" validate:"omitempty"`
}

type PackageSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Duration        string   `json:"duration"`
	Difficulty      string   `json:"difficulty"`
	Altitude        string   `json:"altitude"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
	EffectivePrice  float64  `json:"effective_price"`
}

func (s *PackageSummary) FromModel(model model.Package) {
	s.ID = model.ID
	s.Name = model.Name
	s.Slug = model.Slug
	s.Duration = model.Duration
	s.Difficulty = model.Difficulty
	s.Altitude = model.Altitude
	s.ThumbnailURL = model.ThumbnailURL
	s.Price = model.Price
	s.DiscountedPrice = model.DiscountedPrice
	s.EffectivePrice = model.EffectivePrice()
}

type PackageResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Slug            string                `json:"slug"`
	Description     string                `json:"description"`
	Duration        string                `json:"duration"`
	DurationDays    *int                  `json:"duration_days,omitempty"`
	Difficulty      string                `json:"difficulty"`
	Altitude        string                `json:"altitude"`
	Inclusions      string                `json:"inclusions"`
	Exclusions      string                `json:"exclusions"`
	Itinerary       model.ItinerarySteps  `json:"itinerary"`
	FAQs            model.FAQEntries      `json:"faqs"`
	Highlights      model.Highlights      `json:"highlights"`
	BookingDates    model.StringList      `json:"booking_dates"`
	ThumbnailURL    string                `json:"thumbnail_url"`
	GalleryURLs     model.StringList      `json:"gallery_urls"`
	DocumentURL     string                `json:"document_url,omitempty"`
	Price           float64               `json:"price"`
	DiscountedPrice *float64              `json:"discounted_price,omitempty"`
	EffectivePrice  float64               `json:"effective_price"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Name = model.Name
	r.Slug = model.Slug
	r.Description = model.Description
	r.Duration = model.Duration
	r.DurationDays = model.DurationDays
	r.Difficulty = model.Difficulty
	r.Altitude = model.Altitude
	r.Inclusions = model.Inclusions
	r.Exclusions = model.Exclusions
	r.Itinerary = model.Itinerary
	r.FAQs = model.FAQs
	r.Highlights = model.Highlights
	r.BookingDates = model.BookingDates
	r.ThumbnailURL = model.ThumbnailURL
	r.GalleryURLs = model.GalleryURLs
	r.DocumentURL = model.DocumentURL
	r.Price = model.Price
	r.DiscountedPrice = model.DiscountedPrice
	r.EffectivePrice = model.EffectivePrice()
	r.Metadata.FromModel(model.Metadata)
}

type CatalogResponse struct {
	Packages   []PackageSummary `json:"packages"`
	Pagination gDto.Pagination  `json:"pagination"`
}

func (r *CatalogResponse) FromModels(models []model.Package, page, limit, totalItems int) {
	r.Packages = make([]PackageSummary, len(models))
	for i, m := range models {
		r.Packages[i].FromModel(m)
	}

	r.Pagination.FromCounts(page, limit, totalItems)
}

type GetPackagesResponse struct {
	Packages   []PackageResponse `json:"packages"`
	Pagination gDto.Pagination   `json:"pagination"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, page, limit, totalItems int) {
	r.Packages = make([]PackageResponse, len(models))
	for i, m := range models {
		r.Packages[i].FromModel(m)
	}

	r.Pagination.FromCounts(page, limit, totalItems)
}

type AttachDocumentResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
