package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"basecamp/shared/model"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID              = "id"
	FieldName            = "name"
	FieldSlug            = "slug"
	FieldDescription     = "description"
	FieldDuration        = "duration"
	FieldDurationDays    = "duration_days"
	FieldDifficulty      = "difficulty"
	FieldAltitude        = "altitude"
	FieldPrice           = "price"
	FieldDiscountedPrice = "discounted_price"
	FieldDocumentKey     = "document_key"
	FieldCreatedAt       = "created_at"
)

// ItineraryStep is one day-by-day entry of a package's plan.
type ItineraryStep struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
}

// FAQEntry is one question/answer pair attached to a package.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Highlight is one "why choose us" entry.
type Highlight struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
}

// The sub-document sequences are stored as single JSONB columns rather
// than normalized tables; order within the array is the display order.
type (
	ItinerarySteps []ItineraryStep
	FAQEntries     []FAQEntry
	Highlights     []Highlight
	StringList     []string
)

func jsonbValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb column: %w", err)
	}

	return data, nil
}

func jsonbScan(src, dst any) error {
	switch data := src.(type) {
	case []byte:
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("failed to unmarshal jsonb column: %w", err)
		}

		return nil
	case string:
		if err := json.Unmarshal([]byte(data), dst); err != nil {
			return fmt.Errorf("failed to unmarshal jsonb column: %w", err)
		}

		return nil
	case nil:
		return nil
	default:
		return errors.New("unsupported source type for jsonb column")
	}
}

func (s ItinerarySteps) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *ItinerarySteps) Scan(src any) error          { return jsonbScan(src, s) }

func (f FAQEntries) Value() (driver.Value, error) { return jsonbValue(f) }
func (f *FAQEntries) Scan(src any) error          { return jsonbScan(src, f) }

func (h Highlights) Value() (driver.Value, error) { return jsonbValue(h) }
func (h *Highlights) Scan(src any) error          { return jsonbScan(src, h) }

func (l StringList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *StringList) Scan(src any) error          { return jsonbScan(src, l) }

type Package struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Slug            string         `db:"slug"`
	Description     string         `db:"description"`
	Duration        string         `db:"duration"`
	DurationDays    *int           `db:"duration_days"`
	Difficulty      string         `db:"difficulty"`
	Altitude        string         `db:"altitude"`
	Inclusions      string         `db:"inclusions"`
	Exclusions      string         `db:"exclusions"`
	Itinerary       ItinerarySteps `db:"itinerary"`
	FAQs            FAQEntries     `db:"faqs"`
	Highlights      Highlights     `db:"highlights"`
	BookingDates    StringList     `db:"booking_dates"`
	ThumbnailURL    string         `db:"thumbnail_url"`
	GalleryURLs     StringList     `db:"gallery_urls"`
	DocumentURL     string         `db:"document_url"`
	DocumentKey     string         `db:"document_key"`
	Price           float64        `db:"price"`
	DiscountedPrice *float64       `db:"discounted_price"`
	model.Metadata
}

// EffectivePrice is the value all price filtering and display use: the
// discounted price when it is present and lower, otherwise the base price.
func (p *Package) EffectivePrice() float64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice < p.Price {
		return *p.DiscountedPrice
	}

	return p.Price
}
