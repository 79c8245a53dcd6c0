package catalog

import (
	"bytes"
	"encoding/json"

	"prospekt/internal/errors"
)

// flexID accepts a JSON string or number and keeps it as its textual form,
// so numeric snapshot ids ("id": 4711) and string ids ("id": "4711") load
// identically.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	// Numbers keep their verbatim token ("1", "1.5").
	*f = flexID(data)
	return nil
}

// rawOffer mirrors the snapshot's offer shape before normalization.
type rawOffer struct {
	ID          flexID   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Price       Price    `json:"price"`
	Description string   `json:"description"`
	Images      ImageSet `json:"images"`
}

// rawPayload mirrors the snapshot's top level. Offers stays raw so that a
// missing sequence and a malformed sequence can be told apart.
type rawPayload struct {
	ValidFrom  string          `json:"validFrom"`
	ValidTill  string          `json:"validTill"`
	TotalCount *int            `json:"totalCount"`
	National   *bool           `json:"national"`
	Offers     json.RawMessage `json:"offers"`
}

// Load turns a raw snapshot payload into a validated Catalog.
//
// The payload must be a JSON object with an offers array; anything else fails
// with a MalformedCatalogError. totalCount and national are optional and
// default to len(offers) and false. Load has no side effects; fetching the
// bytes is the source's job.
func Load(payload []byte) (*Catalog, error) {
	var raw rawPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, errors.NewMalformedCatalogError("payload is not a catalog object", err)
	}

	trimmed := bytes.TrimSpace(raw.Offers)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, errors.NewMalformedCatalogError("offers sequence is missing", errors.ErrNoOffers)
	}

	var rawOffers []rawOffer
	if err := json.Unmarshal(trimmed, &rawOffers); err != nil {
		return nil, errors.NewMalformedCatalogError("offers is not a sequence", err)
	}

	offers := make([]Offer, len(rawOffers))
	for i, ro := range rawOffers {
		offers[i] = Offer{
			ID:          string(ro.ID),
			Title:       ro.Title,
			Category:    ro.Category,
			Price:       ro.Price,
			Description: ro.Description,
			Images:      ro.Images,
		}
	}

	c := &Catalog{
		ValidFrom:  raw.ValidFrom,
		ValidTill:  raw.ValidTill,
		TotalCount: len(offers),
		Offers:     offers,
	}
	if raw.TotalCount != nil {
		c.TotalCount = *raw.TotalCount
	}
	if raw.National != nil {
		c.National = *raw.National
	}
	return c, nil
}
