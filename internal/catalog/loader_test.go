package catalog

import (
	"testing"

	"prospekt/internal/errors"
)

const sampleSnapshot = `{
	"validFrom": "2024-01-01",
	"validTill": "2024-01-06",
	"totalCount": 2,
	"national": false,
	"offers": [
		{
			"id": 1,
			"title": "Apfel",
			"category": {"name": "Obst"},
			"price": {"value": 1.5},
			"description": "1 kg Beutel",
			"images": {"app": "https://img.test/1-app.jpg", "original": "https://img.test/1.jpg"}
		},
		{
			"id": "2",
			"title": "Wurst",
			"category": {"name": "Fleisch & Wurst"},
			"price": {"value": 3},
			"description": "je 400 g Packung",
			"images": {"app": "https://img.test/2-app.jpg"}
		}
	]
}`

func TestLoad(t *testing.T) {
	c, err := Load([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.ValidFrom != "2024-01-01" || c.ValidTill != "2024-01-06" {
		t.Errorf("validity = %q - %q", c.ValidFrom, c.ValidTill)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.National {
		t.Error("National should be false")
	}

	first := c.Offers[0]
	if first.ID != "1" {
		t.Errorf("numeric id should normalize to %q, got %q", "1", first.ID)
	}
	if first.Title != "Apfel" || first.Category.Name != "Obst" {
		t.Errorf("first offer = %+v", first)
	}
	if first.Price.Value != 1.5 {
		t.Errorf("Price.Value = %v, want 1.5", first.Price.Value)
	}

	if c.Offers[1].ID != "2" {
		t.Errorf("string id should load verbatim, got %q", c.Offers[1].ID)
	}
}

func TestLoadPreservesOfferOrder(t *testing.T) {
	c, err := Load([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Offers[0].Title != "Apfel" || c.Offers[1].Title != "Wurst" {
		t.Error("offers must keep snapshot order")
	}
}

func TestLoadDefaultsOptionalFields(t *testing.T) {
	c, err := Load([]byte(`{"offers": [{"id": 7, "title": "Milch"}]}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.TotalCount != 1 {
		t.Errorf("missing totalCount should default to len(offers), got %d", c.TotalCount)
	}
	if c.National {
		t.Error("missing national should default to false")
	}
}

func TestLoadKeepsClaimedTotalCount(t *testing.T) {
	// A snapshot may claim a count that disagrees with the sequence; the
	// claim is kept as-is but len(Offers) stays authoritative.
	c, err := Load([]byte(`{"totalCount": 99, "offers": [{"id": 1}]}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.TotalCount != 99 {
		t.Errorf("TotalCount = %d, want 99", c.TotalCount)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLoadRejectsMissingOffers(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no offers key", `{"validFrom": "2024-01-01"}`},
		{"null offers", `{"offers": null}`},
		{"offers is an object", `{"offers": {"id": 1}}`},
		{"offers is a string", `{"offers": "none"}`},
		{"not an object", `[1, 2, 3]`},
		{"not JSON", `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.payload))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !errors.IsMalformedCatalog(err) {
				t.Errorf("error should be a MalformedCatalogError, got %v", err)
			}
		})
	}
}

func TestLoadEmptyOffers(t *testing.T) {
	// An empty sequence is a valid (if useless) catalog, not an error.
	c, err := Load([]byte(`{"offers": []}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLoadNullID(t *testing.T) {
	c, err := Load([]byte(`{"offers": [{"id": null, "title": "x"}]}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Offers[0].ID != "" {
		t.Errorf("null id should load as empty string, got %q", c.Offers[0].ID)
	}
}
