package export

import (
	"encoding/json"
	"strings"
	"testing"

	"prospekt/internal/catalog"
	"prospekt/internal/filter"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		ValidFrom: "2024-01-01",
		ValidTill: "2024-01-06",
		Offers: []catalog.Offer{
			{
				ID:          "1",
				Title:       "Apfel",
				Category:    catalog.Category{Name: "Obst"},
				Price:       catalog.Price{Value: 1.5},
				Description: "1 kg Beutel",
				Images:      catalog.ImageSet{"app": "https://img.test/1.jpg"},
			},
			{
				ID:          "2",
				Title:       "Wurst",
				Category:    catalog.Category{Name: "Fleisch & Wurst"},
				Price:       catalog.Price{Value: 3.0},
				Description: "je 400 g Packung",
				Images:      catalog.ImageSet{"app": "https://img.test/2.jpg"},
			},
		},
	}
}

func TestVisibleFullRoundTrip(t *testing.T) {
	// With no search term and no exclusions, the export holds exactly one
	// entry per offer, in catalog order.
	c := testCatalog()
	entries := Visible(c, filter.New(nil))

	if len(entries) != len(c.Offers) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(c.Offers))
	}
	for i, offer := range c.Offers {
		if entries[i].ID != offer.ID {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, offer.ID)
		}
	}
}

func TestVisibleAppliesDefaultExclusions(t *testing.T) {
	// Spec scenario: default exclusions leave only the Obst offer, exported
	// with string id and bare decimal price.
	entries := Visible(testCatalog(), filter.New([]string{"Fleisch & Wurst"}))

	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	want := Entry{ID: "1", Title: "Apfel", Category: "Obst", Price: "1.5", Description: "1 kg Beutel"}
	if entries[0] != want {
		t.Errorf("entries[0] = %+v, want %+v", entries[0], want)
	}
}

func TestVisibleEmptyIsNotAnError(t *testing.T) {
	state := filter.New(nil)
	state.SetSearchTerm("matches nothing at all")

	entries := Visible(testCatalog(), state)
	if entries == nil {
		t.Fatal("Visible() must return an empty slice, not nil")
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}

	out, err := JSON(entries, 2)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if out != "[]" {
		t.Errorf("JSON() = %q, want %q", out, "[]")
	}
}

func TestJSONExcludesImageFields(t *testing.T) {
	entries := Visible(testCatalog(), filter.New(nil))
	out, err := JSON(entries, 2)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	if strings.Contains(out, "img.test") || strings.Contains(out, "images") {
		t.Error("export must not contain image URLs")
	}
}

func TestJSONIsPrettyPrintedAndParseable(t *testing.T) {
	entries := Visible(testCatalog(), filter.New(nil))
	out, err := JSON(entries, 2)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	if !strings.Contains(out, "\n  ") {
		t.Error("JSON() should be indented")
	}

	var parsed []Entry
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(parsed) != 2 {
		t.Errorf("parsed %d entries, want 2", len(parsed))
	}
	if parsed[1].Price != "3" {
		t.Errorf("parsed[1].Price = %q, want %q", parsed[1].Price, "3")
	}
}

func TestPrompt(t *testing.T) {
	entries := Visible(testCatalog(), filter.New(nil))
	out, err := Prompt(entries, 2)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}

	// The template must explain how to reference offers and how to read
	// the projected fields.
	for _, fragment := range []string{
		"reference an offer by this id",
		"- title:",
		"- category:",
		"- price:",
		"- description:",
		"There are 2 offers.",
		`"title": "Apfel"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("Prompt() missing %q", fragment)
		}
	}
}

func TestPromptEmpty(t *testing.T) {
	out, err := Prompt([]Entry{}, 2)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if !strings.Contains(out, "There are 0 offers.") {
		t.Error("Prompt() should state the offer count even when empty")
	}
	if !strings.Contains(out, "[]") {
		t.Error("Prompt() should embed the empty array")
	}
}
