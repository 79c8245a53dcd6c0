// Package export converts the currently visible offers into an external
// representation: a pretty-printed JSON array, or the same data wrapped in a
// fixed prompt template for handing to a language model. The serializer
// reads the same visibility predicate as the table, so an export always
// matches exactly what is on screen.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"prospekt/internal/catalog"
	"prospekt/internal/filter"
)

// Entry is the stable projection of one visible offer. Image URLs are
// deliberately not part of the export.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// Visible projects the visible subset of the catalog, in catalog order.
// An empty result is a valid export, not an error.
func Visible(c *catalog.Catalog, state *filter.State) []Entry {
	entries := make([]Entry, 0, len(c.Offers))
	for i := range c.Offers {
		offer := &c.Offers[i]
		if !state.IsVisible(offer) {
			continue
		}
		entries = append(entries, Entry{
			ID:          offer.ID,
			Title:       offer.Title,
			Category:    offer.Category.Name,
			Price:       offer.Price.String(),
			Description: offer.Description,
		})
	}
	return entries
}

// JSON serializes entries as a pretty-printed JSON array using the given
// indent width. No visible offers yields "[]".
func JSON(entries []Entry, indent int) (string, error) {
	data, err := json.MarshalIndent(entries, "", strings.Repeat(" ", indent))
	if err != nil {
		return "", fmt.Errorf("failed to serialize export: %w", err)
	}
	return string(data), nil
}

// Prompt wraps the entries in a fixed instruction template intended for a
// language model. The template tells the model how to reference offers and
// how to read the fields; the data itself is the same JSON array the plain
// export produces.
func Prompt(entries []Entry, indent int) (string, error) {
	data, err := JSON(entries, indent)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("The following JSON array lists the retail offers currently selected in a weekly offer catalog.\n")
	sb.WriteString("Each entry has these fields:\n")
	sb.WriteString("- id: opaque offer identifier. Always reference an offer by this id together with its title.\n")
	sb.WriteString("- title: the product name as printed in the catalog.\n")
	sb.WriteString("- category: the single category the offer belongs to.\n")
	sb.WriteString("- price: the offer price as a decimal number in EUR, without a currency symbol.\n")
	sb.WriteString("- description: free-text details such as package size or unit.\n")
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("There are %d offers.\n", len(entries)))
	sb.WriteString("\n")
	sb.WriteString("Offers:\n")
	sb.WriteString(data)
	sb.WriteString("\n")
	return sb.String(), nil
}
