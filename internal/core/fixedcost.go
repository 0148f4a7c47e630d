package core

import (
	"regexp"
	"strings"
)

// FixedCost is a recurring monthly obligation: either a flat amount or a
// named group of sub-items (the "Streaming" bundle). Exactly one of the
// two shapes is populated; Items being non-nil marks the group variant.
type FixedCost struct {
	Amount Money
	Items  []FixedCostItem
}

// FixedCostItem is one entry inside a grouped fixed cost.
type FixedCostItem struct {
	Name   string
	Amount Money
}

// IsGroup reports whether the cost is the grouped variant.
func (f FixedCost) IsGroup() bool {
	return f.Items != nil
}

const streamingLabel = "Streaming"

// ParseFixedCosts reads one "label: amount" pair per line. A label
// matching "Streaming" (case-insensitive) instead parses a
// "Name (amount), Name (amount)" list into a grouped cost. Malformed
// lines are skipped without reporting; the bot has always been lenient
// here and callers rely on partial input going through.
func ParseFixedCosts(text string) map[string]FixedCost {
	costs := make(map[string]FixedCost)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = Capitalize(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		rest = strings.TrimSpace(rest)
		if strings.EqualFold(label, streamingLabel) {
			if items := parseStreamingItems(rest); len(items) > 0 {
				costs[streamingLabel] = FixedCost{Items: items}
			}
			continue
		}
		cents, err := ParseAmountToCents(rest)
		if err != nil {
			continue
		}
		costs[label] = FixedCost{Amount: Money{Cents: cents}}
	}
	return costs
}

// streamingItemRe matches one "Name (amount)" item. Splitting on commas
// would break amounts written with a decimal comma, so the whole list is
// scanned instead.
var streamingItemRe = regexp.MustCompile(`([^,()]+)\(([^)]*)\)`)

// parseStreamingItems parses the "Netflix (39,90), Spotify (21,90)"
// sub-syntax. Items that don't match the shape are skipped.
func parseStreamingItems(s string) []FixedCostItem {
	var items []FixedCostItem
	for _, m := range streamingItemRe.FindAllStringSubmatch(s, -1) {
		name := Capitalize(strings.TrimSpace(m[1]))
		if name == "" {
			continue
		}
		cents, err := ParseAmountToCents(m[2])
		if err != nil {
			continue
		}
		items = append(items, FixedCostItem{Name: name, Amount: Money{Cents: cents}})
	}
	return items
}
