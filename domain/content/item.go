package content

import (
	"fmt"
	"math"
	"strings"
)

// Category is a content topic shared by items and consumer preferences
type Category string

const (
	CategoryPolitics      Category = "politics"
	CategorySport         Category = "sport"
	CategoryTech          Category = "tech"
	CategoryEntertainment Category = "entertainment"
	CategoryEconomy       Category = "economy"
)

// Categories is the fixed category set. Order matters: categorical draws
// index into it, so changing it changes every seeded run.
var Categories = []Category{
	CategoryPolitics,
	CategorySport,
	CategoryTech,
	CategoryEntertainment,
	CategoryEconomy,
}

// Title returns the category name with its first letter capitalized
func (c Category) Title() string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsValid reports whether c belongs to the fixed category set
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a string to a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Style is the writing style of an item or the style a consumer prefers
type Style string

const (
	StyleFormal   Style = "formal"
	StyleInformal Style = "informal"
)

// Styles is the fixed style set, in draw order
var Styles = []Style{StyleFormal, StyleInformal}

// IsValid reports whether s is a known style
func (s Style) IsValid() bool {
	return s == StyleFormal || s == StyleInformal
}

// Variant-B rewrite parameters
const (
	VariantBSuffix      = " [Short Informal Version]"
	VariantBTimeFactor  = 0.7
	VariantBMinimumTime = 1.0
)

// Item is one content unit. Values are never mutated after creation.
type Item struct {
	ID            int      `json:"id"`
	Category      Category `json:"category"`
	Headline      string   `json:"headline"`
	EstimatedTime float64  `json:"estimated_time"` // minutes, always > 0
	Style         Style    `json:"style"`
}

// TransformToVariantB derives the treatment version of a baseline item.
// The style only ever flips formal to informal; any other style is kept.
func TransformToVariantB(item Item) Item {
	style := item.Style
	if style == StyleFormal {
		style = StyleInformal
	}

	return Item{
		ID:            item.ID,
		Category:      item.Category,
		Headline:      item.Headline + VariantBSuffix,
		EstimatedTime: math.Max(VariantBMinimumTime, item.EstimatedTime*VariantBTimeFactor),
		Style:         style,
	}
}

// TransformAll applies TransformToVariantB to every item, preserving order and ids
func TransformAll(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = TransformToVariantB(item)
	}
	return out
}

// Headline returns the synthetic headline used for a category
func Headline(c Category) string {
	return fmt.Sprintf("Latest news on %s", c.Title())
}
