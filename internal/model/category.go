package model

// Category classifies a schedule item. The set is closed; anything
// unrecognized at the boundary becomes CategoryOther.
type Category string

const (
	CategorySchool  Category = "school"
	CategoryDaycare Category = "daycare"
	CategorySports  Category = "sports"
	CategoryHealth  Category = "health"
	CategoryChore   Category = "chore"
	CategoryOther   Category = "other"
)

// categoryIcons is the single category→glyph table. Every place that needs
// an icon goes through Category.Icon instead of switching on the string.
var categoryIcons = map[Category]string{
	CategorySchool:  "🏫",
	CategoryDaycare: "🧸",
	CategorySports:  "⚽",
	CategoryHealth:  "🏥",
	CategoryChore:   "🧹",
	CategoryOther:   "📝",
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	_, ok := categoryIcons[c]
	return ok
}

// Icon returns the display glyph for the category. Unknown categories get
// the default glyph.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}
