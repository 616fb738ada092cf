package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/config"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
)

// sectionKeys maps normalized separator keys to fields.
var sectionKeys = map[string]config.Field{
	"photo":              config.FieldPhoto,
	"photo file name":    config.FieldPhoto,
	"location":           config.FieldShelfLocation,
	"est. linear meters": config.FieldLinearMeters,
	"est linear meters":  config.FieldLinearMeters,
	"linear meters":      config.FieldLinearMeters,
	"shelf levels":       config.FieldShelfLevels,
	"levels":             config.FieldShelfLevels,
}

// ParseSectionText parses separator text of the form
//
//	[📷] photo.jpg | Location: Chilled - Fridge 1 | Est. Linear Meters: 2.5 | Shelf Levels: 6
//
// Unknown or malformed segments are ignored. Numbers that fail to parse are
// reported as warnings and the field is left unset.
func ParseSectionText(text string) (models.SectionFields, []string) {
	var (
		fields   models.SectionFields
		warnings []string
	)
	for i, segment := range strings.Split(text, "|") {
		if i == 0 {
			segment = stripGlyphPrefix(segment)
		}
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			if i == 0 {
				fields.Photo = ptr(segment)
			}
			continue
		}
		field, known := sectionKeys[config.Normalize(key)]
		if !known {
			continue
		}
		if w := setField(&fields, field, value); w != "" {
			warnings = append(warnings, w)
		}
	}
	return fields, warnings
}

// setField stores a raw value into the field, returning a warning when a number fails to parse.
func setField(fields *models.SectionFields, field config.Field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	switch field {
	case config.FieldPhoto:
		fields.Photo = ptr(value)
	case config.FieldShelfLocation:
		fields.ShelfLocation = ptr(value)
	case config.FieldLinearMeters:
		f, err := parseFinite(value)
		if err != nil {
			return fmt.Sprintf("linear meters %q: %v", value, err)
		}
		fields.LinearMeters = &f
	case config.FieldShelfLevels:
		f, err := parseFinite(value)
		if err != nil {
			return fmt.Sprintf("shelf levels %q: %v", value, err)
		}
		r := math.RoundToEven(f)
		if r < 0 || r > math.MaxInt32 {
			return fmt.Sprintf("shelf levels %q: out of range", value)
		}
		n := int(r)
		fields.ShelfLevelCount = &n
	}
	return ""
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return f, nil
}

// stripGlyphPrefix drops leading symbols such as a camera emoji and its modifiers.
func stripGlyphPrefix(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) ||
			unicode.In(r, unicode.So, unicode.Sk, unicode.Mn, unicode.Cf, unicode.Co)
	})
}

func ptr[T any](v T) *T {
	return &v
}
