package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

var pluralizeClient = pluralizer.NewClient()

// TableName derives a table name from a struct name: snake_case, pluralized
// (Member -> members, BlogPost -> blog_posts).
func TableName(structName string) string {
	return pluralizeClient.Plural(toSnakeCase(structName))
}

// ColumnName derives a column name from a field name: snake_case
// (TeamID -> team_id).
func ColumnName(fieldName string) string {
	return toSnakeCase(fieldName)
}

// toSnakeCase converts Go identifier casing to snake_case, keeping acronym
// runs together (TeamID -> team_id, HTTPPort -> http_port).
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}
	if name == "ID" {
		return "id"
	}

	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteByte('_')
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
