package utils

import (
	"fmt"
	"strings"
)

// ToString converts various types to string.
// Spreadsheet cell values arrive as `any`; this normalizes them.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NormalizeHeader converts a spreadsheet column header into snake_case form,
// e.g. "Meta Title " -> "meta_title".
func NormalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}
