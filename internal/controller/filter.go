package controller

import (
	"strings"

	"govscheme/internal/models"
)

// FilterSchemes keeps schemes whose name contains search (case-insensitive)
// and whose type equals schemeType, unless schemeType is models.FilterAll.
// The input is never modified and the result is never nil.
func FilterSchemes(schemes []models.Scheme, search, schemeType string) []models.Scheme {
	query := strings.ToLower(search)
	out := make([]models.Scheme, 0, len(schemes))
	for _, s := range schemes {
		if !strings.Contains(strings.ToLower(s.Name), query) {
			continue
		}
		if schemeType != models.FilterAll && s.Type != schemeType {
			continue
		}
		out = append(out, s)
	}
	return out
}
