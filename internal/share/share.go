// Package share builds the plain-text eligibility summary and copies it to
// the system clipboard.
package share

import (
	"errors"
	"fmt"
	"strings"

	"govscheme/internal/models"

	"github.com/atotto/clipboard"
)

// ErrEmptyShare is returned when there are no eligible schemes to share.
var ErrEmptyShare = errors.New("share: no eligible schemes")

// EmptyNotice is the user-facing text for ErrEmptyShare.
const EmptyNotice = "No results to share yet. Run a scan first!"

// maxNamed is how many scheme names the summary lists.
const maxNamed = 3

// Clipboard receives generated share text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Summary formats the share sentence for eligible, pointing readers at url.
func Summary(eligible []models.Scheme, url string) (string, error) {
	if len(eligible) == 0 {
		return "", ErrEmptyShare
	}
	n := len(eligible)
	if n > maxNamed {
		n = maxNamed
	}
	names := make([]string, 0, n)
	for _, s := range eligible[:n] {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("GovScheme India: Based on my profile, I am eligible for %d schemes including %s. Check yours at %s!",
		len(eligible), strings.Join(names, ", "), url), nil
}
