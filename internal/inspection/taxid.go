// internal/inspection/taxid.go
package inspection

import (
	"regexp"
	"strings"

	"github.com/packscan/packscan-backend/internal/models"
)

// RootLength is the number of leading CNPJ digits identifying an organization.
const RootLength = 8

var (
	nonDigit       = regexp.MustCompile(`\D`)
	referenceDelim = regexp.MustCompile(`[\r\n,;]`)
)

// Root canonicalizes a single raw tax identifier into its root.
// Fewer than RootLength digits yield the truncated, possibly empty, digit string.
func Root(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, models.NotIdentified) {
		return ""
	}
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) > RootLength {
		return digits[:RootLength]
	}
	return digits
}

// RootOf derives the root from the first, canonical, identifier of the list.
func RootOf(taxIDs []string) string {
	if len(taxIDs) == 0 {
		return ""
	}
	return Root(taxIDs[0])
}

// ReferenceSet is the normalized view of the admin-maintained reference blob.
type ReferenceSet struct {
	roots []string
}

// NewReferenceSet splits the blob on commas, semicolons and newlines and keeps the
// root of every token carrying at least RootLength digits.
func NewReferenceSet(blob string) ReferenceSet {
	seen := make(map[string]struct{})
	var roots []string
	for _, token := range referenceDelim.Split(blob, -1) {
		digits := nonDigit.ReplaceAllString(token, "")
		if len(digits) < RootLength {
			continue
		}
		root := digits[:RootLength]
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	return ReferenceSet{roots: roots}
}

// Contains reports whether root overlaps a reference root in either direction.
// The containment check tolerates identifiers truncated by OCR.
func (r ReferenceSet) Contains(root string) bool {
	if root == "" {
		return false
	}
	for _, ref := range r.roots {
		if strings.Contains(root, ref) || strings.Contains(ref, root) {
			return true
		}
	}
	return false
}

func (r ReferenceSet) Roots() []string {
	out := make([]string, len(r.roots))
	copy(out, r.roots)
	return out
}

func (r ReferenceSet) Len() int {
	return len(r.roots)
}
