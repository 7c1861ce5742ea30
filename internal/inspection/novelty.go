// internal/inspection/novelty.go
package inspection

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RootIndex answers whether a persisted entry other than excludeID already carries root.
type RootIndex interface {
	ExistsByRoot(ctx context.Context, root string, excludeID *uuid.UUID) (bool, error)
}

type Novelty struct {
	Root          string `json:"cnpj_raiz"`
	InReference   bool   `json:"in_reference"`
	InHistory     bool   `json:"in_history"`
	IsNewProspect bool   `json:"is_new_prospect"`
}

// ClassifyNovelty labels an organization as a new prospect when its root is neither in
// the reference set nor carried by another persisted entry.
//
// Creation passes a nil excludeID since no row exists yet; edits pass the entry's own id.
// A root shorter than RootLength, empty included, does not discriminate an organization and
// is always new; neither the reference set nor the index is consulted for it.
// The label is advisory: entries created concurrently with the same root may both be new.
func ClassifyNovelty(ctx context.Context, taxIDs []string, refs ReferenceSet, index RootIndex, excludeID *uuid.UUID) (Novelty, error) {
	root := RootOf(taxIDs)
	if len(root) < RootLength {
		return Novelty{Root: root, IsNewProspect: true}, nil
	}

	n := Novelty{Root: root, InReference: refs.Contains(root)}

	inHistory, err := index.ExistsByRoot(ctx, root, excludeID)
	if err != nil {
		return Novelty{}, fmt.Errorf("failed to query root history: %w", err)
	}
	n.InHistory = inHistory
	n.IsNewProspect = !n.InReference && !n.InHistory
	return n, nil
}
