package domain

import (
	"fmt"
	"strings"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// UIDRegistry records every identifier minted for one document and refuses duplicates.
type UIDRegistry struct {
	seen  map[string]struct{}
	order []string
}

// NewUIDRegistry returns an empty registry.
func NewUIDRegistry() *UIDRegistry {
	return &UIDRegistry{seen: make(map[string]struct{})}
}

// Mint claims uid for the document.
func (r *UIDRegistry) Mint(uid string) (string, error) {
	if strings.TrimSpace(uid) == "" {
		return "", fmt.Errorf("%w: empty uid", m.ErrInvalidInput)
	}

	if _, ok := r.seen[uid]; ok {
		return "", fmt.Errorf("%w: %q", m.ErrDuplicateUID, uid)
	}

	r.seen[uid] = struct{}{}
	r.order = append(r.order, uid)

	return uid, nil
}

// Minted returns the identifiers in minting order.
func (r *UIDRegistry) Minted() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Len returns the number of minted identifiers.
func (r *UIDRegistry) Len() int {
	return len(r.order)
}
