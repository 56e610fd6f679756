package catalog

import (
	"context"
	"fmt"
	"sort"

	"ck-services/feature/catalog/models"
)

// PartialKey is a lookup key omitting the office segment, resolved against
// (state, area, service) only.
type PartialKey struct {
	StateToken      string
	AreaServedToken string
	ServiceToken    string
}

func (p PartialKey) String() string {
	return p.StateToken + "|" + p.AreaServedToken + "|" + p.ServiceToken
}

// ParseFullKey normalizes and validates path segments into a composite key.
func ParseFullKey(state, office, area, service string) (models.Key, error) {
	key := models.Key{
		StateOfficeToken: models.NormalizeToken(state) + "/" + models.NormalizeToken(office),
		AreaServedToken:  models.NormalizeToken(area),
		ServiceToken:     models.NormalizeToken(service),
	}
	if err := key.Validate(); err != nil {
		return models.Key{}, err
	}
	return key, nil
}

// ParsePartialKey normalizes and validates the office-less segments.
func ParsePartialKey(state, area, service string) (PartialKey, error) {
	partial := PartialKey{
		StateToken:      models.NormalizeToken(state),
		AreaServedToken: models.NormalizeToken(area),
		ServiceToken:    models.NormalizeToken(service),
	}
	if err := models.ValidateToken("state token", partial.StateToken); err != nil {
		return PartialKey{}, err
	}
	if err := models.ValidateToken("area_served_token", partial.AreaServedToken); err != nil {
		return PartialKey{}, err
	}
	if err := models.ValidateToken("service_token", partial.ServiceToken); err != nil {
		return PartialKey{}, err
	}
	return partial, nil
}

// Resolver answers uniqueness and ambiguity questions for keys against the
// catalog. It holds no record copies; every call reads through the store.
type Resolver struct {
	store Store
}

// NewResolver creates a key resolver on top of a catalog store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolvePartial resolves a partial key to a unique record. Zero matches
// yield ErrNotFound; more than one yields *AmbiguousKeyError listing every
// candidate office token, never an arbitrary pick.
func (r *Resolver) ResolvePartial(ctx context.Context, partial PartialKey) (*models.PageRecord, error) {
	records, err := r.store.FindByPartialKey(ctx, partial.StateToken, partial.AreaServedToken, partial.ServiceToken)
	if err != nil {
		return nil, err
	}

	switch len(records) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, partial)
	case 1:
		return &records[0], nil
	}

	offices := make([]string, 0, len(records))
	for _, rec := range records {
		offices = append(offices, rec.Key().OfficeToken())
	}
	sort.Strings(offices)

	return nil, &AmbiguousKeyError{
		StateToken:      partial.StateToken,
		AreaServedToken: partial.AreaServedToken,
		ServiceToken:    partial.ServiceToken,
		OfficeTokens:    offices,
	}
}

// DistinctOfficeTokens returns the deduplicated, alphabetically ordered
// state-office tokens. Ordering is asserted here even though the store
// already orders, so sitemap pagination stays deterministic across dialects.
func (r *Resolver) DistinctOfficeTokens(ctx context.Context) ([]string, error) {
	tokens, err := r.store.ListDistinctStateOfficeTokens(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(tokens)
	return tokens, nil
}
