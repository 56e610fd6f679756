package catalog

import (
	"context"
	"testing"

	"ck-services/feature/catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestParseFullKey(t *testing.T) {
	key, err := ParseFullKey(" Tennessee ", "Chattanooga", "Lookout-Mountain", "Care-Services")
	assert.NoError(t, err)
	assert.Equal(t, "tennessee/chattanooga", key.StateOfficeToken)
	assert.Equal(t, "lookout-mountain", key.AreaServedToken)
	assert.Equal(t, "care-services", key.ServiceToken)

	_, err = ParseFullKey("tennessee", "", "lookout-mountain", "care-services")
	assert.ErrorIs(t, err, models.ErrInvalidKeyFormat)

	_, err = ParseFullKey("tenn essee", "chattanooga", "lookout-mountain", "care-services")
	assert.ErrorIs(t, err, models.ErrInvalidKeyFormat)
}

func TestParsePartialKey(t *testing.T) {
	partial, err := ParsePartialKey("Tennessee", "Lookout-Mountain", "Care-Services")
	assert.NoError(t, err)
	assert.Equal(t, "tennessee", partial.StateToken)
	assert.Equal(t, "lookout-mountain", partial.AreaServedToken)
	assert.Equal(t, "care-services", partial.ServiceToken)

	_, err = ParsePartialKey("", "lookout-mountain", "care-services")
	assert.ErrorIs(t, err, models.ErrInvalidKeyFormat)
}

func TestResolvePartialUnique(t *testing.T) {
	store := NewStore(setupTestDB(t))
	resolver := NewResolver(store)
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "care-services", "a")

	partial, err := ParsePartialKey("tennessee", "lookout-mountain", "care-services")
	assert.NoError(t, err)

	record, err := resolver.ResolvePartial(ctx, partial)
	assert.NoError(t, err)
	assert.Equal(t, "tennessee/chattanooga", record.StateOfficeToken)
}

func TestResolvePartialNotFound(t *testing.T) {
	resolver := NewResolver(NewStore(setupTestDB(t)))

	partial, err := ParsePartialKey("tennessee", "lookout-mountain", "care-services")
	assert.NoError(t, err)

	_, err = resolver.ResolvePartial(context.Background(), partial)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolvePartialAmbiguous(t *testing.T) {
	store := NewStore(setupTestDB(t))
	resolver := NewResolver(store)
	ctx := context.Background()

	// Two offices in the same state offer the same service in the same area
	seedRecord(t, store, "tennessee/nashville", "lookout-mountain", "care-services", "a")
	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "care-services", "b")

	partial, err := ParsePartialKey("tennessee", "lookout-mountain", "care-services")
	assert.NoError(t, err)

	_, err = resolver.ResolvePartial(ctx, partial)
	assert.Error(t, err)

	var ambiguous *AmbiguousKeyError
	assert.ErrorAs(t, err, &ambiguous)
	// Never an arbitrary pick: both candidates listed, sorted
	assert.Equal(t, []string{"chattanooga", "nashville"}, ambiguous.OfficeTokens)
	assert.Equal(t, "tennessee", ambiguous.StateToken)
}

func TestDistinctOfficeTokensOrdering(t *testing.T) {
	store := NewStore(setupTestDB(t))
	resolver := NewResolver(store)
	ctx := context.Background()

	tokens, err := resolver.DistinctOfficeTokens(ctx)
	assert.NoError(t, err)
	assert.Empty(t, tokens)

	seedRecord(t, store, "tennessee/nashville", "midtown", "care-services", "a")
	seedRecord(t, store, "alabama/birmingham", "southside", "care-services", "b")
	seedRecord(t, store, "tennessee/nashville", "downtown", "respite-care", "c")

	tokens, err = resolver.DistinctOfficeTokens(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"alabama/birmingham", "tennessee/nashville"}, tokens)
}
