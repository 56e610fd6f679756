package catalog

import (
	"context"
	"testing"

	"ck-services/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, Store) {
	t.Helper()
	store := NewStore(setupTestDB(t))
	return NewService(store, zap.NewNop()), store
}

func TestGetServicesForAreaDistinguishesOutcomes(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "care-services", "a")

	// Known office, known area
	records, err := svc.GetServicesForArea(ctx, "tennessee", "chattanooga", "lookout-mountain")
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	// Known office, area without services: empty, not an error
	records, err = svc.GetServicesForArea(ctx, "tennessee", "chattanooga", "downtown")
	assert.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	// Unknown office: NotFound, not empty
	_, err = svc.GetServicesForArea(ctx, "tennessee", "memphis", "downtown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetServicesForAreaInvalidKey(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetServicesForArea(context.Background(), "tenn essee", "chattanooga", "downtown")
	assert.ErrorIs(t, err, models.ErrInvalidKeyFormat)
}

func TestGetOfficeSitemap(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "respite-care", "a")
	seedRecord(t, store, "tennessee/chattanooga", "downtown", "care-services", "b")

	pairs, err := svc.GetOfficeSitemap(ctx, "tennessee", "chattanooga")
	assert.NoError(t, err)
	assert.Equal(t, []models.AreaService{
		{AreaServedToken: "downtown", ServiceToken: "care-services"},
		{AreaServedToken: "lookout-mountain", ServiceToken: "respite-care"},
	}, pairs)

	_, err = svc.GetOfficeSitemap(ctx, "tennessee", "memphis")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAllOfficeTokensEmptyCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	tokens, err := svc.ListAllOfficeTokens(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)
}

func TestCreatePage(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rec := models.PageRecord{
		StateOfficeToken: "Tennessee/Chattanooga",
		AreaServedToken:  "Lookout-Mountain",
		ServiceToken:     "Care-Services",
		MetaTitle:        "Care Services",
	}
	assert.NoError(t, svc.CreatePage(ctx, &rec))
	assert.NotZero(t, rec.ID)
	// Key segments are normalized before persisting
	assert.Equal(t, "tennessee/chattanooga", rec.StateOfficeToken)

	got, err := store.FindByFullKey(ctx, rec.Key())
	assert.NoError(t, err)
	assert.Equal(t, "Care Services", got.MetaTitle)

	// Duplicate composite key
	dup := models.PageRecord{
		StateOfficeToken: "tennessee/chattanooga",
		AreaServedToken:  "lookout-mountain",
		ServiceToken:     "care-services",
	}
	assert.ErrorIs(t, svc.CreatePage(ctx, &dup), ErrAlreadyExists)

	// Invalid key
	bad := models.PageRecord{StateOfficeToken: "tennessee", AreaServedToken: "a", ServiceToken: "b"}
	assert.ErrorIs(t, svc.CreatePage(ctx, &bad), models.ErrInvalidKeyFormat)
}

func TestGetServiceAcrossOfficesDelegation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "care-services", "a")

	record, err := svc.GetServiceAcrossOffices(ctx, "tennessee", "lookout-mountain", "care-services")
	assert.NoError(t, err)
	assert.Equal(t, "tennessee/chattanooga", record.StateOfficeToken)

	_, err = svc.GetServiceAcrossOffices(ctx, "tennessee", "lookout-mountain", "unknown-service")
	assert.ErrorIs(t, err, ErrNotFound)
}
