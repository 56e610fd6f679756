package catalog

import (
	"context"
	"testing"

	"ck-services/core/database"
	"ck-services/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite db: %v", err)
	}

	if err := db.AutoMigrate(&models.PageRecord{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func seedRecord(t *testing.T, store Store, stateOffice, area, service, title string) {
	t.Helper()
	rec := models.PageRecord{
		StateOfficeToken: stateOffice,
		AreaServedToken:  area,
		ServiceToken:     service,
		MetaTitle:        title,
		MetaDescription:  "desc",
		PageTitle:        "page " + title,
		PageContent:      "content",
	}
	outcome, err := store.Upsert(context.Background(), &rec)
	assert.NoError(t, err)
	assert.Equal(t, UpsertCreated, outcome)
}

func TestUpsertLifecycle(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	rec := models.PageRecord{
		StateOfficeToken: "tennessee/chattanooga",
		AreaServedToken:  "lookout-mountain",
		ServiceToken:     "care-services",
		MetaTitle:        "Care Services",
		PageContent:      "v1",
	}

	// Insert
	outcome, err := store.Upsert(ctx, &rec)
	assert.NoError(t, err)
	assert.Equal(t, UpsertCreated, outcome)

	// Identical content is a declared no-op
	same := rec
	same.ID = 0
	outcome, err = store.Upsert(ctx, &same)
	assert.NoError(t, err)
	assert.Equal(t, UpsertUnchanged, outcome)

	// Changed content is a whole-record replace
	changed := same
	changed.PageContent = "v2"
	changed.MetaTitle = "" // empty strings must overwrite too
	outcome, err = store.Upsert(ctx, &changed)
	assert.NoError(t, err)
	assert.Equal(t, UpsertUpdated, outcome)

	got, err := store.FindByFullKey(ctx, rec.Key())
	assert.NoError(t, err)
	assert.Equal(t, "v2", got.PageContent)
	assert.Equal(t, "", got.MetaTitle)

	// Still exactly one row for the key
	records, err := store.FindByPartialKey(ctx, "tennessee", "lookout-mountain", "care-services")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFindByFullKeyNotFound(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.FindByFullKey(context.Background(), models.Key{
		StateOfficeToken: "tennessee/chattanooga",
		AreaServedToken:  "lookout-mountain",
		ServiceToken:     "care-services",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByPartialKeyAcrossOffices(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "care-services", "a")
	seedRecord(t, store, "tennessee/nashville", "lookout-mountain", "care-services", "b")
	seedRecord(t, store, "georgia/atlanta", "lookout-mountain", "care-services", "c")

	records, err := store.FindByPartialKey(ctx, "tennessee", "lookout-mountain", "care-services")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	// Ordered by state-office token
	assert.Equal(t, "tennessee/chattanooga", records[0].StateOfficeToken)
	assert.Equal(t, "tennessee/nashville", records[1].StateOfficeToken)
}

func TestListServicesByOfficeAndArea(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "respite-care", "a")
	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "care-services", "b")
	seedRecord(t, store, "tennessee/chattanooga", "downtown", "care-services", "c")

	records, err := store.ListServicesByOfficeAndArea(ctx, "tennessee/chattanooga", "lookout-mountain")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	// Ordered by service token
	assert.Equal(t, "care-services", records[0].ServiceToken)
	assert.Equal(t, "respite-care", records[1].ServiceToken)
}

func TestListAreasAndServices(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "lookout-mountain", "respite-care", "a")
	seedRecord(t, store, "tennessee/chattanooga", "downtown", "care-services", "b")
	seedRecord(t, store, "tennessee/nashville", "midtown", "care-services", "c")

	pairs, err := store.ListAreasAndServices(ctx, "tennessee/chattanooga")
	assert.NoError(t, err)
	assert.Equal(t, []models.AreaService{
		{AreaServedToken: "downtown", ServiceToken: "care-services"},
		{AreaServedToken: "lookout-mountain", ServiceToken: "respite-care"},
	}, pairs)
}

func TestListDistinctStateOfficeTokens(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	tokens, err := store.ListDistinctStateOfficeTokens(ctx)
	assert.NoError(t, err)
	assert.Empty(t, tokens)

	seedRecord(t, store, "tennessee/nashville", "midtown", "care-services", "a")
	seedRecord(t, store, "georgia/atlanta", "buckhead", "care-services", "b")
	seedRecord(t, store, "tennessee/nashville", "downtown", "respite-care", "c")

	tokens, err = store.ListDistinctStateOfficeTokens(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"georgia/atlanta", "tennessee/nashville"}, tokens)
}

func TestHasOffice(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	seedRecord(t, store, "tennessee/chattanooga", "downtown", "care-services", "a")

	known, err := store.HasOffice(ctx, "tennessee/chattanooga")
	assert.NoError(t, err)
	assert.True(t, known)

	known, err = store.HasOffice(ctx, "tennessee/memphis")
	assert.NoError(t, err)
	assert.False(t, known)
}

func TestCreateDuplicate(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	rec := models.PageRecord{
		StateOfficeToken: "tennessee/chattanooga",
		AreaServedToken:  "downtown",
		ServiceToken:     "care-services",
	}
	assert.NoError(t, store.Create(ctx, &rec))

	dup := models.PageRecord{
		StateOfficeToken: "tennessee/chattanooga",
		AreaServedToken:  "downtown",
		ServiceToken:     "care-services",
		MetaTitle:        "other content",
	}
	err := store.Create(ctx, &dup)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestListDistinctStateOfficeTokensSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"state_office_token"})
	rows.AddRow("georgia/atlanta")
	rows.AddRow("tennessee/chattanooga")

	// The listing must be DISTINCT and ordered for deterministic sitemaps.
	mock.ExpectQuery("SELECT DISTINCT `state_office_token` FROM `office_pages` ORDER BY state_office_token").
		WillReturnRows(rows)

	tokens, err := store.ListDistinctStateOfficeTokens(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"georgia/atlanta", "tennessee/chattanooga"}, tokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}
