package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ck-services/feature/catalog/models"

	"gorm.io/gorm"
)

// UpsertOutcome classifies the result of a single upsert.
type UpsertOutcome int

const (
	// UpsertCreated means the composite key was absent and a row was inserted.
	UpsertCreated UpsertOutcome = iota + 1
	// UpsertUpdated means the key existed and the content was replaced.
	UpsertUpdated
	// UpsertUnchanged means the key existed with identical content; no write
	// was issued.
	UpsertUnchanged
)

func (o UpsertOutcome) String() string {
	switch o {
	case UpsertCreated:
		return "created"
	case UpsertUpdated:
		return "updated"
	case UpsertUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Store is the logical persistence contract the engine and the query service
// drive. Uniqueness of the composite key is enforced by the storage layer's
// unique index, not by in-process coordination.
type Store interface {
	// FindByFullKey returns the record for the composite key, or ErrNotFound.
	FindByFullKey(ctx context.Context, key models.Key) (*models.PageRecord, error)
	// FindByPartialKey returns every record matching (state, area, service)
	// across offices, ordered by state-office token.
	FindByPartialKey(ctx context.Context, state, area, service string) ([]models.PageRecord, error)
	// ListServicesByOfficeAndArea returns the records for one office and area,
	// ordered by service token.
	ListServicesByOfficeAndArea(ctx context.Context, stateOfficeToken, areaToken string) ([]models.PageRecord, error)
	// ListAreasAndServices returns the (area, service) pairs of an office for
	// sitemap generation, ordered by area then service.
	ListAreasAndServices(ctx context.Context, stateOfficeToken string) ([]models.AreaService, error)
	// ListDistinctStateOfficeTokens returns the deduplicated, alphabetically
	// ordered state-office tokens.
	ListDistinctStateOfficeTokens(ctx context.Context) ([]string, error)
	// HasOffice reports whether any record exists for the state-office token.
	HasOffice(ctx context.Context, stateOfficeToken string) (bool, error)
	// Upsert inserts the record if its composite key is absent, otherwise
	// replaces the whole content. Identical content is a declared no-op.
	Upsert(ctx context.Context, record *models.PageRecord) (UpsertOutcome, error)
	// Create inserts a new record, failing with ErrAlreadyExists if the
	// composite key is taken.
	Create(ctx context.Context, record *models.PageRecord) error
}

// gormStore implements Store on a GORM connection (MySQL or sqlite).
type gormStore struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed catalog store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindByFullKey(ctx context.Context, key models.Key) (*models.PageRecord, error) {
	var record models.PageRecord
	err := s.db.WithContext(ctx).
		Where("state_office_token = ? AND area_served_token = ? AND service_token = ?",
			key.StateOfficeToken, key.AreaServedToken, key.ServiceToken).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *gormStore) FindByPartialKey(ctx context.Context, state, area, service string) ([]models.PageRecord, error) {
	var records []models.PageRecord
	err := s.db.WithContext(ctx).
		Where("state_office_token LIKE ? AND area_served_token = ? AND service_token = ?",
			state+"/%", area, service).
		Order("state_office_token").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *gormStore) ListServicesByOfficeAndArea(ctx context.Context, stateOfficeToken, areaToken string) ([]models.PageRecord, error) {
	var records []models.PageRecord
	err := s.db.WithContext(ctx).
		Where("state_office_token = ? AND area_served_token = ?", stateOfficeToken, areaToken).
		Order("service_token").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *gormStore) ListAreasAndServices(ctx context.Context, stateOfficeToken string) ([]models.AreaService, error) {
	var pairs []models.AreaService
	err := s.db.WithContext(ctx).
		Model(&models.PageRecord{}).
		Select("area_served_token, service_token").
		Where("state_office_token = ?", stateOfficeToken).
		Order("area_served_token, service_token").
		Find(&pairs).Error
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

func (s *gormStore) ListDistinctStateOfficeTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	err := s.db.WithContext(ctx).
		Model(&models.PageRecord{}).
		Distinct().
		Order("state_office_token").
		Pluck("state_office_token", &tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *gormStore) HasOffice(ctx context.Context, stateOfficeToken string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.PageRecord{}).
		Where("state_office_token = ?", stateOfficeToken).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormStore) Upsert(ctx context.Context, record *models.PageRecord) (UpsertOutcome, error) {
	var existing models.PageRecord
	err := s.db.WithContext(ctx).
		Where("state_office_token = ? AND area_served_token = ? AND service_token = ?",
			record.StateOfficeToken, record.AreaServedToken, record.ServiceToken).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
			return 0, err
		}
		return UpsertCreated, nil
	}
	if err != nil {
		return 0, err
	}

	if existing.SameContent(*record) {
		return UpsertUnchanged, nil
	}

	// Whole-record replace. Select lists the content columns explicitly so
	// empty strings overwrite instead of being skipped as zero values.
	err = s.db.WithContext(ctx).
		Model(&existing).
		Select("meta_title", "meta_description", "page_title", "page_content").
		Updates(models.PageRecord{
			MetaTitle:       record.MetaTitle,
			MetaDescription: record.MetaDescription,
			PageTitle:       record.PageTitle,
			PageContent:     record.PageContent,
		}).Error
	if err != nil {
		return 0, err
	}
	return UpsertUpdated, nil
}

func (s *gormStore) Create(ctx context.Context, record *models.PageRecord) error {
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, record.Key())
		}
		return err
	}
	return nil
}

// isDuplicateKeyError catches driver-level unique constraint violations that
// GORM does not translate for every dialect.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
