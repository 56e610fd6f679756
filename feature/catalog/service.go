package catalog

import (
	"context"
	"fmt"

	"ck-services/feature/catalog/models"

	"go.uber.org/zap"
)

// Service translates resolved keys into catalog responses.
type Service struct {
	store    Store
	resolver *Resolver
	logger   *zap.Logger
}

// NewService creates a new catalog query service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		resolver: NewResolver(store),
		logger:   logger,
	}
}

// GetPage returns the unique record for a full composite key.
func (s *Service) GetPage(ctx context.Context, key models.Key) (*models.PageRecord, error) {
	return s.store.FindByFullKey(ctx, key)
}

// GetServicesForArea lists the services one office offers in one area.
// An unknown office yields ErrNotFound; a known office with no services in
// the area yields an empty slice. The two outcomes are distinct.
func (s *Service) GetServicesForArea(ctx context.Context, state, office, area string) ([]models.PageRecord, error) {
	stateOfficeToken, areaToken, err := parseOfficeArea(state, office, area)
	if err != nil {
		return nil, err
	}

	known, err := s.store.HasOffice(ctx, stateOfficeToken)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: office %s", ErrNotFound, stateOfficeToken)
	}

	records, err := s.store.ListServicesByOfficeAndArea(ctx, stateOfficeToken, areaToken)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.PageRecord{}
	}
	return records, nil
}

// GetServiceAcrossOffices resolves a partial key (office segment omitted)
// through the resolver's ambiguity policy.
func (s *Service) GetServiceAcrossOffices(ctx context.Context, state, area, service string) (*models.PageRecord, error) {
	partial, err := ParsePartialKey(state, area, service)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolvePartial(ctx, partial)
}

// GetOfficeSitemap returns the (area, service) pairs of one office.
func (s *Service) GetOfficeSitemap(ctx context.Context, state, office string) ([]models.AreaService, error) {
	stateOfficeToken, err := parseStateOffice(state, office)
	if err != nil {
		return nil, err
	}

	known, err := s.store.HasOffice(ctx, stateOfficeToken)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: office %s", ErrNotFound, stateOfficeToken)
	}

	pairs, err := s.store.ListAreasAndServices(ctx, stateOfficeToken)
	if err != nil {
		return nil, err
	}
	if pairs == nil {
		pairs = []models.AreaService{}
	}
	return pairs, nil
}

// ListAllOfficeTokens returns every state-office token in the catalog,
// ordered. An empty catalog yields an empty slice, never an error.
func (s *Service) ListAllOfficeTokens(ctx context.Context) ([]string, error) {
	tokens, err := s.resolver.DistinctOfficeTokens(ctx)
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}

// CreatePage validates and inserts a single record through the explicit API
// path. Duplicate composite keys fail with ErrAlreadyExists.
func (s *Service) CreatePage(ctx context.Context, record *models.PageRecord) error {
	record.StateOfficeToken = models.NormalizeToken(record.StateOfficeToken)
	record.AreaServedToken = models.NormalizeToken(record.AreaServedToken)
	record.ServiceToken = models.NormalizeToken(record.ServiceToken)

	if err := record.Validate(); err != nil {
		return err
	}

	if err := s.store.Create(ctx, record); err != nil {
		return err
	}

	s.logger.Info("Page record created",
		zap.String("key", record.Key().String()),
		zap.Uint("id", record.ID),
	)
	return nil
}

func parseStateOffice(state, office string) (string, error) {
	st := models.NormalizeToken(state)
	of := models.NormalizeToken(office)
	if err := models.ValidateToken("state token", st); err != nil {
		return "", err
	}
	if err := models.ValidateToken("office token", of); err != nil {
		return "", err
	}
	return st + "/" + of, nil
}

func parseOfficeArea(state, office, area string) (string, string, error) {
	stateOfficeToken, err := parseStateOffice(state, office)
	if err != nil {
		return "", "", err
	}
	areaToken := models.NormalizeToken(area)
	if err := models.ValidateToken("area_served_token", areaToken); err != nil {
		return "", "", err
	}
	return stateOfficeToken, areaToken, nil
}
