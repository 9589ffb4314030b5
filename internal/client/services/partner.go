package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/odooclock/internal/client/gateway"
	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/logging"
)

// PartnerListOptions filter and page a partner listing.
type PartnerListOptions struct {
	// IsCompany, when set, restricts to companies (true) or individuals (false).
	IsCompany *bool
	Limit     int
	Offset    int
	Fields    []string
}

// PartnerService reads and maintains partner records.
type PartnerService struct {
	gw  DatasetGateway
	log logging.Logger
}

func NewPartnerService(gw DatasetGateway, log logging.Logger) *PartnerService {
	return &PartnerService{gw: gw, log: log.With("component", "partners")}
}

func (s *PartnerService) decodePartners(raw json.RawMessage) ([]models.Partner, error) {
	var partners []models.Partner
	if err := json.Unmarshal(raw, &partners); err != nil {
		return nil, fmt.Errorf("decoding partners: %w", err)
	}
	return partners, nil
}

// List returns partners matching the options, in server order.
func (s *PartnerService) List(ctx context.Context, opts PartnerListOptions) ([]models.Partner, error) {
	var domain gateway.Domain
	if opts.IsCompany != nil {
		domain = append(domain, gateway.Eq("is_company", *opts.IsCompany))
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = models.LimitMedium
	}
	fields := opts.Fields
	if fields == nil {
		fields = models.PartnerFieldsBasic
	}

	raw, err := s.gw.SearchRead(ctx, models.ModelPartner, domain, fields,
		&gateway.Options{Limit: limit, Offset: opts.Offset})
	if err != nil {
		return nil, err
	}
	return s.decodePartners(raw)
}

// ByID fetches one partner with the detailed field set, or nil if it does
// not exist.
func (s *PartnerService) ByID(ctx context.Context, id int64) (*models.Partner, error) {
	raw, err := s.gw.Read(ctx, models.ModelPartner, []int64{id}, models.PartnerFieldsDetailed)
	if err != nil {
		return nil, err
	}

	partners, err := s.decodePartners(raw)
	if err != nil {
		return nil, err
	}
	if len(partners) == 0 {
		return nil, nil
	}
	return &partners[0], nil
}

// SearchByName matches partners by case-insensitive substring.
func (s *PartnerService) SearchByName(ctx context.Context, term string, limit int) ([]models.Partner, error) {
	if limit <= 0 {
		limit = 10
	}

	raw, err := s.gw.SearchRead(ctx, models.ModelPartner,
		gateway.Domain{gateway.ILike("name", term)},
		models.PartnerFieldsBasic,
		&gateway.Options{Limit: limit})
	if err != nil {
		return nil, err
	}
	return s.decodePartners(raw)
}

// Companies lists company partners only.
func (s *PartnerService) Companies(ctx context.Context, limit int) ([]models.Partner, error) {
	isCompany := true
	return s.List(ctx, PartnerListOptions{IsCompany: &isCompany, Limit: limit})
}

// Individuals lists non-company partners only.
func (s *PartnerService) Individuals(ctx context.Context, limit int) ([]models.Partner, error) {
	isCompany := false
	return s.List(ctx, PartnerListOptions{IsCompany: &isCompany, Limit: limit})
}

// Create inserts a partner and returns its id.
func (s *PartnerService) Create(ctx context.Context, values map[string]any) (int64, error) {
	return s.gw.Create(ctx, models.ModelPartner, values)
}

// Update writes fields on one partner.
func (s *PartnerService) Update(ctx context.Context, id int64, values map[string]any) (bool, error) {
	return s.gw.Write(ctx, models.ModelPartner, []int64{id}, values)
}

// Delete removes one partner.
func (s *PartnerService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.gw.Unlink(ctx, models.ModelPartner, []int64{id})
}
