package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/merchhaus/backoffice/internal/events"
	"github.com/merchhaus/backoffice/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      campaigndomain.Repository
	Publisher events.Publisher
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      campaigndomain.Repository
	publisher events.Publisher
}

func New(p Params) campaigndomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("campaign.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		publisher: p.Publisher,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*campaigndomain.Campaign, error) {
	campaignID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, campaigndomain.ErrNotFound
	}

	campaign, err := s.repo.FindByID(ctx, s.db, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, campaigndomain.ErrNotFound
	}
	return campaign, nil
}

func (s *Service) Upsert(ctx context.Context, req campaigndomain.UpsertRequest) (*campaigndomain.Campaign, bool, error) {
	name := strings.TrimSpace(req.Name)
	campaignType := strings.TrimSpace(req.Type)

	var companyID *snowflake.ID
	if req.CompanyID != "" {
		id, err := snowflake.ParseString(req.CompanyID)
		if err != nil {
			return nil, false, campaigndomain.ErrInvalidCompany
		}
		companyID = &id
	}

	var ownerID *snowflake.ID
	if req.OwnerID != "" {
		id, err := snowflake.ParseString(req.OwnerID)
		if err != nil {
			return nil, false, err
		}
		ownerID = &id
	}

	now := s.clock.Now().UTC()
	existing, err := s.repo.FindScoped(ctx, s.db, name, campaignType, companyID)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Environment = req.Environment
		existing.IsHidden = req.IsHidden
		existing.StartDate = req.StartDate
		existing.EndDate = req.EndDate
		existing.OwnerID = ownerID
		existing.UpdatedAt = now
		if err := s.repo.Restore(ctx, s.db, existing); err != nil {
			return nil, false, err
		}
		existing.DeletedAt = gorm.DeletedAt{}
		return existing, false, nil
	}

	campaign := &campaigndomain.Campaign{
		ID:          s.genID.Generate(),
		CompanyID:   companyID,
		OwnerID:     ownerID,
		Name:        name,
		Type:        campaignType,
		Environment: req.Environment,
		IsHidden:    req.IsHidden,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, campaign); err != nil {
		return nil, false, err
	}

	s.log.Info("campaign created", zap.String("campaign_id", campaign.ID.String()), zap.String("name", campaign.Name))
	return campaign, true, nil
}

func (s *Service) Update(ctx context.Context, id string, req campaigndomain.UpdateRequest) (*campaigndomain.Campaign, error) {
	campaignID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, campaigndomain.ErrNotFound
	}

	campaign, err := s.repo.FindByID(ctx, s.db, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, campaigndomain.ErrNotFound
	}

	if req.Name != nil {
		campaign.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsHidden != nil {
		campaign.IsHidden = *req.IsHidden
	}
	if req.StartDate != nil {
		campaign.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = req.EndDate
	}
	campaign.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, campaign); err != nil {
		return nil, err
	}

	s.publishQuota(ctx, campaign)
	return campaign, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	campaignID, err := snowflake.ParseString(id)
	if err != nil {
		return campaigndomain.ErrNotFound
	}

	campaign, err := s.repo.FindByID(ctx, s.db, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return campaigndomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, campaignID)
}

func (s *Service) ListForCompany(ctx context.Context, req campaigndomain.ListRequest) ([]campaigndomain.View, pagination.Meta, error) {
	views, total, err := s.repo.ListForCompany(ctx, s.db, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return views, pagination.BuildMeta(total, req.Params), nil
}

func (s *Service) SetOrderLimit(ctx context.Context, campaignID string, limit int) (*campaigndomain.CampaignOrderLimit, bool, error) {
	id, err := snowflake.ParseString(campaignID)
	if err != nil {
		return nil, false, campaigndomain.ErrNotFound
	}

	campaign, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, false, err
	}
	if campaign == nil {
		return nil, false, campaigndomain.ErrNotFound
	}

	now := s.clock.Now().UTC()
	existing, err := s.repo.FindOrderLimit(ctx, s.db, id)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.OrderLimit = limit
		existing.UpdatedAt = now
		if err := s.repo.UpdateOrderLimit(ctx, s.db, existing); err != nil {
			return nil, false, err
		}
		existing.DeletedAt = gorm.DeletedAt{}
		return existing, false, nil
	}

	orderLimit := &campaigndomain.CampaignOrderLimit{
		ID:         s.genID.Generate(),
		CampaignID: id,
		OrderLimit: limit,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.InsertOrderLimit(ctx, s.db, orderLimit); err != nil {
		return nil, false, err
	}
	return orderLimit, true, nil
}

func (s *Service) AddAddress(ctx context.Context, campaignID string, req campaigndomain.AddressRequest) (*campaigndomain.CampaignAddress, error) {
	id, err := snowflake.ParseString(campaignID)
	if err != nil {
		return nil, campaigndomain.ErrNotFound
	}

	campaign, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, campaigndomain.ErrNotFound
	}

	now := s.clock.Now().UTC()
	address := &campaigndomain.CampaignAddress{
		ID:         s.genID.Generate(),
		CampaignID: id,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Place:      strings.TrimSpace(req.Place),
		Street:     strings.TrimSpace(req.Street),
		ZipCode:    strings.TrimSpace(req.ZipCode),
		Country:    strings.TrimSpace(req.Country),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.InsertAddress(ctx, s.db, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *Service) ListAddresses(ctx context.Context, campaignID string) ([]campaigndomain.CampaignAddress, error) {
	id, err := snowflake.ParseString(campaignID)
	if err != nil {
		return nil, campaigndomain.ErrNotFound
	}
	return s.repo.ListAddresses(ctx, s.db, id)
}

func (s *Service) DeleteAddress(ctx context.Context, campaignID, addressID string) error {
	cid, err := snowflake.ParseString(campaignID)
	if err != nil {
		return campaigndomain.ErrNotFound
	}
	aid, err := snowflake.ParseString(addressID)
	if err != nil {
		return campaigndomain.ErrAddressNotFound
	}

	address, err := s.repo.FindAddress(ctx, s.db, cid, aid)
	if err != nil {
		return err
	}
	if address == nil {
		return campaigndomain.ErrAddressNotFound
	}
	return s.repo.DeleteAddress(ctx, s.db, aid)
}

// publishQuota requests a recalculation; failures are logged, not returned,
// so a broken broker never blocks the write that already happened.
func (s *Service) publishQuota(ctx context.Context, campaign *campaigndomain.Campaign) {
	event := events.QuotaEvent{
		CampaignID:  campaign.ID.String(),
		Environment: campaign.Environment,
	}
	if err := s.publisher.Publish(ctx, events.TopicQuota, event); err != nil {
		s.log.Warn("publish quota event", zap.String("campaign_id", event.CampaignID), zap.Error(err))
	}
}
