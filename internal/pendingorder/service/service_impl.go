package service

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/internal/appmodules"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	"github.com/merchhaus/backoffice/internal/clock"
	companydomain "github.com/merchhaus/backoffice/internal/company/domain"
	"github.com/merchhaus/backoffice/internal/events"
	"github.com/merchhaus/backoffice/internal/orderid"
	orderdomain "github.com/merchhaus/backoffice/internal/pendingorder/domain"
	privacydomain "github.com/merchhaus/backoffice/internal/privacyrule/domain"
	"github.com/merchhaus/backoffice/internal/roles"
	"github.com/merchhaus/backoffice/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const duplicateShippedOffset = time.Hour

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	IDs          *orderid.Registry
	Repo         orderdomain.Repository
	CampaignRepo campaigndomain.Repository
	CompanyRepo  companydomain.Repository
	Privacy      privacydomain.Service
	Publisher    events.Publisher
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	ids          *orderid.Registry
	repo         orderdomain.Repository
	campaignRepo campaigndomain.Repository
	companyRepo  companydomain.Repository
	privacy      privacydomain.Service
	publisher    events.Publisher
}

func New(p Params) orderdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("pendingorder.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		ids:          p.IDs,
		repo:         p.Repo,
		campaignRepo: p.CampaignRepo,
		companyRepo:  p.CompanyRepo,
		privacy:      p.Privacy,
		publisher:    p.Publisher,
	}
}

func (s *Service) Insert(ctx context.Context, actor orderdomain.Actor, req orderdomain.InsertRequest) ([]orderdomain.PendingOrder, error) {
	campaignID, err := snowflake.ParseString(req.CampaignID)
	if err != nil {
		return nil, orderdomain.ErrNoCampaign
	}
	campaign, err := s.campaignRepo.FindByID(ctx, s.db, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, orderdomain.ErrNoCampaign
	}

	// Hidden or out-of-window campaigns only accept orders from admins.
	if actor.Role != roles.Admin {
		if campaign.IsHidden || !campaign.ActiveAt(s.clock.Now().UTC()) {
			return nil, orderdomain.ErrCampaignClosed
		}
	}

	environment := req.Environment
	if environment == "" {
		environment = campaign.Environment
	}

	// Orders belong to the campaign's company, not the actor's: an admin
	// ordering on behalf of a client must not detach the order from the
	// client's company and customer number.
	customerID := s.customerRef(ctx, campaign.CompanyID)
	orders := s.buildOrders(actor, orderid.TypeCampaign, environment, campaign.CompanyID, customerID, req.Orders)
	for i := range orders {
		orders[i].CampaignID = &campaignID
	}

	if err := s.repo.InsertBatch(ctx, s.db, orders); err != nil {
		return nil, err
	}

	s.publishPendingOrders(ctx, environment)
	s.publishQuota(ctx, campaignID.String(), environment)

	s.log.Info("pending orders inserted",
		zap.Int("count", len(orders)),
		zap.String("campaign_id", campaignID.String()))
	return orders, nil
}

func (s *Service) InsertCatalogue(ctx context.Context, actor orderdomain.Actor, req orderdomain.InsertCatalogueRequest) ([]orderdomain.PendingOrder, error) {
	customerID := s.customerRef(ctx, actor.CompanyID)
	orders := s.buildOrders(actor, orderid.TypeCatalogue, req.Environment, actor.CompanyID, customerID, req.Orders)

	if err := s.repo.InsertBatch(ctx, s.db, orders); err != nil {
		return nil, err
	}

	s.publishPendingOrders(ctx, req.Environment)

	s.log.Info("catalogue orders inserted", zap.Int("count", len(orders)))
	return orders, nil
}

func (s *Service) Duplicate(ctx context.Context, actor orderdomain.Actor, req orderdomain.DuplicateRequest) ([]orderdomain.PendingOrder, error) {
	switch actor.Role {
	case roles.Admin, roles.CompanyAdministrator, roles.CampaignManager:
	default:
		return nil, orderdomain.ErrDuplicateRole
	}

	postedIDs := make([]string, 0, len(req.Orders))
	shippedByID := make(map[string]*time.Time, len(req.Orders))
	for _, in := range req.Orders {
		postedIDs = append(postedIDs, in.OrderID)
		shippedByID[in.OrderID] = in.Shipped
	}

	originals, err := s.repo.FindByPostedIDs(ctx, s.db, postedIDs)
	if err != nil {
		return nil, err
	}
	// Unknown order IDs are silently dropped; only a batch that matches
	// nothing at all is an error.
	if len(originals) == 0 {
		return nil, orderdomain.ErrNotFound
	}

	if actor.Role != roles.Admin {
		for _, o := range originals {
			if actor.CompanyID == nil || o.CompanyID == nil || *o.CompanyID != *actor.CompanyID {
				return nil, orderdomain.ErrForeignOrders
			}
		}
	}

	now := s.clock.Now().UTC()
	copies := make([]orderdomain.PendingOrder, 0, len(originals))
	for _, o := range originals {
		shipped := now.Add(duplicateShippedOffset)
		if sub := shippedByID[o.PostedOrderID]; sub != nil {
			shipped = sub.UTC().Add(duplicateShippedOffset)
		}

		environment := req.Environment
		if environment == "" {
			environment = o.Environment
		}

		copies = append(copies, orderdomain.PendingOrder{
			ID:                s.genID.Generate(),
			PostedOrderID:     s.ids.Next(orderid.TypeDuplicate),
			OrderType:         int(orderid.TypeDuplicate),
			CampaignID:        o.CampaignID,
			CompanyID:         o.CompanyID,
			OwnerID:           &actor.ID,
			CustomerID:        o.CustomerID,
			CreatedBy:         actor.Email,
			CreatedByFullName: actor.FullName,
			UpdatedBy:         actor.Email,
			ShippingAddresses: o.ShippingAddresses,
			BillingAddresses:  o.BillingAddresses,
			Items:             o.Items,
			PaymentType:       o.PaymentType,
			PaymentTarget:     o.PaymentTarget,
			Discount:          o.Discount,
			Platform:          o.Platform,
			Language:          o.Language,
			Shipped:           &shipped,
			Deliverydate:      &shipped,
			Environment:       environment,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	if err := s.repo.InsertBatch(ctx, s.db, copies); err != nil {
		return nil, err
	}

	environment := req.Environment
	if environment == "" && len(copies) > 0 {
		environment = copies[0].Environment
	}
	s.publishPendingOrders(ctx, environment)

	// One quota event per distinct campaign, dispatched concurrently and
	// awaited so the response is not sent before the worker is notified.
	campaigns := make(map[snowflake.ID]string)
	for _, c := range copies {
		if c.CampaignID != nil {
			campaigns[*c.CampaignID] = c.Environment
		}
	}
	var wg sync.WaitGroup
	for id, env := range campaigns {
		wg.Add(1)
		go func(campaignID, environment string) {
			defer wg.Done()
			s.publishQuota(ctx, campaignID, environment)
		}(id.String(), env)
	}
	wg.Wait()

	s.log.Info("pending orders duplicated",
		zap.Int("count", len(copies)),
		zap.Int("campaigns", len(campaigns)))
	return copies, nil
}

func (s *Service) Update(ctx context.Context, actor orderdomain.Actor, id string, req orderdomain.UpdateRequest) (*orderdomain.PendingOrder, error) {
	orderID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, orderdomain.ErrNotFound
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}

	if req.ShippingAddresses != nil {
		order.ShippingAddresses = req.ShippingAddresses
	}
	if req.BillingAddresses != nil {
		order.BillingAddresses = req.BillingAddresses
	}
	if req.Items != nil {
		order.Items = req.Items
	}
	if req.Shipped != nil {
		order.Shipped = req.Shipped
	}
	if req.Deliverydate != nil {
		order.Deliverydate = req.Deliverydate
	}
	if req.OrderStatus != nil {
		order.OrderStatus = *req.OrderStatus
	}
	order.UpdatedBy = actor.Email
	order.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return nil, err
	}

	s.publishPendingOrders(ctx, order.Environment)
	return order, nil
}

func (s *Service) Get(ctx context.Context, actor orderdomain.Actor, id string) (*orderdomain.PendingOrder, error) {
	orderID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, orderdomain.ErrNotFound
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}

	redacted, err := s.applyRedaction(ctx, actor, []orderdomain.PendingOrder{*order})
	if err != nil {
		return nil, err
	}
	return &redacted[0], nil
}

func (s *Service) List(ctx context.Context, actor orderdomain.Actor, req orderdomain.ListRequest) ([]orderdomain.PendingOrder, pagination.Meta, error) {
	q := orderdomain.ListQuery{ListRequest: req}
	switch actor.Role {
	case roles.Admin:
		// Admins see every company.
	case roles.CompanyAdministrator, roles.CampaignManager:
		q.CompanyID = actor.CompanyIDString()
		if q.CompanyID == "" {
			q.OwnerID = actor.ID.String()
		}
	default:
		q.OwnerID = actor.ID.String()
	}

	orders, total, err := s.repo.List(ctx, s.db, q)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	orders, err = s.applyRedaction(ctx, actor, orders)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return orders, pagination.BuildMeta(total, req.Params), nil
}

func (s *Service) Delete(ctx context.Context, actor orderdomain.Actor, id string) error {
	orderID, err := snowflake.ParseString(id)
	if err != nil {
		return orderdomain.ErrNotFound
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return orderdomain.ErrNotFound
	}
	if order.Locked() || order.OrderType == int(orderid.TypeCatalogue) {
		return orderdomain.ErrOrderLocked
	}

	if err := s.repo.Delete(ctx, s.db, orderID); err != nil {
		return err
	}

	if order.CampaignID != nil {
		s.publishQuota(ctx, order.CampaignID.String(), order.Environment)
	}
	return nil
}

func (s *Service) buildOrders(actor orderdomain.Actor, typ orderid.OrderType, environment string, companyID *snowflake.ID, customerID string, inputs []orderdomain.OrderInput) []orderdomain.PendingOrder {
	now := s.clock.Now().UTC()
	ownerID := actor.ID

	orders := make([]orderdomain.PendingOrder, 0, len(inputs))
	for _, in := range inputs {
		orders = append(orders, orderdomain.PendingOrder{
			ID:                s.genID.Generate(),
			PostedOrderID:     s.ids.Next(typ),
			OrderType:         int(typ),
			CompanyID:         companyID,
			OwnerID:           &ownerID,
			CustomerID:        customerID,
			CreatedBy:         actor.Email,
			CreatedByFullName: actor.FullName,
			UpdatedBy:         actor.Email,
			ShippingAddresses: in.ShippingAddresses,
			BillingAddresses:  in.BillingAddresses,
			Items:             in.Items,
			Shipped:           in.Shipped,
			Deliverydate:      in.Deliverydate,
			Environment:       environment,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return orders
}

// customerRef resolves the shop-system customer number stamped on orders.
// Orders for a company without a record keep an empty reference.
func (s *Service) customerRef(ctx context.Context, companyID *snowflake.ID) string {
	if companyID == nil {
		return ""
	}
	company, err := s.companyRepo.FindByID(ctx, s.db, *companyID)
	if err != nil {
		s.log.Warn("resolve customer reference", zap.String("company_id", companyID.String()), zap.Error(err))
		return ""
	}
	if company == nil {
		return ""
	}
	return company.CustomerID
}

// applyRedaction masks recipient data when a privacy rule is enabled for the
// actor's role. Orders the actor owns are always returned unmasked.
func (s *Service) applyRedaction(ctx context.Context, actor orderdomain.Actor, orders []orderdomain.PendingOrder) ([]orderdomain.PendingOrder, error) {
	enabled, err := s.privacy.RedactionEnabled(ctx, actor.CompanyIDString(), actor.Role, appmodules.Orders)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return orders, nil
	}

	out := make([]orderdomain.PendingOrder, len(orders))
	for i, o := range orders {
		if o.OwnerID != nil && *o.OwnerID == actor.ID {
			out[i] = o
			continue
		}
		out[i] = orderdomain.Redact(o)
	}
	return out, nil
}

// publish failures are logged and swallowed: the write has already
// committed, and the workers reconcile on their next run.
func (s *Service) publishPendingOrders(ctx context.Context, environment string) {
	event := events.PendingOrdersEvent{Environment: environment}
	if err := s.publisher.Publish(ctx, events.TopicPendingOrders, event); err != nil {
		s.log.Warn("publish pending-orders event", zap.Error(err))
	}
}

func (s *Service) publishQuota(ctx context.Context, campaignID, environment string) {
	event := events.QuotaEvent{CampaignID: campaignID, Environment: environment}
	if err := s.publisher.Publish(ctx, events.TopicQuota, event); err != nil {
		s.log.Warn("publish quota event", zap.String("campaign_id", campaignID), zap.Error(err))
	}
}
