package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	campaignrepository "github.com/merchhaus/backoffice/internal/campaign/repository"
	"github.com/merchhaus/backoffice/internal/clock"
	companydomain "github.com/merchhaus/backoffice/internal/company/domain"
	companyrepository "github.com/merchhaus/backoffice/internal/company/repository"
	"github.com/merchhaus/backoffice/internal/events"
	"github.com/merchhaus/backoffice/internal/orderid"
	orderdomain "github.com/merchhaus/backoffice/internal/pendingorder/domain"
	"github.com/merchhaus/backoffice/internal/pendingorder/repository"
	privacydomain "github.com/merchhaus/backoffice/internal/privacyrule/domain"
	"github.com/merchhaus/backoffice/internal/roles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type privacyStub struct {
	enabled bool
}

func (p *privacyStub) Create(ctx context.Context, req privacydomain.CreateRequest) (*privacydomain.PrivacyRule, error) {
	return nil, nil
}

func (p *privacyStub) ListForCompany(ctx context.Context, companyID string) ([]privacydomain.PrivacyRule, error) {
	return nil, nil
}

func (p *privacyStub) Update(ctx context.Context, id string, req privacydomain.UpdateRequest) (*privacydomain.PrivacyRule, error) {
	return nil, nil
}

func (p *privacyStub) Delete(ctx context.Context, id string) error {
	return nil
}

func (p *privacyStub) RedactionEnabled(ctx context.Context, companyID, role, module string) (bool, error) {
	return p.enabled, nil
}

type fixture struct {
	svc     orderdomain.Service
	db      *gorm.DB
	node    *snowflake.Node
	clk     *clock.FakeClock
	rec     *events.Recorder
	privacy *privacyStub
}

func setup(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&orderdomain.PendingOrder{},
		&campaigndomain.Campaign{},
		&companydomain.Company{},
	))

	node, err := snowflake.NewNode(0)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	rec := events.NewRecorder()
	privacy := &privacyStub{}

	svc := New(Params{
		DB:           gdb,
		Log:          zaptest.NewLogger(t),
		GenID:        node,
		Clock:        clk,
		IDs:          orderid.NewRegistry(clk),
		Repo:         repository.Provide(),
		CampaignRepo: campaignrepository.Provide(),
		CompanyRepo:  companyrepository.Provide(),
		Privacy:      privacy,
		Publisher:    rec,
	})

	return &fixture{svc: svc, db: gdb, node: node, clk: clk, rec: rec, privacy: privacy}
}

func (f *fixture) createCompany(t *testing.T, customerID string) *companydomain.Company {
	t.Helper()
	company := &companydomain.Company{
		ID:         f.node.Generate(),
		Name:       "ACME GmbH",
		CustomerID: customerID,
	}
	require.NoError(t, f.db.Create(company).Error)
	return company
}

func (f *fixture) createCampaign(t *testing.T, companyID *snowflake.ID, environment string) *campaigndomain.Campaign {
	t.Helper()
	campaign := &campaigndomain.Campaign{
		ID:          f.node.Generate(),
		CompanyID:   companyID,
		Name:        "spring-gifting",
		Type:        "seasonal",
		Environment: environment,
	}
	require.NoError(t, f.db.Create(campaign).Error)
	return campaign
}

func campaignActor(f *fixture, role string, companyID *snowflake.ID) orderdomain.Actor {
	return orderdomain.Actor{
		ID:        f.node.Generate(),
		Email:     "jane@example.com",
		FullName:  "Jane Doe",
		Role:      role,
		CompanyID: companyID,
	}
}

func oneOrder() orderdomain.OrderInput {
	return orderdomain.OrderInput{
		ShippingAddresses: []orderdomain.Address{{
			FirstName: "Max",
			LastName:  "Mustermann",
			Email:     "max@example.com",
			Place:     "Berlin",
			Street:    "Unter den Linden 1",
			ZipCode:   "10117",
			Country:   "DE",
		}},
		BillingAddresses: []orderdomain.Address{{
			FirstName: "Erika",
			LastName:  "Mustermann",
			Email:     "invoice@example.com",
			Place:     "Hamburg",
			Street:    "Deichstrasse 9",
			ZipCode:   "20459",
			Country:   "DE",
		}},
		Items: []orderdomain.OrderItem{{ArticleID: "A-100", Name: "Mug", Quantity: 2, Price: 9.99}},
	}
}

func duplicateOf(orders ...orderdomain.PendingOrder) orderdomain.DuplicateRequest {
	req := orderdomain.DuplicateRequest{}
	for _, o := range orders {
		req.Orders = append(req.Orders, orderdomain.DuplicateOrderInput{OrderID: o.PostedOrderID, Shipped: o.Shipped})
	}
	return req
}

func TestInsertStampsAndNotifies(t *testing.T) {
	f := setup(t)
	company := f.createCompany(t, "CUST-77")
	campaign := f.createCampaign(t, &company.ID, "production")
	actor := campaignActor(f, roles.Employee, &company.ID)

	orders, err := f.svc.Insert(context.Background(), actor, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder(), oneOrder()},
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	for _, o := range orders {
		assert.NotEmpty(t, o.PostedOrderID)
		assert.Equal(t, int(orderid.TypeCampaign), o.OrderType)
		require.NotNil(t, o.CampaignID)
		assert.Equal(t, campaign.ID, *o.CampaignID)
		require.NotNil(t, o.CompanyID)
		assert.Equal(t, company.ID, *o.CompanyID)
		assert.Equal(t, "CUST-77", o.CustomerID)
		assert.Equal(t, actor.Email, o.CreatedBy)
		assert.Equal(t, actor.FullName, o.CreatedByFullName)
		assert.Len(t, o.BillingAddresses, 1)
		// Environment falls back to the campaign's when the request omits it.
		assert.Equal(t, "production", o.Environment)
	}

	assert.Len(t, f.rec.ByTopic(events.TopicPendingOrders), 1)
	quota := f.rec.ByTopic(events.TopicQuota)
	require.Len(t, quota, 1)
	assert.Equal(t, events.QuotaEvent{CampaignID: campaign.ID.String(), Environment: "production"}, quota[0].Payload)
}

func TestInsertStampsCampaignCompanyForAdmins(t *testing.T) {
	f := setup(t)
	company := f.createCompany(t, "CUST-12")
	campaign := f.createCampaign(t, &company.ID, "production")

	// Admins carry no company of their own; the order still belongs to the
	// campaign's company.
	admin := campaignActor(f, roles.Admin, nil)
	orders, err := f.svc.Insert(context.Background(), admin, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].CompanyID)
	assert.Equal(t, company.ID, *orders[0].CompanyID)
	assert.Equal(t, "CUST-12", orders[0].CustomerID)
}

func TestInsertUnknownCampaign(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	actor := campaignActor(f, roles.Employee, &companyID)

	_, err := f.svc.Insert(context.Background(), actor, orderdomain.InsertRequest{
		CampaignID: f.node.Generate().String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	assert.ErrorIs(t, err, orderdomain.ErrNoCampaign)
}

func TestInsertRejectsClosedCampaignForNonAdmins(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	ended := f.clk.Now().Add(-24 * time.Hour)
	campaign := &campaigndomain.Campaign{
		ID:          f.node.Generate(),
		CompanyID:   &companyID,
		Name:        "expired",
		Type:        "seasonal",
		Environment: "production",
		EndDate:     &ended,
	}
	require.NoError(t, f.db.Create(campaign).Error)

	req := orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	}

	_, err := f.svc.Insert(context.Background(), campaignActor(f, roles.Employee, &companyID), req)
	assert.ErrorIs(t, err, orderdomain.ErrCampaignClosed)

	// Admins may still place orders against a closed campaign.
	_, err = f.svc.Insert(context.Background(), campaignActor(f, roles.Admin, &companyID), req)
	assert.NoError(t, err)
}

func TestInsertCatalogueDrawsNoQuota(t *testing.T) {
	f := setup(t)
	company := f.createCompany(t, "CUST-31")
	actor := campaignActor(f, roles.Employee, &company.ID)

	orders, err := f.svc.InsertCatalogue(context.Background(), actor, orderdomain.InsertCatalogueRequest{
		Environment: "production",
		Orders:      []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int(orderid.TypeCatalogue), orders[0].OrderType)
	assert.Equal(t, "CUST-31", orders[0].CustomerID)

	assert.Len(t, f.rec.ByTopic(events.TopicPendingOrders), 1)
	assert.Empty(t, f.rec.ByTopic(events.TopicQuota))
}

func TestDuplicateRequiresPrivilegedRole(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	actor := campaignActor(f, roles.Employee, &companyID)

	_, err := f.svc.Duplicate(context.Background(), actor, orderdomain.DuplicateRequest{
		Orders: []orderdomain.DuplicateOrderInput{{OrderID: "OR-0000000000"}},
	})
	assert.ErrorIs(t, err, orderdomain.ErrDuplicateRole)
}

func TestDuplicateUnknownOrder(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	actor := campaignActor(f, roles.Admin, &companyID)

	_, err := f.svc.Duplicate(context.Background(), actor, orderdomain.DuplicateRequest{
		Orders: []orderdomain.DuplicateOrderInput{{OrderID: "OR-0000000000"}},
	})
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

func TestDuplicateSkipsUnknownOrders(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	campaign := f.createCampaign(t, &companyID, "production")
	creator := campaignActor(f, roles.Employee, &companyID)

	originals, err := f.svc.Insert(context.Background(), creator, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)

	actor := campaignActor(f, roles.Admin, &companyID)
	copies, err := f.svc.Duplicate(context.Background(), actor, orderdomain.DuplicateRequest{
		Orders: []orderdomain.DuplicateOrderInput{
			{OrderID: originals[0].PostedOrderID},
			{OrderID: "OR-0000000000"},
		},
	})
	require.NoError(t, err)

	// The unknown ID is dropped, the rest of the batch goes through.
	require.Len(t, copies, 1)
	assert.Equal(t, originals[0].CampaignID, copies[0].CampaignID)
}

func TestDuplicateRejectsForeignOrders(t *testing.T) {
	f := setup(t)
	ownCompany := f.node.Generate()
	otherCompany := f.node.Generate()
	campaign := f.createCampaign(t, &otherCompany, "production")
	creator := campaignActor(f, roles.Employee, &otherCompany)

	orders, err := f.svc.Insert(context.Background(), creator, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)

	actor := campaignActor(f, roles.CompanyAdministrator, &ownCompany)
	_, err = f.svc.Duplicate(context.Background(), actor, duplicateOf(orders[0]))
	assert.ErrorIs(t, err, orderdomain.ErrForeignOrders)
}

func TestDuplicateShiftsSubmittedShipmentByOneHour(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	campaign := f.createCampaign(t, &companyID, "production")
	creator := campaignActor(f, roles.Employee, &companyID)

	stored := time.Date(2024, time.April, 2, 8, 0, 0, 0, time.UTC)
	input := oneOrder()
	input.Shipped = &stored

	originals, err := f.svc.Insert(context.Background(), creator, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{input, oneOrder()},
	})
	require.NoError(t, err)

	// The shift applies to the shipped date submitted with the request, not
	// the one on the stored order.
	submitted := time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC)
	actor := campaignActor(f, roles.CampaignManager, &companyID)
	copies, err := f.svc.Duplicate(context.Background(), actor, orderdomain.DuplicateRequest{
		Orders: []orderdomain.DuplicateOrderInput{
			{OrderID: originals[0].PostedOrderID, Shipped: &submitted},
			{OrderID: originals[1].PostedOrderID},
		},
	})
	require.NoError(t, err)
	require.Len(t, copies, 2)

	shippedAt := make(map[string]time.Time, len(copies))
	for _, c := range copies {
		assert.Equal(t, int(orderid.TypeDuplicate), c.OrderType)
		require.NotNil(t, c.OwnerID)
		assert.Equal(t, actor.ID, *c.OwnerID)
		assert.Equal(t, 0, c.OrderStatus)
		require.NotNil(t, c.Shipped)
		require.NotNil(t, c.Deliverydate)
		assert.True(t, c.Shipped.Equal(*c.Deliverydate))
		shippedAt[c.Shipped.UTC().Format(time.RFC3339)] = *c.Shipped
	}

	// One hour past the submitted date, and one hour past now when no date
	// was submitted.
	assert.Contains(t, shippedAt, submitted.Add(time.Hour).Format(time.RFC3339))
	assert.Contains(t, shippedAt, f.clk.Now().Add(time.Hour).Format(time.RFC3339))
}

func TestDuplicateNotifiesQuotaPerCampaign(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	first := f.createCampaign(t, &companyID, "production")
	second := &campaigndomain.Campaign{
		ID:          f.node.Generate(),
		CompanyID:   &companyID,
		Name:        "autumn-gifting",
		Type:        "seasonal",
		Environment: "production",
	}
	require.NoError(t, f.db.Create(second).Error)

	creator := campaignActor(f, roles.Employee, &companyID)
	a, err := f.svc.Insert(context.Background(), creator, orderdomain.InsertRequest{
		CampaignID: first.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder(), oneOrder()},
	})
	require.NoError(t, err)
	b, err := f.svc.Insert(context.Background(), creator, orderdomain.InsertRequest{
		CampaignID: second.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)

	before := len(f.rec.ByTopic(events.TopicQuota))

	actor := campaignActor(f, roles.Admin, &companyID)
	_, err = f.svc.Duplicate(context.Background(), actor, duplicateOf(a[0], a[1], b[0]))
	require.NoError(t, err)

	// Three duplicated orders over two campaigns fire exactly two events.
	assert.Len(t, f.rec.ByTopic(events.TopicQuota), before+2)
}

func TestListHidesProgressedOrders(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	campaign := f.createCampaign(t, &companyID, "production")
	actor := campaignActor(f, roles.Employee, &companyID)

	orders, err := f.svc.Insert(context.Background(), actor, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder(), oneOrder(), oneOrder()},
	})
	require.NoError(t, err)

	// Posted and queued with a progressed status drops out of the listing;
	// posted and queued at status zero stays.
	require.NoError(t, f.db.Model(&orderdomain.PendingOrder{}).Where("id = ?", orders[0].ID).
		Updates(map[string]any{"is_posted": true, "is_queued": true, "order_status": 1}).Error)
	require.NoError(t, f.db.Model(&orderdomain.PendingOrder{}).Where("id = ?", orders[1].ID).
		Updates(map[string]any{"is_posted": true, "is_queued": true}).Error)

	listed, meta, err := f.svc.List(context.Background(), actor, orderdomain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, int64(2), meta.Total)
}

func TestListScopesCompanyRolesToOwnCompany(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	otherCompany := f.node.Generate()
	campaign := f.createCampaign(t, &companyID, "production")
	otherCampaign := &campaigndomain.Campaign{
		ID:          f.node.Generate(),
		CompanyID:   &otherCompany,
		Name:        "other",
		Type:        "seasonal",
		Environment: "production",
	}
	require.NoError(t, f.db.Create(otherCampaign).Error)

	_, err := f.svc.Insert(context.Background(), campaignActor(f, roles.Employee, &companyID), orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)
	_, err = f.svc.Insert(context.Background(), campaignActor(f, roles.Employee, &otherCompany), orderdomain.InsertRequest{
		CampaignID: otherCampaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)

	// A campaign manager sees the whole company, including colleagues'
	// orders, but nothing from the other company.
	scoped, _, err := f.svc.List(context.Background(), campaignActor(f, roles.CampaignManager, &companyID), orderdomain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, scoped, 1)

	all, _, err := f.svc.List(context.Background(), campaignActor(f, roles.Admin, nil), orderdomain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListScopesUsersToOwnOrders(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	campaign := f.createCampaign(t, &companyID, "production")

	owner := campaignActor(f, roles.User, &companyID)
	colleague := campaignActor(f, roles.User, &companyID)

	mine, err := f.svc.Insert(context.Background(), owner, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)
	_, err = f.svc.Insert(context.Background(), colleague, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)

	// Regular users never see a colleague's orders, company or not.
	listed, _, err := f.svc.List(context.Background(), owner, orderdomain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine[0].ID, listed[0].ID)

	// A user detached from any company must not fall through to an
	// unscoped listing.
	stray := campaignActor(f, roles.User, nil)
	listed, _, err = f.svc.List(context.Background(), stray, orderdomain.ListRequest{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestRedactionSkipsOwnOrders(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	campaign := f.createCampaign(t, &companyID, "production")

	owner := campaignActor(f, roles.CampaignManager, &companyID)
	colleague := campaignActor(f, roles.Employee, &companyID)

	_, err := f.svc.Insert(context.Background(), owner, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)
	_, err = f.svc.Insert(context.Background(), colleague, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)

	f.privacy.enabled = true

	listed, _, err := f.svc.List(context.Background(), owner, orderdomain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, listed, 2)

	for _, o := range listed {
		addr := o.ShippingAddresses[0]
		billing := o.BillingAddresses[0]
		if o.OwnerID != nil && *o.OwnerID == owner.ID {
			assert.Equal(t, "max@example.com", addr.Email)
			assert.Equal(t, "Berlin", addr.Place)
			assert.Equal(t, "invoice@example.com", billing.Email)
		} else {
			assert.Equal(t, "***@example.com", addr.Email)
			assert.Equal(t, "******", addr.Place)
			assert.Equal(t, "*******@example.com", billing.Email)
			assert.Equal(t, "*******", billing.Place)
		}
	}
}

func TestDeleteRefusesLockedAndCatalogueOrders(t *testing.T) {
	f := setup(t)
	companyID := f.node.Generate()
	campaign := f.createCampaign(t, &companyID, "production")
	actor := campaignActor(f, roles.Employee, &companyID)

	orders, err := f.svc.Insert(context.Background(), actor, orderdomain.InsertRequest{
		CampaignID: campaign.ID.String(),
		Orders:     []orderdomain.OrderInput{oneOrder(), oneOrder()},
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&orderdomain.PendingOrder{}).Where("id = ?", orders[0].ID).
		Updates(map[string]any{"is_posted": true, "is_queued": true}).Error)
	err = f.svc.Delete(context.Background(), actor, orders[0].ID.String())
	assert.ErrorIs(t, err, orderdomain.ErrOrderLocked)

	catalogue, err := f.svc.InsertCatalogue(context.Background(), actor, orderdomain.InsertCatalogueRequest{
		Environment: "production",
		Orders:      []orderdomain.OrderInput{oneOrder()},
	})
	require.NoError(t, err)
	err = f.svc.Delete(context.Background(), actor, catalogue[0].ID.String())
	assert.ErrorIs(t, err, orderdomain.ErrOrderLocked)

	before := len(f.rec.ByTopic(events.TopicQuota))
	require.NoError(t, f.svc.Delete(context.Background(), actor, orders[1].ID.String()))
	assert.Len(t, f.rec.ByTopic(events.TopicQuota), before+1)

	got, err := f.svc.Get(context.Background(), actor, orders[1].ID.String())
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
	assert.Nil(t, got)
}
