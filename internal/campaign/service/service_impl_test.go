package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	"github.com/merchhaus/backoffice/internal/campaign/repository"
	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/merchhaus/backoffice/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (campaigndomain.Service, *gorm.DB, *snowflake.Node, *events.Recorder) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&campaigndomain.Campaign{},
		&campaigndomain.CampaignOrderLimit{},
		&campaigndomain.CampaignQuota{},
		&campaigndomain.CampaignAddress{},
	))

	node, err := snowflake.NewNode(0)
	require.NoError(t, err)
	rec := events.NewRecorder()

	svc := New(Params{
		DB:        gdb,
		Log:       zaptest.NewLogger(t),
		GenID:     node,
		Clock:     clock.NewFakeClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)),
		Repo:      repository.Provide(),
		Publisher: rec,
	})
	return svc, gdb, node, rec
}

func TestUpsertRestoresDeletedCampaign(t *testing.T) {
	svc, gdb, node, _ := setupService(t)
	ctx := context.Background()
	companyID := node.Generate()

	req := campaigndomain.UpsertRequest{
		Name:        "spring-gifting",
		Type:        "seasonal",
		CompanyID:   companyID.String(),
		Environment: "production",
	}

	campaign, created, err := svc.Upsert(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, svc.Delete(ctx, campaign.ID.String()))

	restored, created, err := svc.Upsert(ctx, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, campaign.ID, restored.ID)

	var count int64
	require.NoError(t, gdb.Model(&campaigndomain.Campaign{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertSameNameDifferentCompanyCreates(t *testing.T) {
	svc, _, node, _ := setupService(t)
	ctx := context.Background()

	first, created, err := svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "spring-gifting", Type: "seasonal", CompanyID: node.Generate().String(),
	})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "spring-gifting", Type: "seasonal", CompanyID: node.Generate().String(),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateRequestsQuotaRecalculation(t *testing.T) {
	svc, _, node, rec := setupService(t)
	ctx := context.Background()
	companyID := node.Generate()

	campaign, _, err := svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "spring-gifting", Type: "seasonal", CompanyID: companyID.String(), Environment: "production",
	})
	require.NoError(t, err)
	require.Empty(t, rec.ByTopic(events.TopicQuota))

	name := "spring-gifting-2024"
	updated, err := svc.Update(ctx, campaign.ID.String(), campaigndomain.UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	quota := rec.ByTopic(events.TopicQuota)
	require.Len(t, quota, 1)
	assert.Equal(t, events.QuotaEvent{CampaignID: campaign.ID.String(), Environment: "production"}, quota[0].Payload)
}

func TestSetOrderLimitUpserts(t *testing.T) {
	svc, _, node, _ := setupService(t)
	ctx := context.Background()

	campaign, _, err := svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "spring-gifting", Type: "seasonal", CompanyID: node.Generate().String(),
	})
	require.NoError(t, err)

	limit, created, err := svc.SetOrderLimit(ctx, campaign.ID.String(), 50)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 50, limit.OrderLimit)

	raised, created, err := svc.SetOrderLimit(ctx, campaign.ID.String(), 75)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, limit.ID, raised.ID)
	assert.Equal(t, 75, raised.OrderLimit)
}

func TestListForCompanyJoinsLimitAndQuota(t *testing.T) {
	svc, gdb, node, _ := setupService(t)
	ctx := context.Background()
	companyID := node.Generate()

	campaign, _, err := svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "spring-gifting", Type: "seasonal", CompanyID: companyID.String(),
	})
	require.NoError(t, err)

	_, _, err = svc.SetOrderLimit(ctx, campaign.ID.String(), 100)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&campaigndomain.CampaignQuota{
		ID: node.Generate(), CampaignID: campaign.ID, TotalOrdered: 42,
	}).Error)

	views, meta, err := svc.ListForCompany(ctx, campaigndomain.ListRequest{CompanyID: companyID.String()})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), meta.Total)
	assert.Equal(t, 100, views[0].OrderLimit)
	assert.Equal(t, 42, views[0].TotalOrderedQuota)
}

func TestListForCompanyHidesHiddenCampaigns(t *testing.T) {
	svc, _, node, _ := setupService(t)
	ctx := context.Background()
	companyID := node.Generate()

	_, _, err := svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "visible", Type: "seasonal", CompanyID: companyID.String(),
	})
	require.NoError(t, err)
	_, _, err = svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "internal", Type: "seasonal", CompanyID: companyID.String(), IsHidden: true,
	})
	require.NoError(t, err)

	views, _, err := svc.ListForCompany(ctx, campaigndomain.ListRequest{CompanyID: companyID.String()})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "visible", views[0].Name)

	views, _, err = svc.ListForCompany(ctx, campaigndomain.ListRequest{CompanyID: companyID.String(), IncludeHidden: true})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestAddressLifecycle(t *testing.T) {
	svc, _, node, _ := setupService(t)
	ctx := context.Background()

	campaign, _, err := svc.Upsert(ctx, campaigndomain.UpsertRequest{
		Name: "spring-gifting", Type: "seasonal", CompanyID: node.Generate().String(),
	})
	require.NoError(t, err)

	address, err := svc.AddAddress(ctx, campaign.ID.String(), campaigndomain.AddressRequest{
		FirstName: "Max", LastName: "Mustermann", Email: "max@example.com",
		Place: "Berlin", Street: "Unter den Linden 1", ZipCode: "10117", Country: "DE",
	})
	require.NoError(t, err)

	addresses, err := svc.ListAddresses(ctx, campaign.ID.String())
	require.NoError(t, err)
	require.Len(t, addresses, 1)

	err = svc.DeleteAddress(ctx, campaign.ID.String(), node.Generate().String())
	assert.ErrorIs(t, err, campaigndomain.ErrAddressNotFound)

	require.NoError(t, svc.DeleteAddress(ctx, campaign.ID.String(), address.ID.String()))
	addresses, err = svc.ListAddresses(ctx, campaign.ID.String())
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
