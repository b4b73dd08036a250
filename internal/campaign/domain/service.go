package domain

import (
	"context"
	"errors"
	"time"

	"github.com/merchhaus/backoffice/pkg/db/pagination"
)

type Service interface {
	Get(ctx context.Context, id string) (*Campaign, error)
	// Upsert creates a campaign, restoring a soft-deleted one with the same
	// name, type and company when it exists. The flag is true on create.
	Upsert(ctx context.Context, req UpsertRequest) (*Campaign, bool, error)
	// Update edits the campaign and requests a quota recalculation.
	Update(ctx context.Context, id string, req UpdateRequest) (*Campaign, error)
	Delete(ctx context.Context, id string) error
	// ListForCompany returns campaigns with their order limit and the total
	// quota already consumed by orders. Hidden campaigns are excluded unless
	// requested.
	ListForCompany(ctx context.Context, req ListRequest) ([]View, pagination.Meta, error)

	// SetOrderLimit upserts the campaign's order cap. The flag is true on
	// create.
	SetOrderLimit(ctx context.Context, campaignID string, limit int) (*CampaignOrderLimit, bool, error)

	AddAddress(ctx context.Context, campaignID string, req AddressRequest) (*CampaignAddress, error)
	ListAddresses(ctx context.Context, campaignID string) ([]CampaignAddress, error)
	DeleteAddress(ctx context.Context, campaignID, addressID string) error
}

type UpsertRequest struct {
	Name        string     `json:"name" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	CompanyID   string     `json:"companyId"`
	OwnerID     string     `json:"ownerId"`
	Environment string     `json:"environment"`
	IsHidden    bool       `json:"isHidden"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type UpdateRequest struct {
	Name      *string    `json:"name"`
	IsHidden  *bool      `json:"isHidden"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type ListRequest struct {
	pagination.Params
	CompanyID     string `form:"companyId"`
	IncludeHidden bool   `form:"includeHidden"`
}

// View is a campaign joined with its limit and consumed quota.
type View struct {
	Campaign
	OrderLimit        int `json:"orderLimit"`
	TotalOrderedQuota int `json:"totalOrderedQuota"`
}

type AddressRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Place     string `json:"place"`
	Street    string `json:"street"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

var (
	ErrNotFound        = errors.New("campaign_not_found")
	ErrAddressNotFound = errors.New("campaign_address_not_found")
	ErrInvalidCompany  = errors.New("invalid_company")
)
