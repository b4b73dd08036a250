package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/pkg/db/pagination"
)

// Actor is the authenticated user a call runs as. Authorization has already
// happened by the time a service method runs; the actor is still needed for
// stamping, company scoping and redaction.
type Actor struct {
	ID        snowflake.ID
	Email     string
	FullName  string
	Role      string
	CompanyID *snowflake.ID
}

func (a Actor) CompanyIDString() string {
	if a.CompanyID == nil {
		return ""
	}
	return a.CompanyID.String()
}

type Service interface {
	// Insert creates campaign orders in bulk and notifies the submission
	// worker and the quota worker.
	Insert(ctx context.Context, actor Actor, req InsertRequest) ([]PendingOrder, error)
	// InsertCatalogue creates catalogue orders; catalogue orders draw no
	// campaign quota.
	InsertCatalogue(ctx context.Context, actor Actor, req InsertCatalogueRequest) ([]PendingOrder, error)
	// Duplicate re-creates existing orders, addressed by their shop-system
	// order ID, with shipment pushed out one hour from the submitted date.
	// IDs matching no order are skipped; a batch matching nothing is a
	// not-found. Restricted to admins, company administrators and campaign
	// managers; non-admins may only duplicate orders of their own company.
	Duplicate(ctx context.Context, actor Actor, req DuplicateRequest) ([]PendingOrder, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateRequest) (*PendingOrder, error)
	Get(ctx context.Context, actor Actor, id string) (*PendingOrder, error)
	List(ctx context.Context, actor Actor, req ListRequest) ([]PendingOrder, pagination.Meta, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

// OrderInput is one order in a bulk insert.
type OrderInput struct {
	ShippingAddresses []Address   `json:"shippingAddresses" binding:"required"`
	BillingAddresses  []Address   `json:"billingAddresses"`
	Items             []OrderItem `json:"items" binding:"required"`
	Shipped           *time.Time  `json:"shipped"`
	Deliverydate      *time.Time  `json:"deliverydate"`
}

type InsertRequest struct {
	CampaignID  string       `json:"campaignId" binding:"required"`
	Environment string       `json:"environment"`
	Orders      []OrderInput `json:"orders" binding:"required,min=1"`
}

type InsertCatalogueRequest struct {
	Environment string       `json:"environment"`
	Orders      []OrderInput `json:"orders" binding:"required,min=1"`
}

// DuplicateOrderInput names one order to re-create by its shop-system order
// ID, paired with the shipped date the client submitted for it.
type DuplicateOrderInput struct {
	OrderID string     `json:"orderId" binding:"required"`
	Shipped *time.Time `json:"shipped"`
}

type DuplicateRequest struct {
	Orders      []DuplicateOrderInput `json:"orders" binding:"required,min=1,dive"`
	Environment string                `json:"environment"`
}

type UpdateRequest struct {
	ShippingAddresses []Address   `json:"shippingAddresses"`
	BillingAddresses  []Address   `json:"billingAddresses"`
	Items             []OrderItem `json:"items"`
	Shipped           *time.Time  `json:"shipped"`
	Deliverydate      *time.Time  `json:"deliverydate"`
	OrderStatus       *int        `json:"orderStatus"`
}

type ListRequest struct {
	pagination.Params
	CampaignID string `form:"campaignId"`
	Search     string `form:"search"`
}

var (
	ErrNotFound       = errors.New("PendingOrder not found")
	ErrForeignOrders  = errors.New("All orders must belong to the same company as the user")
	ErrDuplicateRole  = errors.New("Only admin, company admin or campaign manager can perform this action")
	ErrOrderLocked    = errors.New("order_locked")
	ErrNoCampaign     = errors.New("campaign_not_found")
	ErrCampaignClosed = errors.New("campaign_not_available")
)
