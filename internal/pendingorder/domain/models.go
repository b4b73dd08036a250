package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Address is one recipient on an order, used for both the shipping and the
// billing snapshot.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Place     string `json:"place"`
	Street    string `json:"street"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// OrderItem is one article position on an order.
type OrderItem struct {
	ArticleID string  `json:"articleId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// PendingOrder is an order waiting to be submitted to the shop system. The
// submission worker flips IsQueued and IsPosted as it progresses.
type PendingOrder struct {
	ID                snowflake.ID                   `gorm:"primaryKey" json:"id"`
	PostedOrderID     string                         `gorm:"column:posted_order_id;type:text;not null" json:"postedOrderId"`
	OrderType         int                            `gorm:"column:order_type;not null;default:0" json:"orderType"`
	CampaignID        *snowflake.ID                  `gorm:"column:campaign_id" json:"campaignId"`
	CompanyID         *snowflake.ID                  `gorm:"column:company_id" json:"companyId"`
	OwnerID           *snowflake.ID                  `gorm:"column:owner_id" json:"ownerId"`
	CustomerID        string                         `gorm:"column:customer_id;type:text" json:"customerId"`
	CreatedBy         string                         `gorm:"column:created_by;type:text;not null" json:"createdBy"`
	CreatedByFullName string                         `gorm:"column:created_by_full_name;type:text;not null" json:"createdByFullName"`
	UpdatedBy         string                         `gorm:"column:updated_by;type:text;not null" json:"updatedBy"`
	ShippingAddresses datatypes.JSONSlice[Address]   `gorm:"column:shipping_addresses" json:"shippingAddresses"`
	BillingAddresses  datatypes.JSONSlice[Address]   `gorm:"column:billing_addresses" json:"billingAddresses"`
	Items             datatypes.JSONSlice[OrderItem] `gorm:"column:items" json:"items"`
	PaymentType       int                            `gorm:"column:payment_type;not null;default:0" json:"paymentType"`
	PaymentTarget     int                            `gorm:"column:payment_target;not null;default:0" json:"paymentTarget"`
	Discount          float64                        `gorm:"not null;default:0" json:"discount"`
	OrderStatus       int                            `gorm:"column:order_status;not null;default:0" json:"orderStatus"`
	Inetorderno       int                            `gorm:"column:inetorderno;not null;default:0" json:"inetorderno"`
	Platform          int                            `gorm:"not null;default:0" json:"platform"`
	Language          int                            `gorm:"not null;default:0" json:"language"`
	IsPosted          bool                           `gorm:"column:is_posted;not null;default:false" json:"isPosted"`
	IsQueued          bool                           `gorm:"column:is_queued;not null;default:false" json:"isQueued"`
	Shipped           *time.Time                     `gorm:"column:shipped" json:"shipped"`
	Deliverydate      *time.Time                     `gorm:"column:deliverydate" json:"deliverydate"`
	Environment       string                         `gorm:"type:text;not null" json:"environment"`
	CreatedAt         time.Time                      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt         time.Time                      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt         gorm.DeletedAt                 `gorm:"index" json:"-"`
}

func (PendingOrder) TableName() string { return "pending_orders" }

func (o *PendingOrder) OwnerIDString() string {
	if o.OwnerID == nil {
		return ""
	}
	return o.OwnerID.String()
}

func (o *PendingOrder) CompanyIDString() string {
	if o.CompanyID == nil {
		return ""
	}
	return o.CompanyID.String()
}

// Locked reports whether the order has been handed to the shop system and
// can no longer be removed.
func (o *PendingOrder) Locked() bool {
	return o.IsPosted && o.IsQueued
}
