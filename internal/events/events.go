// Package events publishes the domain notifications downstream workers
// consume: order-queue wakeups and campaign quota recalculations.
package events

import "context"

const (
	TopicPendingOrders = "pending-orders"
	TopicQuota         = "quota"
)

// PendingOrdersEvent wakes the order submission worker for an environment.
type PendingOrdersEvent struct {
	Environment string `json:"environment"`
}

// QuotaEvent requests a quota recalculation for a single campaign.
type QuotaEvent struct {
	CampaignID  string `json:"campaignId"`
	Environment string `json:"environment"`
}

// Publisher delivers an event payload to a topic. Implementations must be
// safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
