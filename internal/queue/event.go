// Package queue defines the audit messages exchanged over the broker and
// the background consumer that records them.
package queue

// AuditQueueName is the durable queue carrying advertisement audit events.
const AuditQueueName = "advert.audit"

// AdvertEvent is published whenever an advertisement is created or deleted.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type AdvertEvent struct {
	Action     string `json:"action"` // "created" | "deleted"
	AdvertID   uint64 `json:"advert_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	OccurredAt string `json:"occurred_at"`
}
