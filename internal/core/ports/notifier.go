package ports

import "context"

// ApprovalNotice is the message published when a property is approved.
// An external mailer consumes it and delivers the actual email.
type ApprovalNotice struct {
	Email        string `json:"email"`
	PropertyName string `json:"property_name"`
	Slug         string `json:"slug"`
}

// Notifier delivers approval notices to the outbound notification transport.
// Delivery failure must never fail an already-committed state transition.
type Notifier interface {
	PublishApproval(ctx context.Context, notice ApprovalNotice) error
}

// NotificationDispatcher enqueues notices for asynchronous delivery.
type NotificationDispatcher interface {
	Enqueue(notice ApprovalNotice)
}
