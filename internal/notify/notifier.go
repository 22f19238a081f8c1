package notify

import "context"

// Permission is the outcome of a notification permission request.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Options carries the optional display fields of a notification.
type Options struct {
	Body string `json:"body,omitempty"`
	Icon string `json:"icon,omitempty"`
}

// Notifier displays user-visible notifications. All calls are single-shot:
// a failure is surfaced once to the caller and never retried here.
type Notifier interface {
	// RequestPermission asks the user for notification permission. A
	// non-granted outcome is a normal result, not an error.
	RequestPermission(ctx context.Context) (Permission, error)

	// Show displays a notification with the given title and options.
	Show(ctx context.Context, title string, opts Options) error
}

// Subscription is an opaque handle to a registered push subscription.
type Subscription struct {
	Endpoint string `json:"endpoint"`
}

// PushRegistrar manages the push notification subscription. Both operations
// may fail and must propagate failure for user-visible reporting.
type PushRegistrar interface {
	// Subscribe registers a push subscription, returning its handle.
	Subscribe(ctx context.Context) (*Subscription, error)

	// Unsubscribe removes the current subscription. It reports whether a
	// subscription existed.
	Unsubscribe(ctx context.Context) (bool, error)
}
