package notify

// Notifier broadcasts an event to whoever is currently listening.
// Delivery is best effort and at most once: no acknowledgement, no retry,
// no persistence of missed events. Implementations must never block the
// caller on a slow or dead subscriber.
type Notifier interface {
	Publish(event string, payload any)
}

// Payload is the wire shape sent to subscribers.
type Payload struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(string, any) {}
