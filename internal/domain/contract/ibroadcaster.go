package contract

// IBroadcaster pushes events to every connected real-time subscriber.
// Publish must not block the caller and never reports delivery failures.
type IBroadcaster interface {
	Publish(event string, payload any)
}
