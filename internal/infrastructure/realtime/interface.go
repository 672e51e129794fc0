package realtime

// FrameDeliverer hands an encoded frame to every local subscriber.
type FrameDeliverer interface {
	Deliver(frame []byte)
}
