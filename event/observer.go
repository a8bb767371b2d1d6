package event

// Observer receives delivery counters. Implementations must be cheap; they
// run inline with Fire.
type Observer interface {
	// Fired is called once per Fire.
	Fired(typ string)
	// Delivered is called for every listener callback that ran.
	Delivered(typ string)
	// Skipped is called when the equality gate suppressed a delivery.
	Skipped(typ string)
	// Recovered is called when a listener panicked.
	Recovered(typ string)
}

// NopObserver discards every notification.
type NopObserver struct{}

// Fired implements Observer.
func (NopObserver) Fired(string) {}

// Delivered implements Observer.
func (NopObserver) Delivered(string) {}

// Skipped implements Observer.
func (NopObserver) Skipped(string) {}

// Recovered implements Observer.
func (NopObserver) Recovered(string) {}
