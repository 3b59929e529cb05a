package metrics

// Counter is a monotonically increasing count of some event.
type Counter interface {
	Inc()
	Add(delta float64)
}

// Factory creates metrics and manages the lifecycle of whatever endpoint
// exposes them.
type Factory interface {
	CreateCounter(name string, description string) (Counter, error)

	Start() error

	Stop() error
}

// NoopCounter is used where a caller does not care about metrics.
type NoopCounter struct{}

func (NoopCounter) Inc()              {}
func (NoopCounter) Add(delta float64) {}
