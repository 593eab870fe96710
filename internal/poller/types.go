// internal/poller/types.go
package poller

// Meter identifies one monitored unit.
// Identity only: no transport state.
type Meter struct {
	ID       string
	Name     string
	Cabinet  int
	Node     int
	Endpoint string
}

// Session is one connected register-bank endpoint. A session is owned by
// a single read for its duration and never shared across concurrent reads.
type Session interface {
	ReadWords(start, count uint16) ([]uint16, error)
	Close() error
}

// Dialer opens a session for one meter. ONE attempt per call, no retries.
type Dialer func() (Session, error)
