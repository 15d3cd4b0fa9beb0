package instance

import (
	"fmt"
	"net"
)

// Fixed port used as a process-wide mutex. Binding it succeeds for
// exactly one process on the machine.
const guardPort = 47293

// Guard holds the single-instance lock for the lifetime of the
// process.
type Guard struct {
	listener net.Listener
}

// Acquire takes the single-instance lock. It fails when another
// instance already holds it.
func Acquire() (*Guard, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", guardPort))
	if err != nil {
		return nil, fmt.Errorf("another instance is already running: %w", err)
	}
	return &Guard{listener: listener}, nil
}

// Release frees the lock. Safe to call on a nil guard.
func (g *Guard) Release() {
	if g == nil || g.listener == nil {
		return
	}
	g.listener.Close()
	g.listener = nil
}
