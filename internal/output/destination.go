// Package output fans a rendered frame out to every configured
// destination: a full copy or a clipped slice, each sent as one
// /light/serial datagram per destination per frame.
package output

import (
	"github.com/hypebeast/go-osc/osc"
	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/events"
)

// Destination describes one remote LED controller: where to send
// frames, how much of the buffer it receives, and whether it is
// currently enabled.
type Destination struct {
	Name     string
	IP       string
	Port     int
	CopyMode bool
	StartLed int
	EndLed   int
	Enabled  bool

	client   *osc.Client
	sequence byte
}

// ensureClient lazily creates the destination's OSC client on
// first use, so a disabled destination never opens a socket.
func (d *Destination) ensureClient() *osc.Client {
	if d.client == nil {
		d.client = osc.NewClient(d.IP, d.Port)
	}
	return d.client
}

// Fanout holds the full set of configured destinations, the shared
// logger used to report per-destination transmit failures, and the
// event bus those failures are also published on.
type Fanout struct {
	Destinations []*Destination
	log          *zap.Logger
	bus          *events.Bus
}

// NewFanout builds a Fanout over destinations, logging transmit
// failures through log and publishing them on bus's
// events.TopicDestinationError.
func NewFanout(destinations []*Destination, log *zap.Logger, bus *events.Bus) *Fanout {
	return &Fanout{Destinations: destinations, log: log, bus: bus}
}
