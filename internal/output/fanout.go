package output

import (
	"github.com/hypebeast/go-osc/osc"
	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/colormath"
	"github.com/lacylights/ledshow/internal/engineerr"
	"github.com/lacylights/ledshow/internal/events"
	"github.com/lacylights/ledshow/pkg/ledwire"
)

// address is the protocol address every output datagram carries its
// RGB payload under.
const address = "/light/serial"

// Send transmits buffer to every enabled destination: a full copy, or a
// clipped slice for destinations configured with start/end bounds.
// Transmission failures are logged and never propagate — one bad
// destination never stalls the frame loop or the others.
func (f *Fanout) Send(buffer []colormath.RGB) {
	for _, d := range f.Destinations {
		if !d.Enabled {
			continue
		}

		var frame []colormath.RGB
		if d.CopyMode {
			frame = buffer
		} else {
			frame = ledwire.Slice(buffer, d.StartLed, d.EndLed)
		}
		if len(frame) == 0 {
			continue
		}

		if err := f.sendOne(d, frame); err != nil {
			f.log.Warn("output: destination send failed",
				zap.String("destination", d.Name),
				zap.Error(err))
			f.bus.Publish(events.TopicDestinationError, events.DestinationError{Destination: d.Name, Err: err})
		}
	}
}

func (f *Fanout) sendOne(d *Destination, frame []colormath.RGB) error {
	client := d.ensureClient()

	// The leading sequence number is this engine's own addition on top
	// of the single RGB-blob argument: it lets a receiver detect
	// dropped or reordered datagrams, at the cost of one extra leading
	// argument in the /light/serial message.
	msg := osc.NewMessage(address)
	msg.Append(int32(d.sequence))
	msg.Append(ledwire.BuildPayload(frame))
	d.sequence++

	if err := client.Send(msg); err != nil {
		return engineerr.IOf(err, "send to %s:%d", d.IP, d.Port)
	}
	return nil
}
