// Package ledwire builds the raw RGB byte payload carried by a
// /light/serial datagram: one destination's frame, flattened to
// interleaved R,G,B bytes.
package ledwire

import "github.com/lacylights/ledshow/internal/colormath"

// BytesPerLED is the number of payload bytes one LED contributes.
const BytesPerLED = 3

// BuildPayload flattens buf into interleaved R,G,B bytes, one triple
// per LED in order.
func BuildPayload(buf []colormath.RGB) []byte {
	out := make([]byte, 0, len(buf)*BytesPerLED)
	for _, c := range buf {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// Slice returns the sub-range of buf from startLed to endLed inclusive,
// clipped to [0, len(buf)-1]. An empty or inverted range yields nil —
// the caller emits no payload for it.
func Slice(buf []colormath.RGB, startLed, endLed int) []colormath.RGB {
	if len(buf) == 0 {
		return nil
	}
	if startLed < 0 {
		startLed = 0
	}
	if endLed > len(buf)-1 {
		endLed = len(buf) - 1
	}
	if startLed > endLed {
		return nil
	}
	return buf[startLed : endLed+1]
}
