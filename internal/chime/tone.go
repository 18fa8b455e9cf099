package chime

import (
	"encoding/binary"
	"math"
	"time"
)

// Pattern is a train of identical sine beeps separated by silence.
type Pattern struct {
	Frequency float64 // Hz
	Beep      time.Duration
	Gap       time.Duration
	Count     int
}

// amplitude keeps the chime well below full scale.
const amplitude = 0.35 * math.MaxInt16

// fade is the attack/release ramp applied to each beep to avoid clicks.
const fade = 5 * time.Millisecond

// PCM renders the pattern as signed 16-bit little-endian mono samples
// at SampleRate.
func (p Pattern) PCM() []byte {
	beep := samples(p.Beep)
	gap := samples(p.Gap)
	ramp := samples(fade)
	if ramp*2 > beep {
		ramp = beep / 2
	}

	total := 0
	if p.Count > 0 {
		total = p.Count*beep + (p.Count-1)*gap
	}
	out := make([]byte, total*2)

	pos := 0
	for n := 0; n < p.Count; n++ {
		if n > 0 {
			pos += gap // silence is already zeroed
		}
		for i := 0; i < beep; i++ {
			env := 1.0
			switch {
			case ramp > 0 && i < ramp:
				env = float64(i) / float64(ramp)
			case ramp > 0 && i >= beep-ramp:
				env = float64(beep-1-i) / float64(ramp)
			}
			v := amplitude * env * math.Sin(2*math.Pi*p.Frequency*float64(i)/SampleRate)
			binary.LittleEndian.PutUint16(out[(pos+i)*2:], uint16(int16(v)))
		}
		pos += beep
	}
	return out
}

// Duration is the total playing time of the pattern.
func (p Pattern) Duration() time.Duration {
	if p.Count <= 0 {
		return 0
	}
	return time.Duration(p.Count)*p.Beep + time.Duration(p.Count-1)*p.Gap
}

func samples(d time.Duration) int {
	return int(d * SampleRate / time.Second)
}
