package tuning

import "math"

// StandardPitch is the reference frequency of A4 in Hz.
const StandardPitch = 440.0

// LowBassCents is the cent offset that pins the reference pitch one octave
// down, to 220 Hz.
const LowBassCents = -1200.0

// CentsToFrequency converts a cent offset from A440 into the reference
// frequency in Hz, rounded to two decimals.
func CentsToFrequency(cents float64) float64 {
	freq := StandardPitch * math.Pow(2, cents/1200)
	return math.Round(freq*100) / 100
}
