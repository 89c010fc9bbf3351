// Package trig implements the built-in math functions reachable through
// Beflux's M table: identity, sine, and cosine, computed from an
// 80-entry quarter-wave table and encoded as a signed-magnitude word
// pair so they can travel the stack without a signed word type.
package trig

import "math"

// QuarterWaveSize is the number of entries in the quarter-wave sine
// table; one BAM quadrant (0x40 units) is looked up across it.
const QuarterWaveSize = 80

var quarterWave [QuarterWaveSize]byte

func init() {
	for i := 0; i < QuarterWaveSize; i++ {
		theta := (float64(i) + 0.5) * (math.Pi / 2) / QuarterWaveSize
		quarterWave[i] = byte(math.Round(math.Sin(theta) * 255))
	}
}

func quadrantIndex(angle byte) (quadrant int, idx int) {
	quadrant = int(angle / 64)
	offset := int(angle % 64)
	idx = offset * QuarterWaveSize / 64
	if idx >= QuarterWaveSize {
		idx = QuarterWaveSize - 1
	}
	return
}

// SinBAM returns sin(angle) scaled to [-255,255]. angle is in Binary
// Angular Measure, where 0x100 covers a full turn.
func SinBAM(angle byte) int {
	quadrant, idx := quadrantIndex(angle)
	switch quadrant {
	case 0:
		return int(quarterWave[idx])
	case 1:
		return int(quarterWave[QuarterWaveSize-1-idx])
	case 2:
		return -int(quarterWave[idx])
	default:
		return -int(quarterWave[QuarterWaveSize-1-idx])
	}
}

// CosBAM returns cos(angle) via SinBAM's quarter-turn phase shift.
func CosBAM(angle byte) int {
	return SinBAM(angle + 64)
}

// Split encodes a signed value clamped to [-255,255] as a (positive,
// negative) word pair, each in [0,255]; a consumer recovers the signed
// value by subtracting the two and dividing by 255 for a real in
// [-1,+1].
func Split(v int) (pos, neg byte) {
	if v >= 0 {
		if v > 255 {
			v = 255
		}
		return byte(v), 0
	}
	if v < -255 {
		v = -255
	}
	return 0, byte(-v)
}
