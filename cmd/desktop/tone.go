package main

// squareWave is an endless 16-bit little-endian stereo square wave, the
// sample format ebiten's audio players consume.
type squareWave struct {
	sampleRate int
	frequency  float64
	pos        int64 // frames produced so far
}

const (
	bytesPerFrame = 4
	amplitude     = 0x3000
)

func newSquareWave(sampleRate int, frequency float64) *squareWave {
	return &squareWave{sampleRate: sampleRate, frequency: frequency}
}

// Read fills p with whole frames and never returns io.EOF.
func (s *squareWave) Read(p []byte) (int, error) {
	n := len(p) / bytesPerFrame * bytesPerFrame
	period := float64(s.sampleRate) / s.frequency

	for i := 0; i < n; i += bytesPerFrame {
		phase := float64(s.pos) / period
		phase -= float64(int64(phase))

		v := int16(amplitude)
		if phase >= 0.5 {
			v = -amplitude
		}

		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = byte(v)
		p[i+3] = byte(v >> 8)
		s.pos++
	}

	return n, nil
}
