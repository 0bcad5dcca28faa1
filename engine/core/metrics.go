package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling frame time average and an FPS counter, and mirrors
// them into prometheus collectors registered on the given registerer.
type Metrics struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64

	frameSeconds prometheus.Histogram
	fpsGauge     prometheus.Gauge
	drawCalls    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "anima",
			Name:      "frame_duration_seconds",
			Help:      "Time spent producing a frame.",
			Buckets:   []float64{0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.133},
		}),
		fpsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anima",
			Name:      "frames_per_second",
			Help:      "Frames rendered during the last full second.",
		}),
		drawCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anima",
			Name:      "draw_calls_total",
			Help:      "Indexed draw calls issued to the graphics device.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.frameSeconds, m.fpsGauge, m.drawCalls} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Update records a frame that took frameElapsedTime seconds.
func (m *Metrics) Update(frameElapsedTime float64) {
	m.frameSeconds.Observe(frameElapsedTime)

	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.MStimes[m.FrameAVGCounter] = frameMS
	if m.FrameAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += m.MStimes[i]
		}
		m.MSavg = sum / float64(AVG_COUNT)
	}
	m.FrameAVGCounter++
	m.FrameAVGCounter %= AVG_COUNT

	// Calculate Frames per second.
	m.AccumulatedFrameMS += frameMS
	if m.AccumulatedFrameMS > 1000 {
		m.FPS = float64(m.Frames)
		m.fpsGauge.Set(m.FPS)
		m.AccumulatedFrameMS -= 1000
		m.Frames = 0
	}

	// Count all Frames.
	m.Frames++
}

// AddDrawCalls accumulates the draw calls issued during a frame.
func (m *Metrics) AddDrawCalls(n int) {
	if n > 0 {
		m.drawCalls.Add(float64(n))
	}
}

func (m *Metrics) FPSValue() float64 {
	return m.FPS
}

func (m *Metrics) FrameTime() float64 {
	return m.MSavg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.FPS, m.MSavg
}
