package core

import "sync"

const AVG_COUNT uint8 = 30

type MetricsState struct {
	FrameAVGCounter   uint8
	BindTimes         [AVG_COUNT]float64
	BindsPerFrameAVG  float64
	SetsAllocated     uint64
	SlotWrites        uint64
	BindsRecorded     uint64
	bindsCurrentFrame uint32
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			BindTimes: [AVG_COUNT]float64{0},
		}
	})
	return nil
}

// MetricsSetsAllocated records a successful set allocation batch.
func MetricsSetsAllocated(count uint32) {
	if metricsState == nil {
		return
	}
	metricsState.SetsAllocated += uint64(count)
}

// MetricsSlotWrite records a single slot update.
func MetricsSlotWrite() {
	if metricsState == nil {
		return
	}
	metricsState.SlotWrites++
}

// MetricsBindRecorded records one bind instruction written to a command stream.
func MetricsBindRecorded() {
	if metricsState == nil {
		return
	}
	metricsState.BindsRecorded++
	metricsState.bindsCurrentFrame++
}

// MetricsFrameEnd folds the current frame's bind count into the rolling average.
func MetricsFrameEnd() {
	if metricsState == nil {
		return
	}
	metricsState.BindTimes[metricsState.FrameAVGCounter] = float64(metricsState.bindsCurrentFrame)
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		avg := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			avg += metricsState.BindTimes[i]
		}
		metricsState.BindsPerFrameAVG = avg / float64(AVG_COUNT)
	}
	metricsState.FrameAVGCounter++
	metricsState.FrameAVGCounter %= AVG_COUNT
	metricsState.bindsCurrentFrame = 0
}

func MetricsBindsPerFrame() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.BindsPerFrameAVG
}

func MetricsCounters() (uint64, uint64, uint64) {
	if metricsState == nil {
		return 0, 0, 0
	}
	return metricsState.SetsAllocated, metricsState.SlotWrites, metricsState.BindsRecorded
}
