package core

import "testing"

func TestMetricsSafeBeforeInitialize(t *testing.T) {
	saved := metricsState
	metricsState = nil
	defer func() { metricsState = saved }()

	if got := MetricsBindsPerFrame(); got != 0 {
		t.Errorf("MetricsBindsPerFrame = %f, want 0", got)
	}
	if sets, writes, binds := MetricsCounters(); sets != 0 || writes != 0 || binds != 0 {
		t.Errorf("MetricsCounters = %d %d %d, want zeros", sets, writes, binds)
	}

	// Mutators must be no-ops, not panics.
	MetricsSetsAllocated(3)
	MetricsSlotWrite()
	MetricsBindRecorded()
	MetricsFrameEnd()
}

func TestMetricsCountersAccumulate(t *testing.T) {
	if err := MetricsInitialize(); err != nil {
		t.Fatal(err)
	}
	setsBefore, writesBefore, bindsBefore := MetricsCounters()
	MetricsSetsAllocated(2)
	MetricsSlotWrite()
	MetricsBindRecorded()
	sets, writes, binds := MetricsCounters()
	if sets != setsBefore+2 || writes != writesBefore+1 || binds != bindsBefore+1 {
		t.Errorf("counters = %d %d %d, want %d %d %d", sets, writes, binds, setsBefore+2, writesBefore+1, bindsBefore+1)
	}
}
