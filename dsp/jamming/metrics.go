package jamming

// Metrics counts filter activity since the last Begin or ResetMetrics.
type Metrics struct {
	Updates          uint64 // samples processed
	ActiveUpdates    uint64 // samples after which jamming was active
	Activations      uint64 // inactive to active transitions
	OutliersRejected uint64 // samples kept out of the baseline average
	DwellSkips       uint64 // samples that skipped evaluation while held
}

// ActiveFraction returns ActiveUpdates / Updates, or 0 with no updates.
func (m Metrics) ActiveFraction() float64 {
	if m.Updates == 0 {
		return 0
	}
	return float64(m.ActiveUpdates) / float64(m.Updates)
}

// Metrics returns the current counters.
func (f *Filter) Metrics() Metrics {
	return f.metrics
}

// ResetMetrics clears the counters without touching detection state.
func (f *Filter) ResetMetrics() {
	f.metrics = Metrics{}
}
