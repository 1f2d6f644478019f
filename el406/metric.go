package el406

import (
	"sync/atomic"
)

// DeviceMetrics contains atomic metrics for a Device.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type DeviceMetrics struct {
	// CommandSendCount indicates the number of framed commands written.
	CommandSendCount atomic.Uint64
	// CommandErrCount indicates the number of command exchanges that failed.
	CommandErrCount atomic.Uint64
	// NakCount indicates the number of commands the device rejected.
	NakCount atomic.Uint64
	// PollCount indicates the number of step completion polls issued.
	PollCount atomic.Uint64
	// DeviceErrCount indicates the number of steps that finished with a
	// non-zero validity code.
	DeviceErrCount atomic.Uint64
	// TimeoutCount indicates the number of steps that exceeded their
	// timeout budget.
	TimeoutCount atomic.Uint64
}

func (m *DeviceMetrics) incCommandSendCount() {
	m.CommandSendCount.Add(1)
}

func (m *DeviceMetrics) incCommandErrCount() {
	m.CommandErrCount.Add(1)
}

func (m *DeviceMetrics) incNakCount() {
	m.NakCount.Add(1)
}

func (m *DeviceMetrics) incPollCount() {
	m.PollCount.Add(1)
}

func (m *DeviceMetrics) incDeviceErrCount() {
	m.DeviceErrCount.Add(1)
}

func (m *DeviceMetrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}
