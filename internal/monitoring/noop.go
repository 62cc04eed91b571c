// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

type NoopMonitor struct{}

func NewNoopMonitor() *NoopMonitor {
	return &NoopMonitor{}
}

func (m *NoopMonitor) GetService() string {
	return "noop"
}

func (m *NoopMonitor) SetResponseTimeMetric(map[string]string, float64) error {
	return nil
}

func (m *NoopMonitor) SetDependencyAvailability(map[string]string, float64) error {
	return nil
}
