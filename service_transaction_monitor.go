package registrykit

import (
	"sync"
	"time"
)

// OperationStats summarizes the operations a Service has run since
// the last reset.
type OperationStats struct {
	TotalOperations      int64         `json:"total_operations"`
	SuccessfulOperations int64         `json:"successful_operations"`
	DeniedOperations     int64         `json:"denied_operations"`
	FailedOperations     int64         `json:"failed_operations"`
	AverageDuration      time.Duration `json:"average_duration"`
	MaxDuration          time.Duration `json:"max_duration"`
	MinDuration          time.Duration `json:"min_duration"`
	LastReset            time.Time     `json:"last_reset"`
}

// SuccessRate is the fraction of operations that did not fail with a store
// error. Denied calls count as handled. An idle monitor reports 1.
func (s OperationStats) SuccessRate() float64 {
	if s.TotalOperations == 0 {
		return 1
	}
	return float64(s.TotalOperations-s.FailedOperations) / float64(s.TotalOperations)
}

// operationMonitor holds the internal operation monitoring state
type operationMonitor struct {
	mu            sync.Mutex
	totalCount    int64
	successCount  int64
	deniedCount   int64
	failureCount  int64
	totalDuration time.Duration
	maxDuration   time.Duration
	minDuration   time.Duration
	lastReset     time.Time
}

func newOperationMonitor() *operationMonitor {
	return &operationMonitor{lastReset: time.Now()}
}

func (m *operationMonitor) record(duration time.Duration, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalCount++
	m.totalDuration += duration
	switch status {
	case statusSuccess:
		m.successCount++
	case statusDenied:
		m.deniedCount++
	default:
		m.failureCount++
	}

	if duration > m.maxDuration {
		m.maxDuration = duration
	}
	if m.totalCount == 1 || duration < m.minDuration {
		m.minDuration = duration
	}
}

func (m *operationMonitor) stats() OperationStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var avg time.Duration
	if m.totalCount > 0 {
		avg = m.totalDuration / time.Duration(m.totalCount)
	}
	return OperationStats{
		TotalOperations:      m.totalCount,
		SuccessfulOperations: m.successCount,
		DeniedOperations:     m.deniedCount,
		FailedOperations:     m.failureCount,
		AverageDuration:      avg,
		MaxDuration:          m.maxDuration,
		MinDuration:          m.minDuration,
		LastReset:            m.lastReset,
	}
}

func (m *operationMonitor) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalCount = 0
	m.successCount = 0
	m.deniedCount = 0
	m.failureCount = 0
	m.totalDuration = 0
	m.maxDuration = 0
	m.minDuration = 0
	m.lastReset = time.Now()
}

// GetOperationStats returns the current operation statistics.
func (s *Service) GetOperationStats() OperationStats {
	return s.monitor.stats()
}

// ResetOperationStats clears the operation statistics.
func (s *Service) ResetOperationStats() {
	s.monitor.reset()
}

// IsOperationHealthy reports whether at least 95% of operations since the
// last reset avoided store errors.
func (s *Service) IsOperationHealthy() bool {
	return s.GetOperationStats().SuccessRate() >= 0.95
}
