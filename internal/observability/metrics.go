package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	errorCount      map[string]int64
	generationRuns  int64
	slotsFilled     int64
	slotsUnfilled   int64
	lastGenerated   time.Time
	lastGenDuration time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordGeneration tracks the outcome of a weekly allocation pass.
func (m *Metrics) RecordGeneration(filled, unfilled int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationRuns++
	m.slotsFilled += int64(filled)
	m.slotsUnfilled += int64(unfilled)
	m.lastGenerated = time.Now()
	m.lastGenDuration = duration
}

// GenerationStats reports cumulative allocation counters.
func (m *Metrics) GenerationStats() (runs, filled, unfilled int64) {
	if m == nil {
		return 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generationRuns, m.slotsFilled, m.slotsUnfilled
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
