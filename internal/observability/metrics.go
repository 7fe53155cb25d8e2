package observability

import (
	"strconv"
	"sync"
)

// Metrics provides basic in-memory counters for queue operations and the
// exposed HTTP surface.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	queueOpCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		queueOpCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string, status int) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters by domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordQueueOp counts a queue operation outcome, e.g. ("load_pending", true).
func (m *Metrics) RecordQueueOp(op string, success bool) {
	if m == nil {
		return
	}
	key := op + "|" + strconv.FormatBool(success)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueOpCount[key]++
}

// QueueOpCount returns the counter for an operation outcome.
func (m *Metrics) QueueOpCount(op string, success bool) int64 {
	if m == nil {
		return 0
	}
	key := op + "|" + strconv.FormatBool(success)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queueOpCount[key]
}
