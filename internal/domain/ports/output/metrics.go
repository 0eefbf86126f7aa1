package ports

import "time"

type MetricsProvider interface {
	IncrementHTTPRequests(method, route, status string)
	RecordHTTPRequestDuration(method, route string, duration time.Duration)

	IncrementPostClientRequests(operation string, success bool)
	RecordPostClientRequestDuration(operation string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementPageOperations(operation string, success bool)
	SetActiveSessions(count int)

	SetServiceHealth(healthy bool)
}
