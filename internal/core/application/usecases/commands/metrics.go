package commands

import "fulfillment/internal/core/domain/model/fulfillment"

// Metrics receives fulfillment events for instrumentation.
type Metrics interface {
	JobsCreated(fulfillmentType fulfillment.Type, count int)
	// JobAdvanced records a successful attempt and the status it left the job in.
	JobAdvanced(fulfillmentType fulfillment.Type, status fulfillment.Status)
	JobAttemptFailed(fulfillmentType fulfillment.Type, exhausted bool)
	TrackingSynced(synced, failed int)
}

// NopMetrics discards every event.
type NopMetrics struct{}

func (NopMetrics) JobsCreated(fulfillment.Type, int) {}
func (NopMetrics) JobAdvanced(fulfillment.Type, fulfillment.Status) {}
func (NopMetrics) JobAttemptFailed(fulfillment.Type, bool) {}
func (NopMetrics) TrackingSynced(int, int) {}
