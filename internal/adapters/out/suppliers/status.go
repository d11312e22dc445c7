package suppliers

import (
	"strings"

	"fulfillment/internal/core/domain/model/shipment"
)

var (
	failedKeywords  = []string{"fail", "exception", "undeliverable", "not delivered", "return", "lost", "cancel"}
	outForDelivery  = []string{"out for delivery", "out_for_delivery", "out-for-delivery", "with courier"}
	deliveredMarker = "delivered"
	transitKeywords = []string{"transit", "shipped", "dispatched", "picked up", "departed", "arrived", "in_transit"}
)

// NormalizeStatus maps a carrier status text to a tracking status. Failure wording
// is checked first so that "delivery failed" or "not delivered" never reads as
// delivered. Anything unrecognised is pending.
func NormalizeStatus(raw string) shipment.TrackingStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return shipment.Pending
	case containsAny(s, failedKeywords):
		return shipment.FailedDelivery
	case containsAny(s, outForDelivery):
		return shipment.OutForDelivery
	case strings.Contains(s, deliveredMarker):
		return shipment.Delivered
	case containsAny(s, transitKeywords):
		return shipment.InTransit
	default:
		return shipment.Pending
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
