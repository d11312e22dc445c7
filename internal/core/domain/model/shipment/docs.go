// Package shipment holds carrier tracking records and the carrier-neutral tracking
// vocabulary shared by supplier adapters and tracking sync.
package shipment
