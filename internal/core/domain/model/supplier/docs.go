// Package supplier models fulfillment partners, their product offers and the
// payloads exchanged with supplier adapters.
//
// Suppliers and offers are owned by catalog management; this service only reads them
// to rank candidates for dropship jobs and to build adapters.
package supplier
