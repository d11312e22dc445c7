// Package suppliers implements the fulfillment channels behind ports.SupplierAdapter.
//
// Manual and digital adapters never leave the process. The warehouse adapter writes
// pick tasks to the database and reads tracking back from them. The API adapter talks
// to a third-party dropship supplier over HTTP+JSON.
//
// Every adapter is safe for concurrent use, so a single instance per supplier can be
// shared by job processing and tracking sync.
package suppliers
