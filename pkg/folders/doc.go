// Package folders exposes a client for the folder surface of the Box content
// API: folder CRUD, item and collaboration listing, copy/move, collections,
// metadata instances, trash, watermarks, and folder locks. Each operation
// maps onto a single REST endpoint; the two collection helpers and
// SetMetadata compose two sequential calls. Retry and authentication are
// handled by the transport layer, never here.
package folders
