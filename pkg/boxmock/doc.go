// Package boxmock implements an in-memory stand-in for the folder surface of
// the Box content API. It backs the sandbox binary and the journey tests,
// covering folder CRUD, items, copy/move, trash, collections, metadata
// instances with JSON-Patch updates, watermarks, folder locks, and
// If-Match/etag precondition checks.
package boxmock
