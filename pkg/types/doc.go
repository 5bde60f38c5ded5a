// Package types defines the table and draw-spec entities, the Store interface
// used to persist the table pool, backend configuration, and the sentinel
// errors shared by every layer of the randomizer.
package types
