// Package registry reconciles a read-only bundle directory and a writable
// storage directory into one catalog of document records. It scans both
// sources, imports new files into storage without overwriting existing
// ones, and keeps the live snapshot that rows are resolved against.
package registry
