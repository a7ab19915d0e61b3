// Package section provides the read-only configuration tree consumed by the
// binder, plus an in-memory implementation built from flat key/value pairs
// or YAML documents.
//
// Paths use ":" as the segment delimiter and keys are case-insensitive:
//
//	server:
//	  ports:
//	    http: 8080
//
// yields the leaf "server:ports:http" with value "8080".
package section
