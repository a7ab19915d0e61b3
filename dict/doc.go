// Package dict provides the ordered dictionary the binder materializes
// read-only views into, together with key comparers and reflection helpers
// that recognise dictionary types at runtime.
package dict
