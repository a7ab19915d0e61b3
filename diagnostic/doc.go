// Package diagnostic provides structured warnings and errors collected while
// binding configuration into dictionaries.
//
// Key capabilities:
//   - Skipped entries whose key cannot be converted to the key type
//   - Skipped entries whose value failed to bind
//   - Dictionaries left unbound because of an unsupported key type
package diagnostic
