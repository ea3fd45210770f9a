// Package chat models the per-load message log. Messages carry text, a file,
// or both, and are edited in place without changing their position.
package chat
