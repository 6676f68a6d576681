// Package hash hashes passwords and verifies plaintext against stored hashes.
package hash
