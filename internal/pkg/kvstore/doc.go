// Package kvstore provides a small expiring key-value store contract.
//
// Every write carries a time-to-live; expiry is the only way values disappear
// besides an explicit Del. Counters are incremented atomically so callers can
// build rate limits and lockouts that stay correct across many service
// instances sharing one backend.
package kvstore
