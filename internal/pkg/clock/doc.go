// Package clock lets expiry logic read the time through an interface so tests
// can pin it with ManualClocker.
package clock
