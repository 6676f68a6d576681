// Package event holds the topics and payloads modules exchange over messaging.
package event
