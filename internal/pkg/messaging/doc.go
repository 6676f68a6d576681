// Package messaging publishes and consumes domain events over a broker.
//
// Business code depends on Publisher and Consumer only. The broker behind
// them (Kafka, NATS, NSQ or the noop driver) is picked from configuration.
package messaging
