// Package messaging is a broker-agnostic publish/consume facade.
//
// Use cases depend on the Publisher and Consumer interfaces only, so the
// broker can move between NATS, NSQ, Kafka, and Google Pub/Sub by
// configuration. NewFromDriver picks the implementation at wire-up time.
package messaging
