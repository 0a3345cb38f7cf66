// Copyright 2020 WolkAbout Technology s.r.o.

// Package model defines the data types exchanged between the gateway module,
// the gateway and the platform.
package model

// Message is a single unit of transport: a topic and a serialized payload.
type Message struct {
	Topic   string `json:"topic"`
	Payload []byte `json:"payload"`
}
