// Copyright 2020 WolkAbout Technology s.r.o.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wolkabout/wolk-gateway-module-go/connectivity"
)

// Config is the demo module configuration.
type Config struct {
	MQTT connectivity.MQTTConf `json:"mqtt"`
	// QueuePath is the LevelDB directory for the outbound message queue.
	// The queue is kept in memory when empty.
	QueuePath string `json:"queuePath"`
	// PublishInterval is the simulated reading period in seconds.
	PublishInterval int `json:"publishInterval"`
}

// loads module configuration from a file at the given path
func loadConfig(confPath string) (*Config, error) {
	file, err := os.ReadFile(confPath)
	if err != nil {
		return nil, err
	}

	var conf Config
	err = json.Unmarshal(file, &conf)
	if err != nil {
		return nil, err
	}

	// VALIDATE MQTT
	if err := conf.MQTT.Validate(); err != nil {
		return nil, err
	}

	if conf.PublishInterval <= 0 {
		return nil, fmt.Errorf("publishInterval must be a positive number of seconds")
	}

	return &conf, nil
}
