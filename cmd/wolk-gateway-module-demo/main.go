// Copyright 2020 WolkAbout Technology s.r.o.

// Demo gateway module: simulates a thermometer with a switch actuator and a
// firmware-updatable heater, reporting through a WolkGateway.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/wolkabout/wolk-gateway-module-go/model"
	"github.com/wolkabout/wolk-gateway-module-go/persistence"
	"github.com/wolkabout/wolk-gateway-module-go/wolk"
)

var (
	Version     string // set with build flags
	BuildNumber string // set with build flags
)

func main() {
	var (
		confPath = flag.String("conf", "conf/wolk-gateway-module.json", "Gateway module configuration file path")
		version  = flag.Bool("version", false, "Show the gateway module version")
	)
	flag.Parse()
	if *version {
		fmt.Println(Version)
		return
	}
	log.Printf("Starting WolkGateway module demo")

	if Version != "" {
		log.Printf("Version: %s", Version)
	}
	if BuildNumber != "" {
		log.Printf("Build Number: %s", BuildNumber)
	}

	// Load Config File
	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Panicf("Config File: %s\n", err)
	}

	// simulated device state
	sim := &simulator{
		switchOn: true,
		interval: int64(conf.PublishInterval),
		version:  "1.0.0",
	}

	opts := &wolk.Options{
		ActuationHandler:       sim.handleActuation,
		ActuatorStatusProvider: sim.actuatorStatus,
		ConfigurationHandler:   sim.handleConfiguration,
		ConfigurationProvider:  sim.configuration,
		FirmwareHandler:        sim,
		RegistrationResponseListener: func(device model.Device, response model.DeviceRegistrationResponse) {
			log.Printf("Registration of %s: %s %s", device.Key, response.Result, response.Description)
		},
	}

	if conf.QueuePath != "" {
		queue, err := persistence.NewLevelDBQueue(conf.QueuePath, nil)
		if err != nil {
			log.Panicf("Failed to open queue storage: %s\n", err)
		}
		defer queue.Close()
		opts.Queue = queue
		log.Printf("Storing outbound messages in %s.", conf.QueuePath)
	}

	module, err := wolk.New(conf.MQTT, sim.deviceStatus, opts)
	if err != nil {
		log.Panicf("Error creating gateway module: %s", err)
	}

	if err := module.AddDevice(demoDevice()); err != nil {
		log.Panicf("Error adding demo device: %s", err)
	}

	if err := module.Connect(); err != nil {
		log.Panicf("Error connecting to gateway: %s", err)
	}
	defer module.Disconnect()

	// Simulated readings
	stop := make(chan struct{})
	go sim.run(module, stop)

	// Ctrl+C / Kill handling
	handler := make(chan os.Signal, 1)
	signal.Notify(handler, os.Interrupt, os.Kill)

	<-handler
	log.Println("Shutting down...")
	close(stop)
	log.Println("Stopped.")
}

func demoDevice() model.Device {
	return model.Device{
		Name: "Demo Heater",
		Key:  "demo_heater",
		Template: model.DeviceTemplate{
			Sensors: []model.SensorTemplate{
				model.NewSensorTemplate("Temperature", "T", model.ReadingType{
					Name: model.ReadingTypeNameTemperature,
					Unit: model.UnitCelsius,
				}),
			},
			Actuators: []model.ActuatorTemplate{
				model.NewGenericActuatorTemplate("Heater Switch", "SW", model.DataTypeBoolean),
			},
			Alarms: []model.AlarmTemplate{
				{Name: "Overheating", Reference: "OH"},
			},
			Configurations: []model.ConfigurationTemplate{
				{Name: "Publish Interval", Reference: "PI", DataType: model.DataTypeNumeric, Size: 1},
			},
			FirmwareUpdateType: "DFU",
		},
	}
}

// simulator fakes a heater behind the module.
type simulator struct {
	mu       sync.Mutex
	switchOn bool
	interval int64
	version  string
}

func (s *simulator) deviceStatus(deviceKey string) model.DeviceStatus {
	return model.DeviceStatusConnected
}

func (s *simulator) handleActuation(deviceKey string, command model.ActuatorCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchOn = command.Value == "true"
	log.Printf("Heater switch of %s set to %t", deviceKey, s.switchOn)
}

func (s *simulator) actuatorStatus(deviceKey, reference string) (model.ActuatorStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ActuatorStatus{State: model.ActuatorStateReady, Value: s.switchOn}, nil
}

func (s *simulator) handleConfiguration(deviceKey string, configuration model.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value, ok := configuration["PI"].(string); ok {
		var interval int64
		if _, err := fmt.Sscanf(value, "%d", &interval); err == nil && interval > 0 {
			s.interval = interval
			log.Printf("Publish interval of %s set to %ds", deviceKey, interval)
		}
	}
}

func (s *simulator) configuration(deviceKey string) (model.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Configuration{"PI": s.interval}, nil
}

func (s *simulator) InstallFirmware(deviceKey, firmwareFilePath string) error {
	log.Printf("Installing firmware %s on %s", firmwareFilePath, deviceKey)
	time.Sleep(2 * time.Second)
	s.mu.Lock()
	s.version = "2.0.0"
	s.mu.Unlock()
	return nil
}

func (s *simulator) AbortInstallation(deviceKey string) error {
	log.Printf("Aborting firmware installation on %s", deviceKey)
	return nil
}

func (s *simulator) FirmwareVersion(deviceKey string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// run feeds simulated readings into the module until stop is closed.
func (s *simulator) run(module *wolk.Module, stop chan struct{}) {
	for {
		s.mu.Lock()
		interval := s.interval
		heating := s.switchOn
		s.mu.Unlock()

		select {
		case <-stop:
			return
		case <-time.After(time.Duration(interval) * time.Second):
		}

		temperature := 19 + rand.Float64()*2
		if heating {
			temperature += 40 + rand.Float64()*15
		}

		if err := module.AddSensorReading("demo_heater", "T", temperature, 0); err != nil {
			log.Printf("Error storing reading: %s", err)
			continue
		}
		if temperature > 70 {
			if err := module.AddAlarm("demo_heater", "OH", true, 0); err != nil {
				log.Printf("Error storing alarm: %s", err)
			}
		}
		if err := module.Publish(); err != nil {
			log.Printf("Error publishing: %s", err)
		}
	}
}
