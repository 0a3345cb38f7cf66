// Copyright 2020 WolkAbout Technology s.r.o.

// Package wolk ties the gateway module together: it keeps the device list,
// queues outbound messages, exchanges them with the gateway and dispatches
// inbound commands to the user-supplied handlers.
package wolk

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wolkabout/wolk-gateway-module-go/connectivity"
	"github.com/wolkabout/wolk-gateway-module-go/model"
	"github.com/wolkabout/wolk-gateway-module-go/persistence"
	"github.com/wolkabout/wolk-gateway-module-go/protocol"
)

// Options carries the optional collaborators of a Module. Handlers and
// providers come in pairs: commands can only be handled if the current state
// can also be reported back.
type Options struct {
	ActuationHandler       ActuationHandler
	ActuatorStatusProvider ActuatorStatusProvider

	ConfigurationHandler  ConfigurationHandler
	ConfigurationProvider ConfigurationProvider

	FirmwareHandler FirmwareHandler

	RegistrationResponseListener RegistrationResponseListener

	// ConnectivityService overrides the default MQTT connection.
	ConnectivityService connectivity.Service
	// Queue overrides the default in-memory outbound queue.
	Queue persistence.Queue

	// Protocol overrides, defaulting to the JSON protocol implementations.
	DataProtocol           protocol.DataProtocol
	RegistrationProtocol   protocol.RegistrationProtocol
	StatusProtocol         protocol.StatusProtocol
	FirmwareUpdateProtocol protocol.FirmwareUpdateProtocol
}

// Module is a gateway module: it registers devices on the platform through
// the gateway and exchanges their data with it. All methods are safe for
// concurrent use.
type Module struct {
	mu sync.Mutex

	conn  connectivity.Service
	queue persistence.Queue

	data         protocol.DataProtocol
	registration protocol.RegistrationProtocol
	status       protocol.StatusProtocol
	firmware     protocol.FirmwareUpdateProtocol

	deviceStatusProvider   DeviceStatusProvider
	actuationHandler       ActuationHandler
	actuatorStatusProvider ActuatorStatusProvider
	configurationHandler   ConfigurationHandler
	configurationProvider  ConfigurationProvider
	firmwareHandler        FirmwareHandler
	registrationListener   RegistrationResponseListener

	devices map[string]model.Device

	// publishMu serializes queue draining so messages keep their order
	publishMu sync.Mutex
}

// New makes a gateway module connected to the gateway broker described by
// mqttConf. The device status provider is mandatory; everything else is
// configured through opts.
func New(mqttConf connectivity.MQTTConf, deviceStatusProvider DeviceStatusProvider, opts *Options) (*Module, error) {
	if deviceStatusProvider == nil {
		return nil, errors.New("device status provider is mandatory")
	}
	if opts == nil {
		opts = &Options{}
	}
	if (opts.ActuationHandler == nil) != (opts.ActuatorStatusProvider == nil) {
		return nil, errors.New("actuation handler and actuator status provider must both be provided")
	}
	if (opts.ConfigurationHandler == nil) != (opts.ConfigurationProvider == nil) {
		return nil, errors.New("configuration handler and configuration provider must both be provided")
	}

	m := &Module{
		conn:                   opts.ConnectivityService,
		queue:                  opts.Queue,
		data:                   opts.DataProtocol,
		registration:           opts.RegistrationProtocol,
		status:                 opts.StatusProtocol,
		firmware:               opts.FirmwareUpdateProtocol,
		deviceStatusProvider:   deviceStatusProvider,
		actuationHandler:       opts.ActuationHandler,
		actuatorStatusProvider: opts.ActuatorStatusProvider,
		configurationHandler:   opts.ConfigurationHandler,
		configurationProvider:  opts.ConfigurationProvider,
		firmwareHandler:        opts.FirmwareHandler,
		registrationListener:   opts.RegistrationResponseListener,
		devices:                make(map[string]model.Device),
	}

	if m.conn == nil {
		conn, err := connectivity.NewMQTTService(mqttConf)
		if err != nil {
			return nil, err
		}
		m.conn = conn
	}
	if m.queue == nil {
		m.queue = persistence.NewMemQueue()
	}
	if m.data == nil {
		m.data = protocol.NewJSONDataProtocol()
	}
	if m.registration == nil {
		m.registration = protocol.NewJSONRegistrationProtocol()
	}
	if m.status == nil {
		m.status = protocol.NewJSONStatusProtocol()
	}
	if m.firmware == nil {
		m.firmware = protocol.NewJSONFirmwareUpdateProtocol()
	}

	m.conn.SetInboundMessageListener(m.onInboundMessage)

	return m, nil
}

// Connect sets the last will to cover all current devices, establishes the
// connection, then announces each device's status and firmware version.
func (m *Module) Connect() error {
	m.mu.Lock()
	keys := m.deviceKeys()
	lastWill, err := m.status.MakeLastWillMessage(keys)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.conn.SetLastWill(lastWill)

	if err := m.conn.Subscribe(m.registration.InboundTopics()...); err != nil {
		return err
	}
	m.mu.Lock()
	var topics []string
	for _, device := range m.devices {
		topics = append(topics, m.inboundTopicsForDevice(device.Key)...)
	}
	m.mu.Unlock()
	if len(topics) > 0 {
		if err := m.conn.Subscribe(topics...); err != nil {
			return err
		}
	}

	if err := m.conn.Connect(); err != nil {
		return err
	}

	m.mu.Lock()
	devices := make([]model.Device, 0, len(m.devices))
	for _, device := range m.devices {
		devices = append(devices, device)
	}
	m.mu.Unlock()

	for _, device := range devices {
		if err := m.PublishDeviceStatus(device.Key, m.deviceStatusProvider(device.Key)); err != nil {
			logger.Printf("Error publishing status for device %s: %s", device.Key, err)
		}
		if device.SupportsFirmwareUpdate() && m.firmwareHandler != nil {
			if err := m.publishFirmwareVersion(device.Key, m.firmwareHandler.FirmwareVersion(device.Key)); err != nil {
				logger.Printf("Error publishing firmware version for device %s: %s", device.Key, err)
			}
		}
	}

	return nil
}

// Disconnect announces the last will and closes the connection.
func (m *Module) Disconnect() error {
	return m.conn.Disconnect()
}

// Connected reports whether the module is currently connected to the gateway.
func (m *Module) Connected() bool {
	return m.conn.Connected()
}

// AddDevice stores the device, queues its registration request and subscribes
// to its inbound topics. Devices with actuators, configurations or firmware
// update support require the corresponding handlers.
func (m *Module) AddDevice(device model.Device) error {
	if err := device.Validate(); err != nil {
		return err
	}
	if device.HasActuators() && m.actuationHandler == nil {
		return fmt.Errorf("device %s has actuators but no actuation handler is set", device.Key)
	}
	if device.HasConfigurations() && m.configurationHandler == nil {
		return fmt.Errorf("device %s has configurations but no configuration handler is set", device.Key)
	}
	if device.SupportsFirmwareUpdate() && m.firmwareHandler == nil {
		return fmt.Errorf("device %s supports firmware update but no firmware handler is set", device.Key)
	}

	m.mu.Lock()
	if _, exists := m.devices[device.Key]; exists {
		m.mu.Unlock()
		return fmt.Errorf("device with key %s was already added", device.Key)
	}
	m.devices[device.Key] = device
	topics := m.inboundTopicsForDevice(device.Key)
	m.mu.Unlock()

	if err := m.conn.Subscribe(topics...); err != nil {
		return err
	}

	msg, err := m.registration.MakeRegistrationMessage(model.NewDeviceRegistrationRequest(device))
	if err != nil {
		return err
	}
	if err := m.queue.Put(msg); err != nil {
		return err
	}
	logger.Printf("Queued registration request for device %s", device.Key)

	if m.conn.Connected() {
		return m.Publish()
	}
	return nil
}

// RemoveDevice unsubscribes from the device's inbound topics and forgets it.
// It does not remove the device from the platform.
func (m *Module) RemoveDevice(deviceKey string) error {
	m.mu.Lock()
	_, exists := m.devices[deviceKey]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("unknown device key: %s", deviceKey)
	}
	delete(m.devices, deviceKey)
	topics := m.inboundTopicsForDevice(deviceKey)
	m.mu.Unlock()

	return m.conn.Unsubscribe(topics...)
}

// Devices returns the keys of all devices handled by this module.
func (m *Module) Devices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deviceKeys()
}

// AddSensorReading stores a sensor reading for publishing. A zero timestamp
// marks the reading as live.
func (m *Module) AddSensorReading(deviceKey, reference string, value interface{}, timestamp int64) error {
	msg, err := m.data.MakeSensorReadingMessage(deviceKey, model.SensorReading{
		Reference: reference,
		Value:     value,
		Timestamp: timestamp,
	})
	if err != nil {
		return err
	}
	return m.queue.Put(msg)
}

// AddAlarm stores an alarm event for publishing. A zero timestamp marks the
// event as live.
func (m *Module) AddAlarm(deviceKey, reference string, active bool, timestamp int64) error {
	msg, err := m.data.MakeAlarmMessage(deviceKey, model.Alarm{
		Reference: reference,
		Active:    active,
		Timestamp: timestamp,
	})
	if err != nil {
		return err
	}
	return m.queue.Put(msg)
}

// Publish drains the outbound queue in FIFO order. Draining stops on the
// first failed publish; the failed message stays at the head of the queue.
func (m *Module) Publish() error {
	m.publishMu.Lock()
	defer m.publishMu.Unlock()

	for {
		msg, err := m.queue.Peek()
		if err != nil {
			return err
		}
		if msg == nil {
			return nil
		}
		if err := m.conn.Publish(*msg); err != nil {
			return err
		}
		// the message is out, commit the removal
		if _, err := m.queue.Get(); err != nil {
			return err
		}
	}
}

// QueueSize returns the number of messages waiting to be published.
func (m *Module) QueueSize() int {
	return m.queue.Size()
}

// PublishActuatorStatus reads the actuator's state from the status provider
// and publishes it, queueing the message if the gateway is unreachable.
func (m *Module) PublishActuatorStatus(deviceKey, reference string) error {
	if m.actuatorStatusProvider == nil {
		return errors.New("no actuator status provider is set")
	}
	status, err := m.actuatorStatusProvider(deviceKey, reference)
	if err != nil {
		return fmt.Errorf("error getting actuator status for %s of device %s: %v", reference, deviceKey, err)
	}
	status.Reference = reference

	msg, err := m.data.MakeActuatorStatusMessage(deviceKey, status)
	if err != nil {
		return err
	}
	return m.publishOrQueue(msg)
}

// PublishConfiguration reads the device's configuration options from the
// provider and publishes them, queueing the message if the gateway is
// unreachable.
func (m *Module) PublishConfiguration(deviceKey string) error {
	if m.configurationProvider == nil {
		return errors.New("no configuration provider is set")
	}
	configuration, err := m.configurationProvider(deviceKey)
	if err != nil {
		return fmt.Errorf("error getting configuration of device %s: %v", deviceKey, err)
	}

	msg, err := m.data.MakeConfigurationMessage(deviceKey, configuration)
	if err != nil {
		return err
	}
	return m.publishOrQueue(msg)
}

// PublishDeviceStatus announces the status of a device, queueing the message
// if the gateway is unreachable.
func (m *Module) PublishDeviceStatus(deviceKey string, status model.DeviceStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid device status: %s", status)
	}
	msg, err := m.status.MakeDeviceStatusUpdateMessage(deviceKey, status)
	if err != nil {
		return err
	}
	return m.publishOrQueue(msg)
}

// PublishFirmwareUpdateStatus reports firmware update progress for a device.
// A COMPLETED status additionally re-announces the device's firmware version.
func (m *Module) PublishFirmwareUpdateStatus(deviceKey string, status model.FirmwareUpdateStatus) error {
	msg, err := m.firmware.MakeFirmwareUpdateStatusMessage(deviceKey, status)
	if err != nil {
		return err
	}
	if err := m.publishOrQueue(msg); err != nil {
		return err
	}

	if status.State == model.FirmwareUpdateStateCompleted && m.firmwareHandler != nil {
		return m.publishFirmwareVersion(deviceKey, m.firmwareHandler.FirmwareVersion(deviceKey))
	}
	return nil
}

func (m *Module) publishFirmwareVersion(deviceKey, version string) error {
	msg, err := m.firmware.MakeFirmwareVersionMessage(deviceKey, version)
	if err != nil {
		return err
	}
	return m.publishOrQueue(msg)
}

// publishOrQueue tries a direct publish and falls back to the queue, so the
// message goes out on the next Publish.
func (m *Module) publishOrQueue(msg model.Message) error {
	if err := m.conn.Publish(msg); err != nil {
		logger.Debugf("Publish to %s failed (%s), queueing message", msg.Topic, err)
		return m.queue.Put(msg)
	}
	return nil
}

// deviceKeys returns the keys of all devices. Callers must hold the mutex.
func (m *Module) deviceKeys() []string {
	keys := make([]string, 0, len(m.devices))
	for key := range m.devices {
		keys = append(keys, key)
	}
	return keys
}

// inboundTopicsForDevice collects the device's topics across all protocols.
func (m *Module) inboundTopicsForDevice(deviceKey string) []string {
	var topics []string
	topics = append(topics, m.data.InboundTopicsForDevice(deviceKey)...)
	topics = append(topics, m.status.InboundTopicsForDevice(deviceKey)...)
	topics = append(topics, m.registration.InboundTopicsForDevice(deviceKey)...)
	topics = append(topics, m.firmware.InboundTopicsForDevice(deviceKey)...)
	return topics
}
