// Copyright 2020 WolkAbout Technology s.r.o.

package connectivity

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	uuid "github.com/satori/go.uuid"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

const disconnectQuiesceMillis = 250

// MQTTConf configures the connection to the gateway's MQTT broker.
type MQTTConf struct {
	// BrokerURL is the address of the gateway, e.g. tcp://localhost:1883
	BrokerURL string `json:"brokerURL"`
	// ClientID uniquely identifies this module on the gateway.
	// A random ID is generated when empty.
	ClientID string `json:"clientID"`
	// QoS is the MQTT Quality of Service level for all traffic (0, 1, 2).
	QoS byte `json:"qos"`
	// Username defaults to the client ID, which is how the gateway
	// identifies modules.
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	CaFile   string `json:"caFile,omitempty"`
	CertFile string `json:"certFile,omitempty"`
	KeyFile  string `json:"keyFile,omitempty"`
	Insecure bool   `json:"insecure,omitempty"`
}

// Validate checks the broker configuration.
func (c MQTTConf) Validate() error {
	if c.BrokerURL == "" {
		return fmt.Errorf("MQTT brokerURL is not specified")
	}
	if c.QoS > 2 {
		return fmt.Errorf("MQTT QoS must be 0, 1 or 2")
	}
	return nil
}

// MQTTService exchanges messages with the gateway over MQTT.
type MQTTService struct {
	sync.Mutex
	conf     MQTTConf
	client   paho.Client
	lastWill model.Message
	listener func(model.Message)
	// topics tracks subscriptions so they are renewed on reconnect
	topics map[string]byte
}

var _ Service = (*MQTTService)(nil)

// NewMQTTService prepares a connection to the gateway broker.
func NewMQTTService(conf MQTTConf) (*MQTTService, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if conf.ClientID == "" {
		conf.ClientID = uuid.NewV4().String()
		logger.Printf("MQTT: Client ID not set. Generated new UUID: %s", conf.ClientID)
	}
	if conf.Username == "" {
		conf.Username = conf.ClientID
	}

	return &MQTTService{
		conf:   conf,
		topics: make(map[string]byte),
	}, nil
}

// SetInboundMessageListener sets the handler for inbound messages.
// The handler runs on the MQTT network loop and must not block.
func (s *MQTTService) SetInboundMessageListener(listener func(model.Message)) {
	s.Lock()
	defer s.Unlock()
	s.listener = listener
}

// SetLastWill sets the message announced by the broker on unexpected
// disconnect. Must be called before Connect.
func (s *MQTTService) SetLastWill(msg model.Message) {
	s.Lock()
	defer s.Unlock()
	s.lastWill = msg
}

// Connect establishes the connection with the gateway.
func (s *MQTTService) Connect() error {
	s.Lock()
	defer s.Unlock()

	if s.client != nil && s.client.IsConnected() {
		return nil
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(s.conf.BrokerURL)
	opts.SetClientID(s.conf.ClientID)
	opts.SetUsername(s.conf.Username)
	if s.conf.Password != "" {
		opts.SetPassword(s.conf.Password)
	}
	opts.SetOnConnectHandler(s.onConnectHandler)
	opts.SetConnectionLostHandler(s.onConnectionLostHandler)
	if s.lastWill.Topic != "" {
		opts.SetBinaryWill(s.lastWill.Topic, s.lastWill.Payload, s.conf.QoS, false)
	}

	tlsConfig, err := pahoTLSConfig(s.conf.CaFile, s.conf.CertFile, s.conf.KeyFile, s.conf.Insecure)
	if err != nil {
		return logger.Errorf("MQTT: Error configuring TLS options for broker %v: %v", s.conf.BrokerURL, err)
	}
	opts.SetTLSConfig(tlsConfig)

	s.client = paho.NewClient(opts)

	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return logger.Errorf("MQTT: Error connecting to broker %v: %v", s.conf.BrokerURL, token.Error())
	}
	return nil
}

// Disconnect publishes the last will so the gateway marks the module's devices
// offline, then closes the connection.
func (s *MQTTService) Disconnect() error {
	s.Lock()
	defer s.Unlock()

	if s.client == nil || !s.client.IsConnected() {
		return nil
	}

	if s.lastWill.Topic != "" {
		if token := s.client.Publish(s.lastWill.Topic, s.conf.QoS, false, s.lastWill.Payload); token.Wait() && token.Error() != nil {
			logger.Printf("MQTT: Error publishing last will: %v", token.Error())
		}
	}

	s.client.Disconnect(disconnectQuiesceMillis)
	logger.Printf("MQTT: %s: Disconnected!", s.conf.BrokerURL)
	return nil
}

// Connected reports whether the connection is currently established.
func (s *MQTTService) Connected() bool {
	s.Lock()
	defer s.Unlock()
	return s.client != nil && s.client.IsConnected()
}

// Publish sends a message to the gateway.
func (s *MQTTService) Publish(msg model.Message) error {
	s.Lock()
	client := s.client
	s.Unlock()

	if client == nil || !client.IsConnected() {
		return ErrNotConnected
	}

	if token := client.Publish(msg.Topic, s.conf.QoS, false, msg.Payload); token.Wait() && token.Error() != nil {
		return logger.Errorf("MQTT: Error publishing to %s: %v", msg.Topic, token.Error())
	}
	logger.Debugf("MQTT: Published to %s: %s", msg.Topic, msg.Payload)
	return nil
}

// Subscribe adds topics to the tracked subscriptions and subscribes
// immediately when connected.
func (s *MQTTService) Subscribe(topics ...string) error {
	s.Lock()
	defer s.Unlock()

	filters := make(map[string]byte, len(topics))
	for _, topic := range topics {
		s.topics[topic] = s.conf.QoS
		filters[topic] = s.conf.QoS
	}

	if s.client == nil || !s.client.IsConnected() {
		// subscriptions are made by the connect handler
		return nil
	}

	if token := s.client.SubscribeMultiple(filters, s.onMessage); token.Wait() && token.Error() != nil {
		return logger.Errorf("MQTT: Error subscribing: %v", token.Error())
	}
	logger.Debugf("MQTT: Subscribed to %v", topics)
	return nil
}

// Unsubscribe removes topics from the tracked subscriptions.
func (s *MQTTService) Unsubscribe(topics ...string) error {
	s.Lock()
	defer s.Unlock()

	for _, topic := range topics {
		delete(s.topics, topic)
	}

	if s.client == nil || !s.client.IsConnected() {
		return nil
	}

	if token := s.client.Unsubscribe(topics...); token.Wait() && token.Error() != nil {
		return logger.Errorf("MQTT: Error unsubscribing: %v", token.Error())
	}
	logger.Debugf("MQTT: Unsubscribed from %v", topics)
	return nil
}

// onConnectHandler renews all subscriptions. Subscribing here means they are
// re-established after every reconnect.
func (s *MQTTService) onConnectHandler(client paho.Client) {
	logger.Printf("MQTT: %s: Connected.", s.conf.BrokerURL)

	s.Lock()
	filters := make(map[string]byte, len(s.topics))
	for topic, qos := range s.topics {
		filters[topic] = qos
	}
	s.Unlock()

	if len(filters) == 0 {
		return
	}
	if token := client.SubscribeMultiple(filters, s.onMessage); token.Wait() && token.Error() != nil {
		logger.Printf("MQTT: %s: Error subscribing: %v", s.conf.BrokerURL, token.Error())
		return
	}
	logger.Printf("MQTT: %s: Subscribed to %d topics", s.conf.BrokerURL, len(filters))
}

func (s *MQTTService) onConnectionLostHandler(client paho.Client, err error) {
	logger.Printf("MQTT: %s: Connection lost: %v", s.conf.BrokerURL, err)
}

func (s *MQTTService) onMessage(client paho.Client, msg paho.Message) {
	logger.Debugf("MQTT: \"SUB %s MQTT/QOS%d\" %d bytes", msg.Topic(), msg.Qos(), len(msg.Payload()))

	s.Lock()
	listener := s.listener
	s.Unlock()

	if listener != nil {
		listener(model.Message{Topic: msg.Topic(), Payload: msg.Payload()})
	}
}

func pahoTLSConfig(caFile, certFile, keyFile string, insecure bool) (*tls.Config, error) {

	tlsConfig := &tls.Config{}
	if caFile != "" {
		// Import trusted certificates from CAfile.pem.
		// Alternatively, manually add CA certificates to
		// default openssl CA bundle.
		tlsConfig.RootCAs = x509.NewCertPool()
		pemCerts, err := os.ReadFile(caFile)
		if err == nil {
			tlsConfig.RootCAs.AppendCertsFromPEM(pemCerts)
		}
	}
	if certFile != "" && keyFile != "" {
		// Import client certificate/key pair
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("error loading client keypair: %s", err)
		}
		cert.Leaf, err = x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return nil, fmt.Errorf("error parsing client certificate: %s", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	tlsConfig.InsecureSkipVerify = insecure

	return tlsConfig, nil
}
