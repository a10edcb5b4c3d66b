// Package mqtt publishes baking recommendations for home-automation
// consumers. Publishing is best effort: a failed publish is logged and the
// next interval tries again.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/bakewatt/bakewatt/core/model"
	"github.com/bakewatt/bakewatt/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled         bool   `json:"enabled"`
	Broker          string `json:"broker"`
	ClientID        string `json:"client_id"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	Topic           string `json:"topic"`
	QoS             byte   `json:"qos"`
	IntervalMinutes int    `json:"interval_minutes"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "bakewatt"
	}
	if c.Topic == "" {
		c.Topic = "bakewatt/advice"
	}
	if c.IntervalMinutes <= 0 {
		c.IntervalMinutes = 15
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required when mqtt is enabled")
	}
	return nil
}

// Publisher sends one advice payload to a topic.
type Publisher interface {
	PublishAdvice(advice *model.Advice) error
	Close()
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewPahoPublisher connects to the broker and returns a ready publisher.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{cli: cli, topic: cfg.Topic, qos: cfg.QoS, log: logger.New("mqtt-publisher")}, nil
}

// PublishAdvice publishes the current-hour panel of the advice as JSON.
func (p *PahoPublisher) PublishAdvice(advice *model.Advice) error {
	payload, err := json.Marshal(struct {
		Market  string      `json:"market"`
		Date    string      `json:"date"`
		Current model.Panel `json:"current"`
	}{advice.Market, advice.Date, advice.Current})
	if err != nil {
		return fmt.Errorf("marshal advice: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	if !tok.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	p.log.Debugf("published advice for %s %s", advice.Market, advice.Date)
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
