package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const DefaultTopicPrefix = "farmhub"

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

// MQTTSink publishes one JSON message per reading on <prefix>/<device_id>/<sensor_id>.
type MQTTSink struct {
	client mqtt.Client
	prefix string
	qos    byte
}

type message struct {
	DeviceID  int       `json:"device_id"`
	SensorID  int       `json:"sensor_id"`
	Name      string    `json:"name,omitempty"`
	Units     string    `json:"units,omitempty"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMQTTSink(cfg MQTTConfig) (*MQTTSink, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker is required")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "farmhub-export"
	}
	opts := mqtt.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connection failed: %w", token.Error())
	}
	return newMQTTSink(client, cfg), nil
}

func newMQTTSink(client mqtt.Client, cfg MQTTConfig) *MQTTSink {
	prefix := strings.TrimSuffix(cfg.TopicPrefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &MQTTSink{client: client, prefix: prefix, qos: cfg.QoS}
}

func (s *MQTTSink) Topic(deviceID, sensorID int) string {
	return fmt.Sprintf("%s/%d/%d", s.prefix, deviceID, sensorID)
}

func (s *MQTTSink) Write(ctx context.Context, series Series) error {
	topic := s.Topic(series.DeviceID, series.SensorID)
	for _, r := range series.Readings {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := json.Marshal(message{
			DeviceID:  series.DeviceID,
			SensorID:  series.SensorID,
			Name:      series.Name,
			Units:     series.Units,
			Value:     r.Value,
			CreatedAt: r.CreatedAt.Time,
		})
		if err != nil {
			return err
		}
		token := s.client.Publish(topic, s.qos, false, payload)
		if token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
		}
	}
	return nil
}

func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
