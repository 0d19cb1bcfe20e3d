package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/eclipse/paho.golang/paho/session/state"

	"github.com/sebasr/gcs-service/internal/models"
)

// MQTTNotifier publishes session events as JSON to an MQTT broker under
// <prefix>/events/<event_type>.
type MQTTNotifier struct {
	cm          *autopaho.ConnectionManager
	topicPrefix string
	cancel      context.CancelFunc
}

// NewMQTTNotifier creates a notifier connected to the given broker.
// The connection manager reconnects on its own; publishes wait for the
// connection to be up.
func NewMQTTNotifier(brokerURL, topicPrefix, clientID string) (*MQTTNotifier, error) {
	serverURL, err := url.Parse(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse broker URL: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	cfg := autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{serverURL},
		KeepAlive:                     60,
		CleanStartOnInitialConnection: false,
		SessionExpiryInterval:         60,
		ReconnectBackoff:              autopaho.NewConstantBackoff(5 * time.Second),
		OnConnectError: func(err error) {
			log.Printf("mqtt notifier connect error: %v", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID: clientID,
			Session:  state.NewInMemory(),
			OnClientError: func(err error) {
				log.Printf("mqtt notifier client error: %v", err)
			},
		},
	}

	cm, err := autopaho.NewConnection(ctx, cfg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}

	return &MQTTNotifier{
		cm:          cm,
		topicPrefix: topicPrefix,
		cancel:      cancel,
	}, nil
}

// PublishEvent publishes one session event
func (n *MQTTNotifier) PublishEvent(ctx context.Context, event *models.SessionEvent) error {
	if err := n.cm.AwaitConnection(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("%s/events/%s", n.topicPrefix, event.EventType)
	_, err = n.cm.Publish(ctx, &paho.Publish{
		QoS:     1,
		Topic:   topic,
		Payload: payload,
		Retain:  false,
	})
	return err
}

// Close disconnects from the broker
func (n *MQTTNotifier) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := n.cm.Disconnect(ctx)
	n.cancel()
	return err
}
