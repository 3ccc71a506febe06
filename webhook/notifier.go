package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/models"
)

const (
	signatureHeader = "X-PEcoin-Signature"
	userAgent       = "PEcoin-DAS-Indexing-Monitor/1.0"
)

// NotifierConfig carries the delivery retry policy. Tests pass small
// values; production values come from NotifierConfigFromApp.
type NotifierConfig struct {
	RetryAttempts int
	RetryDelay    time.Duration
	Timeout       time.Duration
	// Persist mirrors registrations into the database so they survive
	// restarts.
	Persist bool
}

func NotifierConfigFromApp() NotifierConfig {
	return NotifierConfig{
		RetryAttempts: int(app.Config.Webhook.RetryAttempts),
		RetryDelay:    time.Duration(app.Config.Webhook.RetryDelayMillis) * time.Millisecond,
		Timeout:       time.Duration(app.Config.Webhook.TimeoutMillis) * time.Millisecond,
		Persist:       true,
	}
}

// Envelope is the signed JSON body POSTed to every subscriber.
type Envelope struct {
	Event     string      `json:"event"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
	WebhookId string      `json:"webhook_id"`
}

// DeliveryResult reports the outcome of one target's delivery,
// including retries.
type DeliveryResult struct {
	WebhookId string `json:"webhookId"`
	URL       string `json:"url"`
	Success   bool   `json:"success"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
}

// Stats is a point-in-time snapshot of the notifier.
type Stats struct {
	Registered       int   `json:"registered"`
	Active           int   `json:"active"`
	EventsDispatched int64 `json:"eventsDispatched"`
	DeliveriesOk     int64 `json:"deliveriesSucceeded"`
	DeliveriesFailed int64 `json:"deliveriesFailed"`
}

// Notifier fans events out to registered webhooks. Each target is
// delivered to concurrently; one failing target never delays another.
type Notifier struct {
	mu       sync.RWMutex
	webhooks map[string]models.Webhook

	config     NotifierConfig
	httpClient *http.Client
	logger     *log.Entry

	statsMu          sync.Mutex
	eventsDispatched int64
	deliveriesOk     int64
	deliveriesFailed int64
}

func NewNotifier(config NotifierConfig) *Notifier {
	return &Notifier{
		webhooks:   map[string]models.Webhook{},
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     log.WithField("module", "webhook"),
	}
}

// LoadFromDB restores persisted registrations. Call once at startup.
func (n *Notifier) LoadFromDB() error {
	if !n.config.Persist {
		return nil
	}
	var stored []models.Webhook
	if err := app.DB.FindMany(models.CollectionWebhooks, map[string]interface{}{}, &stored); err != nil {
		return fmt.Errorf("failed to load webhooks: %w", err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, webhook := range stored {
		n.webhooks[webhook.WebhookId] = webhook
	}
	n.logger.Infof("[WEBHOOK] loaded %d registrations", len(stored))
	return nil
}

// Register adds or replaces a registration. An empty id gets a
// generated one; the final registration is returned.
func (n *Notifier) Register(webhook models.Webhook) (models.Webhook, error) {
	if webhook.URL == "" {
		return models.Webhook{}, fmt.Errorf("webhook url is required")
	}
	if webhook.WebhookId == "" {
		webhook.WebhookId = uuid.NewString()
	}
	if webhook.CreatedAt.IsZero() {
		webhook.CreatedAt = time.Now()
	}

	n.mu.Lock()
	n.webhooks[webhook.WebhookId] = webhook
	n.mu.Unlock()

	if n.config.Persist {
		err := app.DB.UpsertOne(
			models.CollectionWebhooks,
			map[string]interface{}{"webhook_id": webhook.WebhookId},
			map[string]interface{}{"$set": webhook},
		)
		if err != nil {
			n.logger.WithError(err).Error("[WEBHOOK] failed to persist registration")
		}
	}
	return webhook, nil
}

// Unregister removes a registration; false when the id is unknown.
func (n *Notifier) Unregister(webhookId string) bool {
	n.mu.Lock()
	_, found := n.webhooks[webhookId]
	delete(n.webhooks, webhookId)
	n.mu.Unlock()

	if found && n.config.Persist {
		if err := app.DB.DeleteOne(models.CollectionWebhooks, map[string]interface{}{"webhook_id": webhookId}); err != nil {
			n.logger.WithError(err).Error("[WEBHOOK] failed to delete registration")
		}
	}
	return found
}

func (n *Notifier) Get(webhookId string) (models.Webhook, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	webhook, ok := n.webhooks[webhookId]
	return webhook, ok
}

func (n *Notifier) List() []models.Webhook {
	n.mu.RLock()
	defer n.mu.RUnlock()
	list := make([]models.Webhook, 0, len(n.webhooks))
	for _, webhook := range n.webhooks {
		list = append(list, webhook)
	}
	return list
}

func (n *Notifier) GetStats() Stats {
	n.mu.RLock()
	registered := len(n.webhooks)
	active := 0
	for _, webhook := range n.webhooks {
		if webhook.Active {
			active++
		}
	}
	n.mu.RUnlock()

	n.statsMu.Lock()
	defer n.statsMu.Unlock()
	return Stats{
		Registered:       registered,
		Active:           active,
		EventsDispatched: n.eventsDispatched,
		DeliveriesOk:     n.deliveriesOk,
		DeliveriesFailed: n.deliveriesFailed,
	}
}

// NotifyEvent dispatches an event to every active subscriber of that
// event type. Delivery runs in the background; this never blocks the
// caller and never returns an error past the notifier boundary.
func (n *Notifier) NotifyEvent(event string, data interface{}) {
	n.mu.RLock()
	targets := make([]models.Webhook, 0)
	for _, webhook := range n.webhooks {
		if webhook.Active && webhook.SubscribedTo(event) {
			targets = append(targets, webhook)
		}
	}
	n.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	n.statsMu.Lock()
	n.eventsDispatched++
	n.statsMu.Unlock()

	for _, target := range targets {
		go func(target models.Webhook) {
			result := n.deliver(target, Envelope{
				Event:     event,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Data:      data,
				WebhookId: target.WebhookId,
			})
			if !result.Success {
				n.logger.
					WithField("webhook_id", target.WebhookId).
					WithField("event", event).
					Errorf("[WEBHOOK] delivery failed permanently: %s", result.Error)
			}
		}(target)
	}
}

// TestWebhook pushes a synthetic event through the normal delivery path
// and reports the outcome synchronously.
func (n *Notifier) TestWebhook(webhookId string) (DeliveryResult, error) {
	webhook, ok := n.Get(webhookId)
	if !ok {
		return DeliveryResult{}, fmt.Errorf("webhook %s not found", webhookId)
	}
	result := n.deliver(webhook, Envelope{
		Event:     models.EventTest,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      map[string]interface{}{"message": "test delivery"},
		WebhookId: webhook.WebhookId,
	})
	return result, nil
}

func (n *Notifier) deliver(webhook models.Webhook, envelope Envelope) DeliveryResult {
	result := DeliveryResult{WebhookId: webhook.WebhookId, URL: webhook.URL}

	body, err := json.Marshal(envelope)
	if err != nil {
		result.Error = err.Error()
		n.recordDelivery(false)
		return result
	}

	for attempt := 1; attempt <= n.config.RetryAttempts; attempt++ {
		result.Attempts = attempt
		if err := n.post(webhook, body); err == nil {
			result.Success = true
			n.recordDelivery(true)
			return result
		} else {
			result.Error = err.Error()
			n.logger.
				WithField("webhook_id", webhook.WebhookId).
				Debugf("[WEBHOOK] attempt %d/%d failed: %s", attempt, n.config.RetryAttempts, err)
		}
		if attempt < n.config.RetryAttempts {
			time.Sleep(n.config.RetryDelay)
		}
	}
	n.recordDelivery(false)
	return result
}

func (n *Notifier) post(webhook models.Webhook, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, webhook.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for key, value := range webhook.Headers {
		req.Header.Set(key, value)
	}
	if webhook.Secret != "" {
		req.Header.Set(signatureHeader, SignPayload(body, webhook.Secret))
	}

	res, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return nil
}

func (n *Notifier) recordDelivery(ok bool) {
	n.statsMu.Lock()
	defer n.statsMu.Unlock()
	if ok {
		n.deliveriesOk++
	} else {
		n.deliveriesFailed++
	}
}

// SignPayload computes the signature header value for a payload:
// hex-encoded HMAC-SHA256 with a "sha256=" prefix.
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
