package webhook

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/app/mocks"
	"github.com/evseew/PEcoinDashboard-Backend/models"
)

func init() {
	log.SetOutput(io.Discard)
}

func testConfig() NotifierConfig {
	return NotifierConfig{
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
		Timeout:       time.Second,
	}
}

func TestRegister(t *testing.T) {
	notifier := NewNotifier(testConfig())

	_, err := notifier.Register(models.Webhook{})
	assert.Error(t, err)

	registered, err := notifier.Register(models.Webhook{URL: "http://example.com/hook"})
	assert.NoError(t, err)
	assert.NotEmpty(t, registered.WebhookId)
	assert.False(t, registered.CreatedAt.IsZero())

	custom, err := notifier.Register(models.Webhook{WebhookId: "custom", URL: "http://example.com/hook"})
	assert.NoError(t, err)
	assert.Equal(t, "custom", custom.WebhookId)

	assert.Len(t, notifier.List(), 2)
}

func TestUnregister(t *testing.T) {
	notifier := NewNotifier(testConfig())

	registered, err := notifier.Register(models.Webhook{URL: "http://example.com/hook"})
	assert.NoError(t, err)

	assert.True(t, notifier.Unregister(registered.WebhookId))
	assert.False(t, notifier.Unregister(registered.WebhookId))
	assert.Empty(t, notifier.List())
}

func TestNotifyEventSignsPayload(t *testing.T) {
	type received struct {
		body      []byte
		signature string
		userAgent string
		custom    string
	}
	got := make(chan received, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- received{
			body:      body,
			signature: r.Header.Get("X-PEcoin-Signature"),
			userAgent: r.Header.Get("User-Agent"),
			custom:    r.Header.Get("X-Custom"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNotifier(testConfig())
	_, err := notifier.Register(models.Webhook{
		URL:     server.URL,
		Events:  []string{models.EventIndexingCompleted},
		Headers: map[string]string{"X-Custom": "value"},
		Secret:  "hook-secret",
		Active:  true,
	})
	assert.NoError(t, err)

	notifier.NotifyEvent(models.EventIndexingCompleted, map[string]interface{}{"operationId": "op-1"})

	select {
	case r := <-got:
		assert.Equal(t, SignPayload(r.body, "hook-secret"), r.signature)
		assert.Equal(t, "PEcoin-DAS-Indexing-Monitor/1.0", r.userAgent)
		assert.Equal(t, "value", r.custom)
		assert.Contains(t, string(r.body), models.EventIndexingCompleted)
	case <-time.After(time.Second):
		t.Fatal("expected a delivery")
	}
}

func TestNotifyEventSkipsUnsubscribed(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNotifier(testConfig())
	_, err := notifier.Register(models.Webhook{
		URL:    server.URL,
		Events: []string{models.EventIndexingCompleted},
		Active: true,
	})
	assert.NoError(t, err)

	notifier.NotifyEvent(models.EventIndexingTimeout, nil)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestNotifyEventIsolatesFailingTargets(t *testing.T) {
	delivered := make(chan struct{}, 1)
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered <- struct{}{}
		w.WriteHeader(http.StatusOK)
	}))
	defer okServer.Close()
	failServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failServer.Close()

	notifier := NewNotifier(testConfig())
	for _, url := range []string{failServer.URL, okServer.URL} {
		_, err := notifier.Register(models.Webhook{
			URL:    url,
			Events: []string{models.EventIndexingCompleted},
			Active: true,
		})
		assert.NoError(t, err)
	}

	notifier.NotifyEvent(models.EventIndexingCompleted, nil)

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("healthy target was not delivered to")
	}

	assert.Eventually(t, func() bool {
		stats := notifier.GetStats()
		return stats.DeliveriesOk == 1 && stats.DeliveriesFailed == 1
	}, time.Second, 5*time.Millisecond)
}

func TestTestWebhookRetriesAndReports(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewNotifier(testConfig())
	registered, err := notifier.Register(models.Webhook{URL: server.URL, Active: true})
	assert.NoError(t, err)

	result, err := notifier.TestWebhook(registered.WebhookId)
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, int64(3), atomic.LoadInt64(&calls))

	_, err = notifier.TestWebhook("missing")
	assert.Error(t, err)
}

func TestTestWebhookSuccess(t *testing.T) {
	got := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNotifier(testConfig())
	registered, err := notifier.Register(models.Webhook{URL: server.URL, Active: true})
	assert.NoError(t, err)

	result, err := notifier.TestWebhook(registered.WebhookId)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Attempts)
	assert.Contains(t, <-got, models.EventTest)
}

func TestPersistence(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	app.DB = mockDB

	config := testConfig()
	config.Persist = true
	notifier := NewNotifier(config)

	mockDB.EXPECT().FindMany(models.CollectionWebhooks, mock.Anything, mock.Anything).Return(nil).Once()
	assert.NoError(t, notifier.LoadFromDB())

	mockDB.EXPECT().UpsertOne(models.CollectionWebhooks, mock.Anything, mock.Anything).Return(nil).Once()
	registered, err := notifier.Register(models.Webhook{URL: "http://example.com/hook"})
	assert.NoError(t, err)

	mockDB.EXPECT().DeleteOne(models.CollectionWebhooks, mock.Anything).Return(nil).Once()
	assert.True(t, notifier.Unregister(registered.WebhookId))
}
