package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintechs/portal/internal/config"
	"github.com/vintechs/portal/internal/pubsub"
)

type mockConfigProvider struct {
	config.Provider
	provider, apiKey, sender string
}

func (m *mockConfigProvider) GetEmailProvider() string { return m.provider }
func (m *mockConfigProvider) GetEmailAPIKey() string   { return m.apiKey }
func (m *mockConfigProvider) GetEmailSender() string   { return m.sender }

func TestNewSender(t *testing.T) {
	const from = "Vintechs <hello@vintechs.co.ke>"
	tests := []struct {
		name    string
		cfg     *mockConfigProvider
		want    any
		wantErr string
	}{
		{"log", &mockConfigProvider{provider: "log", sender: from}, &LogSender{}, ""},
		{"case and spaces", &mockConfigProvider{provider: " Log ", sender: "hello@vintechs.co.ke"}, &LogSender{}, ""},
		{"resend", &mockConfigProvider{provider: "resend", apiKey: "re_123", sender: from}, &ResendSender{}, ""},
		{"resend without key", &mockConfigProvider{provider: "resend", sender: from}, nil, "EMAIL_API_KEY"},
		{"unknown provider", &mockConfigProvider{provider: "smtp", sender: from}, nil, `unknown email provider "smtp", want one of log, resend`},
		{"bad sender", &mockConfigProvider{provider: "log", sender: "hello at vintechs"}, nil, "invalid EMAIL_SENDER"},
		{"empty sender", &mockConfigProvider{provider: "log"}, nil, "invalid EMAIL_SENDER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSender(tt.cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestResendSender(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewResendSender("re_123", "Vintechs <hello@vintechs.co.ke>")
	s.endpoint = srv.URL

	require.NoError(t, s.Send("john@example.com", "Hi", "<p>Hi</p>"))
	assert.Equal(t, "Bearer re_123", auth)
	assert.Equal(t, "john@example.com", got.To)
	assert.Equal(t, "Vintechs <hello@vintechs.co.ke>", got.From)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer failing.Close()
	s.endpoint = failing.URL
	assert.ErrorContains(t, s.Send("john@example.com", "Hi", "x"), "status 422")
}

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	body string
}

func (r *recordingSender) Send(to, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, to+"|"+subject)
	r.body = htmlBody
	return nil
}

func (r *recordingSender) snapshot() ([]string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...), r.body
}

func TestWelcomeSubscriber(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bridge.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &recordingSender{}
	require.NoError(t, NewWelcomeSubscriber(sender, "Vintechs", "http://localhost:8080/").Start(ctx, bridge))

	ev := pubsub.AuthEvent{UserID: "user:john", Email: "john@example.com", FirstName: "<John>"}
	require.NoError(t, pubsub.Publish(ctx, bridge, pubsub.UserSignedUp, ev.UserID, ev))

	require.Eventually(t, func() bool {
		sent, _ := sender.snapshot()
		return len(sent) == 1
	}, 2*time.Second, 10*time.Millisecond)

	sent, body := sender.snapshot()
	assert.Equal(t, "john@example.com|Welcome to Vintechs", sent[0])
	assert.Contains(t, body, "&lt;John&gt;")
	assert.Contains(t, body, `href="http://localhost:8080/dashboard"`)
}
