package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyber-oasis/internal/models"
)

const testToken = "123:abc"

type fakeBotAPI struct {
	mu    sync.Mutex
	sent  []map[string]string
	fails bool
	stall chan struct{} // when set, sendMessage waits until it is closed
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/bot" + testToken + "/getMe":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Oasis","username":"oasis_bot"}}`))
	case "/bot" + testToken + "/sendMessage":
		if f.stall != nil {
			select {
			case <-f.stall:
			case <-r.Context().Done():
			}
			return
		}
		if f.fails {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, map[string]string{
			"chat_id": r.FormValue("chat_id"),
			"text":    r.FormValue("text"),
		})
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":-100,"type":"group"},"text":"ok"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func newTestSink(t *testing.T, fake *fakeBotAPI) *Sink {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewWithClient(testToken, srv.URL+"/bot%s/%s", -100, srv.Client(), nil)
	require.NoError(t, err)
	return s
}

func TestNotifySendsOrganizerMessage(t *testing.T) {
	fake := &fakeBotAPI{}
	s := newTestSink(t, fake)

	err := s.Notify(context.Background(), "registration.organizer", models.Notification{
		Audience: models.AudienceOrganizers,
		To:       "organizers@cyberoasis.tn",
		Subject:  "New Registration - Cyber Oasis 1.0",
		Template: "new-registration",
		Data: map[string]string{
			"teamName":       "Alpha",
			"registrationId": "CO-1-2",
			"empty":          "",
		},
	})
	require.NoError(t, err)

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "-100", fake.sent[0]["chat_id"])
	assert.Equal(t,
		"New Registration - Cyber Oasis 1.0\nevent: registration.organizer\nregistrationId: CO-1-2\nteamName: Alpha",
		fake.sent[0]["text"])
}

func TestNotifySkipsSender(t *testing.T) {
	fake := &fakeBotAPI{}
	s := newTestSink(t, fake)

	err := s.Notify(context.Background(), "contact.autoreply", models.Notification{
		Audience: models.AudienceSender,
		To:       "test@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, fake.sent)
}

func TestNotifyReportsAPIError(t *testing.T) {
	fake := &fakeBotAPI{fails: true}
	s := newTestSink(t, fake)

	err := s.Notify(context.Background(), "contact.organizer", models.Notification{
		Audience: models.AudienceOrganizers,
		Subject:  "New Contact Message - Test User",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNotifyCancelledContext(t *testing.T) {
	fake := &fakeBotAPI{}
	s := newTestSink(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Notify(ctx, "contact.organizer", models.Notification{Audience: models.AudienceOrganizers})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.sent)
}

func TestNotifyStalledAPIHonorsDeadline(t *testing.T) {
	fake := &fakeBotAPI{stall: make(chan struct{})}
	s := newTestSink(t, fake)
	// runs before the server cleanup, so Close does not wait on the handler
	t.Cleanup(func() { close(fake.stall) })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.Notify(ctx, "registration.organizer", models.Notification{
		Audience: models.AudienceOrganizers,
		Subject:  "New Registration - Cyber Oasis 1.0",
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewUsesClientTimeout(t *testing.T) {
	fake := &fakeBotAPI{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := &http.Client{Timeout: 250 * time.Millisecond}
	s, err := NewWithClient(testToken, srv.URL+"/bot%s/%s", -100, client, nil)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, s.bot.Client.(*http.Client).Timeout)
}

func TestFormatTruncates(t *testing.T) {
	text := Format("contact.organizer", models.Notification{
		Subject: "s",
		Data:    map[string]string{"message": strings.Repeat("x", 5000)},
	})
	assert.Len(t, []rune(text), maxText)
	assert.True(t, strings.HasSuffix(text, "…"))
}
