package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"
)

type fakeBot struct {
	mu       sync.Mutex
	paths    []string
	bodies   []sendMessageParams
	response string
}

func (b *fakeBot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var params sendMessageParams
	_ = json.Unmarshal(body, &params)

	b.mu.Lock()
	b.paths = append(b.paths, r.URL.Path)
	b.bodies = append(b.bodies, params)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, b.response)
}

func TestTelegram_Send(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	bot := &fakeBot{response: `{"ok":true,"result":{}}`}
	srv := httptest.NewServer(bot)
	c.Cleanup(srv.Close)

	tg := &Telegram{BotToken: "123:abc", ChatID: -100, TopicID: 9, BaseURL: srv.URL, Logger: zerolog.Nop()}
	c.Assert(tg.Send(context.Background(), "*deployed*"), qt.IsNil)

	c.Assert(bot.paths, qt.DeepEquals, []string{"/bot123:abc/sendMessage"})
	c.Assert(bot.bodies, qt.DeepEquals, []sendMessageParams{{
		ChatID:          -100,
		Text:            "*deployed*",
		ParseMode:       "Markdown",
		MessageThreadID: 9,
	}})
}

func TestTelegram_Rejected(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	bot := &fakeBot{response: `{"ok":false,"description":"Bad Request: chat not found"}`}
	srv := httptest.NewServer(bot)
	c.Cleanup(srv.Close)

	tg := &Telegram{BotToken: "123:abc", ChatID: 1, BaseURL: srv.URL, Logger: zerolog.Nop()}
	err := tg.Send(context.Background(), "hello")
	c.Assert(err, qt.ErrorMatches, `telegram rejected message \(200 OK\): Bad Request: chat not found`)
}

func TestTelegram_TransportErrorHidesToken(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	tg := &Telegram{BotToken: "secret-token", ChatID: 1, BaseURL: baseURL, Logger: zerolog.Nop()}
	err := tg.Send(context.Background(), "hello")
	c.Assert(err, qt.ErrorMatches, `failed to send message: .*`)
	c.Assert(err.Error(), qt.Not(qt.Contains), "secret-token")
}

func TestTelegram_Disabled(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	tg := &Telegram{BotToken: "123:abc", Logger: zerolog.Nop()}
	c.Assert(tg.Enabled(), qt.IsFalse)
	c.Assert(tg.Send(context.Background(), "hello"), qt.IsNil)
}
