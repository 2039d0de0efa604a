package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewPicksFormatterByEnvironment(t *testing.T) {
	for _, env := range []string{"", "local"} {
		log := New(env, "info")
		if _, ok := log.Logger.Formatter.(*logrus.TextFormatter); !ok {
			t.Fatalf("env %q: formatter = %T, want text", env, log.Logger.Formatter)
		}
	}
	log := New("production", "info")
	if _, ok := log.Logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("non-local env should log JSON, got %T", log.Logger.Formatter)
	}
}

func TestNewPicksLevel(t *testing.T) {
	cases := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"info", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"garbage", logrus.InfoLevel},
	}
	for _, c := range cases {
		if got := New("local", c.in).Logger.GetLevel(); got != c.want {
			t.Fatalf("level %q = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWithRequestGeneratesRequestID(t *testing.T) {
	log := New("test", "error")

	r := httptest.NewRequest("GET", "/api/catalog", nil)
	entry := log.WithRequest(r)
	if entry.Data["req_id"] == "" {
		t.Fatal("missing request id should be generated")
	}

	r.Header.Set("X-Request-ID", "req-123")
	entry = log.WithRequest(r)
	if entry.Data["req_id"] != "req-123" {
		t.Fatalf("req_id = %v, want the supplied header", entry.Data["req_id"])
	}
}
