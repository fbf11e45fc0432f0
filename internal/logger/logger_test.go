package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkwell/internal/config"
)

func TestNewLevelAndFormat(t *testing.T) {
	log := New(config.Log{Level: "debug", Format: "json"})
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter, got %T", log.Formatter)
	}

	fallback := New(config.Log{Level: "loud", Format: "text"})
	if fallback.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %s", fallback.GetLevel())
	}
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if FromContext(c) == nil {
		t.Fatalf("expected fallback entry")
	}

	entry := logrus.New().WithField("request_id", "abc")
	c.Set(ContextKey, entry)
	if got := FromContext(c); got != entry {
		t.Fatalf("expected stored entry")
	}
}
