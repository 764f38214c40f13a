package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/Wako6/pdf-marker/logging"
)

func TestSetLogger(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logging.SetLogger(slog.New(handler))

	log := logging.Logger()
	log.Info("annotation queued", slog.Int("page", 0))

	if !strings.Contains(buf.String(), "annotation queued") {
		t.Error("expected SetLogger to configure the package logger")
	}
}

func TestSetLogger_Nil(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	logging.SetLogger(nil)

	log := logging.Logger()
	if log == nil {
		t.Fatal("expected Logger() to return non-nil after SetLogger(nil)")
	}
	if log.Handler() != slog.DiscardHandler {
		t.Error("expected Logger() to use slog.DiscardHandler after SetLogger(nil)")
	}
}

func TestLogger_SilentByDefault(t *testing.T) {
	oldLogger := logging.Logger()
	logging.SetLogger(nil)
	defer func() { logging.SetLogger(oldLogger) }()

	log := logging.Logger()
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	if log.Handler() != slog.DiscardHandler {
		t.Error("expected default logger to use slog.DiscardHandler")
	}
}

func TestLogger_ReturnsSameInstance(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	log1 := logging.Logger()
	log2 := logging.Logger()
	if log1 != log2 {
		t.Error("expected Logger() to return same instance")
	}
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	handler := logging.NewBufferedLogHandler(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			logging.SetLogger(slog.New(handler))
		}()
		go func() {
			defer wg.Done()
			logging.Logger().Info("concurrent confirmation")
		}()
	}
	wg.Wait()
}
