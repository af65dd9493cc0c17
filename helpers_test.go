package menu

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-menu/pkg/yamlsection"
)

func loadFixture(t *testing.T, name string) *yamlsection.Document {
	t.Helper()
	doc, err := yamlsection.Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load fixture %s: %v", name, err)
	}
	return doc
}

func parseSection(t *testing.T, data string) *yamlsection.Document {
	t.Helper()
	doc, err := yamlsection.Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse section: %v", err)
	}
	return doc
}

// logBuffer collects text log output so tests can count messages.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) count(message string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), "msg=\""+message+"\"")
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *logBuffer) {
	buf := &logBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

type permissions map[string]bool

func (p permissions) HasPermission(permission string) bool {
	return p[permission]
}
