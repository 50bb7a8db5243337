package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeRedactsCredentialKeys(t *testing.T) {
	kv := sanitizeKVs([]interface{}{"username", "ann", "password", "hunter2", "access_token", "abc", "dangling"})
	want := []interface{}{"username", "ann", "password", "[REDACTED]", "access_token", "[REDACTED]", "dangling"}
	if len(kv) != len(want) {
		t.Fatalf("len: got %d want %d (%v)", len(kv), len(want), kv)
	}
	for i := range want {
		if kv[i] != want[i] {
			t.Fatalf("kv[%d]: got %v want %v", i, kv[i], want[i])
		}
	}
}

func TestLoggerWritesRedactedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "auth").Info("login", "username", "ann", "password_hash", "$2a$12$x")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "auth" || fields["username"] != "ann" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["password_hash"] != "[REDACTED]" {
		t.Fatalf("hash not redacted: %v", fields["password_hash"])
	}
}
