package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestRedactsSensitiveAttrValues(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("assuming role", "external_id", "vendor-42", "account", "123456789012")

	out := buf.String()
	if strings.Contains(out, "vendor-42") {
		t.Errorf("expected the external ID to be redacted, got %q", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Errorf("expected a redaction marker, got %q", out)
	}
	if !strings.Contains(out, "123456789012") {
		t.Errorf("expected non-sensitive attrs to pass through, got %q", out)
	}
}

func TestRedactsMessageFragments(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("ignoring token=abc123 in config")

	out := buf.String()
	if !strings.Contains(out, "token=[REDACTED]") {
		t.Errorf("expected the message fragment to be scrubbed, got %q", out)
	}
}

func TestPlainMessagesUntouched(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("listing organization accounts")

	if out := buf.String(); !strings.Contains(out, "listing organization accounts") {
		t.Errorf("expected the message to pass through, got %q", out)
	}
}
