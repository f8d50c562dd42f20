package cmd

import (
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/sapslaj/awslaunch/internal/keyring"
)

func TestExternalIDSetRejectsNonNumericAccount(t *testing.T) {
	_, err := runRootCommand(t, "external-id", "set", "not-an-id")
	if err == nil {
		t.Fatal("expected an error for a non-numeric account ID")
	}
	if !strings.Contains(err.Error(), "must be digits") {
		t.Errorf("expected a digits-only error, got: %v", err)
	}
}

func TestExternalIDRemoveStored(t *testing.T) {
	gokeyring.MockInit()

	if err := keyring.SaveExternalID("123456789012", "vendor-42"); err != nil {
		t.Fatalf("failed to seed keyring: %v", err)
	}

	out, err := runRootCommand(t, "external-id", "remove", "123456789012")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "removed") {
		t.Errorf("expected a removal confirmation, got: %s", out)
	}
	if keyring.HasExternalID("123456789012") {
		t.Error("expected the external ID to be gone after remove")
	}
}

func TestExternalIDRemoveMissing(t *testing.T) {
	gokeyring.MockInit()

	_, err := runRootCommand(t, "external-id", "remove", "999999999999")
	if err == nil {
		t.Fatal("expected an error for a missing external ID")
	}
	if !strings.Contains(err.Error(), "no external ID stored") {
		t.Errorf("expected a missing-ID error, got: %v", err)
	}
}
