package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMessages_MissingFileUsesDefaults(t *testing.T) {
	messages, err := LoadMessages(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	defaults := DefaultMessages()
	if messages.Welcome != defaults.Welcome {
		t.Error("Expected default welcome text")
	}
	if messages.UnknownCommand != defaults.UnknownCommand {
		t.Error("Expected default unknown command text")
	}
}

func TestLoadMessages_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	content := "welcome: \"Hello from the Grand Hotel!\"\nno_permission: \"Ask the front desk for access.\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	messages, err := LoadMessages(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if messages.Welcome != "Hello from the Grand Hotel!" {
		t.Errorf("Expected overridden welcome, got %q", messages.Welcome)
	}
	if messages.NoPermission != "Ask the front desk for access." {
		t.Errorf("Expected overridden no-permission text, got %q", messages.NoPermission)
	}

	// Untouched fields keep their defaults
	defaults := DefaultMessages()
	if messages.Canceled != defaults.Canceled {
		t.Error("Expected default canceled text")
	}
	if messages.StatusChanged != defaults.StatusChanged {
		t.Error("Expected default status-changed text")
	}
}

func TestLoadMessages_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	if err := os.WriteFile(path, []byte("welcome: [unclosed"), 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := LoadMessages(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
