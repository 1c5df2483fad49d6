package domain

import (
	"testing"
)

func TestCallback_RoundTrip(t *testing.T) {
	status := StatusFixing
	original := Callback{
		Command:  "/setdefectstatus",
		TaskID:   "3f2f1df0-0000-4000-8000-000000000001",
		DefectID: 42,
		Status:   &status,
	}

	encoded, err := original.Encode()
	if err != nil {
		t.Fatalf("Unexpected encode error: %v", err)
	}

	decoded, err := DecodeCallback(encoded)
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}

	if decoded.Command != original.Command {
		t.Errorf("Expected command %q, got %q", original.Command, decoded.Command)
	}
	if decoded.TaskID != original.TaskID {
		t.Errorf("Expected task id %q, got %q", original.TaskID, decoded.TaskID)
	}
	if decoded.DefectID != original.DefectID {
		t.Errorf("Expected defect id %d, got %d", original.DefectID, decoded.DefectID)
	}
	if decoded.Status == nil || *decoded.Status != status {
		t.Errorf("Expected status %v, got %v", status, decoded.Status)
	}
}

func TestCallback_RoundTrip_NoStatus(t *testing.T) {
	original := Callback{
		Command:  "/setdefectstatus",
		TaskID:   "3f2f1df0-0000-4000-8000-000000000001",
		DefectID: 42,
	}

	encoded, err := original.Encode()
	if err != nil {
		t.Fatalf("Unexpected encode error: %v", err)
	}

	decoded, err := DecodeCallback(encoded)
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}

	if decoded.Status != nil {
		t.Errorf("Expected nil status, got %v", *decoded.Status)
	}
}

func TestDecodeCallback_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "press the button"},
		{"empty", ""},
		{"missing command", `{"defect_id":42}`},
		{"wrong types", `{"command":7}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeCallback(tc.data); err == nil {
				t.Errorf("Expected decode error for %q", tc.data)
			}
		})
	}
}
