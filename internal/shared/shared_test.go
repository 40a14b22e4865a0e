package shared

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" || second == "" {
		t.Fatal("expected non-empty IDs")
	}
	if first == second {
		t.Error("expected distinct IDs")
	}
	if len(strings.Split(first, "-")) != 5 {
		t.Errorf("expected UUID shape, got %s", first)
	}
}

func TestOpenBrowser(t *testing.T) {
	t.Run("unsupported platform", func(t *testing.T) {
		original := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = original }()

		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(map[string]string{"key": "value"}, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != `{"key":"value"}` {
			t.Errorf("expected compact JSON, got %s", data)
		}
	})

	t.Run("indented", func(t *testing.T) {
		data, err := MarshalJSON(map[string]string{"key": "value"}, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "\n  \"key\": \"value\"") {
			t.Errorf("expected indented JSON, got %s", data)
		}
	})

	t.Run("marshal failure", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for non-serializable value")
		}
	})
}
