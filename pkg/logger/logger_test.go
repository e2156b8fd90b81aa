package logger

import "testing"

func TestInitAndL(t *testing.T) {
	l, err := Init("debug", "json")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if l == nil || L() != l {
		t.Fatal("L must return the logger Init built")
	}
	Sync()
}

func TestInitRejectsBadInputs(t *testing.T) {
	if _, err := Init("loud", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := Init("info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
