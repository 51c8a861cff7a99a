package errors

import (
	"errors"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindDecode, "Decode error"},
		{KindTimeout, "Worker timeout"},
		{KindSpawn, "Spawn error"},
		{KindGeometry, "Geometry error"},
		{KindDisplay, "Display error"},
		{KindPath, "Path error"},
		{KindConfig, "Configuration error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("worker exited")
	err := NewDecodeError("broken.png", underlying)

	got := err.Error()
	expected := "Decode error: broken.png: worker exited"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	err2 := NewTimeoutError("slow.jpg")
	got2 := err2.Error()
	expected2 := "Worker timeout: slow.jpg"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewSpawnError("image.png", underlying)

	if !errors.Is(err, underlying) {
		t.Error("expected errors.Is to match underlying error")
	}
	if err.Unwrap() != underlying {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), underlying)
	}
}

func TestCoreErrorIs(t *testing.T) {
	err := NewTimeoutError("slow.jpg")

	if !errors.Is(err, &CoreError{Kind: KindTimeout}) {
		t.Error("expected kind match for KindTimeout")
	}
	if errors.Is(err, &CoreError{Kind: KindDecode}) {
		t.Error("unexpected kind match for KindDecode")
	}
}

func TestIsKind(t *testing.T) {
	wrapped := NewGeometryError(800, 600)

	if !IsKind(wrapped, KindGeometry) {
		t.Error("IsKind should match KindGeometry")
	}
	if IsKind(wrapped, KindDisplay) {
		t.Error("IsKind should not match KindDisplay")
	}
	if IsKind(errors.New("plain"), KindGeometry) {
		t.Error("IsKind should not match a plain error")
	}
}
