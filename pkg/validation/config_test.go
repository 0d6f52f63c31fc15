package validation

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Name", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Required("Name", "value")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_Positive(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Positive("MaxIterations", 0)

	if !cv.HasErrors() {
		t.Error("Expected error for non-positive value")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Positive("MaxIterations", 3)

	if cv2.HasErrors() {
		t.Error("Expected no error for positive value")
	}
}

func TestConfigValidator_RangeFloat(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.RangeFloat("Threshold", 1.5, 0, 1)

	if !cv.HasErrors() {
		t.Error("Expected error for out-of-range float")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.RangeFloat("Threshold", 0.5, 0, 1)

	if cv2.HasErrors() {
		t.Error("Expected no error for in-range float")
	}
}

func TestConfigValidator_MinDuration(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.MinDuration("Timeout", time.Millisecond, time.Second)

	if !cv.HasErrors() {
		t.Error("Expected error for duration below minimum")
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.OneOf("Level", "verbose", []string{"debug", "info", "warn", "error"})

	if !cv.HasErrors() {
		t.Error("Expected error for disallowed value")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.OneOf("Level", "info", []string{"debug", "info", "warn", "error"})

	if cv2.HasErrors() {
		t.Error("Expected no error for allowed value")
	}
}

func TestConfigValidator_CollectsAllErrors(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Name", "").
		Positive("Count", -1).
		RangeFloat("Threshold", 2.0, 0, 1)

	if len(cv.Errors()) != 3 {
		t.Errorf("Expected 3 collected errors, got %d", len(cv.Errors()))
	}

	err := cv.Validate()
	if err == nil {
		t.Fatal("Expected combined error")
	}
}

func TestConfigValidator_ValidateClean(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Name", "ontology").Positive("Count", 1)

	if err := cv.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

type fakeConfig struct {
	valid bool
}

func (c *fakeConfig) Validate() error {
	if !c.valid {
		return errors.New("invalid")
	}
	return nil
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(&fakeConfig{valid: true}); err != nil {
		t.Errorf("Expected nil error for valid config, got %v", err)
	}
	if err := ValidateConfig(&fakeConfig{valid: false}); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestDefaultOr(t *testing.T) {
	if got := DefaultOr("", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}
	if got := DefaultOr("set", "fallback"); got != "set" {
		t.Errorf("Expected set, got %q", got)
	}
	if got := DefaultOrInt(0, 10); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
	if got := DefaultOrDuration(0, time.Second); got != time.Second {
		t.Errorf("Expected 1s, got %v", got)
	}
}
