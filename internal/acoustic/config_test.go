package acoustic

import (
	"errors"
	"testing"

	"github.com/jero-scafati/roomwaves/internal/acoustic/bank"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateRejectsUnknownFilterType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilterType = bank.FilterType(7)
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestValidateRejectsNonPositiveWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmoothingWindowMS = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestFcKey(t *testing.T) {
	if got := FcKey(1000); got != "1000" {
		t.Fatalf("got %q, want %q", got, "1000")
	}
}
