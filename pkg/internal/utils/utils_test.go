package utils_test

import (
	"testing"

	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

func TestGenerateUniqueHash(t *testing.T) {
	a := utils.GenerateUniqueHash()
	b := utils.GenerateUniqueHash()
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct ids")
	}
}

func TestShortID(t *testing.T) {
	if got := utils.ShortID("abc"); got != "abc" {
		t.Fatalf("ShortID(abc) = %q", got)
	}
	if got := utils.ShortID("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("ShortID = %q", got)
	}
}
