package tables

import (
	"errors"
	"testing"

	"github.com/akarlsen/userfill/internal/domain"
)

func TestLookup(t *testing.T) {
	cols, err := Lookup(domain.SchemeLegacy, "revision")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if cols.ID != "rev_user" || cols.Name != "rev_user_text" {
		t.Errorf("unexpected columns: %+v", cols)
	}

	cols, err = Lookup(domain.SchemeActor, Actor)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if cols.ID != "actor_user" || cols.Name != "actor_name" {
		t.Errorf("unexpected columns: %+v", cols)
	}
}

func TestLookupSchemeMismatch(t *testing.T) {
	var usage *domain.UsageError

	// actor table is excluded from the legacy registry
	if _, err := Lookup(domain.SchemeLegacy, Actor); !errors.As(err, &usage) {
		t.Errorf("expected usage error, got %v", err)
	}

	// legacy tables are unavailable under the actor scheme
	if _, err := Lookup(domain.SchemeActor, "revision"); !errors.As(err, &usage) {
		t.Errorf("expected usage error, got %v", err)
	}

	if _, err := Lookup(domain.SchemeLegacy, "pagelinks"); !errors.As(err, &usage) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestSelectLegacyDefault(t *testing.T) {
	got, err := Select(domain.SchemeLegacy, nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	want := []string{"revision", "logging", "image", "oldimage", "filearchive", "archive", "ipblocks"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSelectLegacySubset(t *testing.T) {
	got, err := Select(domain.SchemeLegacy, []string{"logging", "archive"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(got) != 2 || got[0] != "logging" || got[1] != "archive" {
		t.Errorf("got %v", got)
	}

	var usage *domain.UsageError
	if _, err := Select(domain.SchemeLegacy, []string{"logging", "nosuchtable"}); !errors.As(err, &usage) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestSelectActorScheme(t *testing.T) {
	got, err := Select(domain.SchemeActor, nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(got) != 1 || got[0] != Actor {
		t.Errorf("got %v, want [actor]", got)
	}

	var usage *domain.UsageError
	if _, err := Select(domain.SchemeActor, []string{"revision"}); !errors.As(err, &usage) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestParseList(t *testing.T) {
	got := ParseList("revision|logging| image |")
	want := []string{"revision", "logging", "image"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if got := ParseList(""); got != nil {
		t.Errorf("expected nil for empty list, got %v", got)
	}
}
