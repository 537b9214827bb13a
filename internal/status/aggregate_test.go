package status

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate_SetOnceInEnumerationOrder(t *testing.T) {
	agg := NewAggregate([]string{"c", "a", "b", "a"})

	if diff := cmp.Diff([]string{"c", "a", "b"}, agg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	// Completion order differs from enumeration order.
	for _, name := range []string{"b", "c", "a"} {
		if err := agg.Set(name, Failed(NoVCSRoot)); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}
	if !agg.Complete() {
		t.Error("Complete() = false after writing every name")
	}

	if err := agg.Set("a", Outcome{}); !errors.Is(err, ErrDuplicateWrite) {
		t.Errorf("second Set() error = %v, want ErrDuplicateWrite", err)
	}
	if err := agg.Set("zzz", Outcome{}); !errors.Is(err, ErrUnknownProject) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownProject", err)
	}
}

func TestAggregate_Freeze(t *testing.T) {
	agg := NewAggregate([]string{"a"})
	agg.Freeze()

	if !agg.Frozen() {
		t.Fatal("Frozen() = false after Freeze()")
	}
	if err := agg.Set("a", Outcome{}); !errors.Is(err, ErrFrozen) {
		t.Errorf("Set() after Freeze error = %v, want ErrFrozen", err)
	}
}

func TestAggregate_Queries(t *testing.T) {
	agg := NewAggregate([]string{"link", "plain", "dirty", "scratch", "offline", "broken"})
	outcomes := map[string]Outcome{
		"link":    Failed(SymbolicLink),
		"plain":   Failed(NoVCSRoot),
		"dirty":   {Uncommitted: &Lines{Lines: []string{" M main.go"}}},
		"scratch": {Untracked: &Lines{Lines: []string{"?? notes.txt"}}},
		"offline": {Warnings: []ErrorCode{FetchFailed}, Unpushed: &Unpushed{AheadLines: []string{"* main abc [origin/main: ahead 1] x"}}},
		"broken":  Failed(BranchCheckFailed),
	}
	for name, o := range outcomes {
		if err := agg.Set(name, o); err != nil {
			t.Fatal(err)
		}
	}

	if diff := cmp.Diff([]string{"link"}, agg.WithError(SymbolicLink)); diff != "" {
		t.Errorf("WithError(SymbolicLink) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"offline"}, agg.WithWarning(FetchFailed)); diff != "" {
		t.Errorf("WithWarning(FetchFailed) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dirty", "scratch", "offline"}, agg.NeedsAttention(false)); diff != "" {
		t.Errorf("NeedsAttention(false) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dirty", "offline"}, agg.NeedsAttention(true)); diff != "" {
		t.Errorf("NeedsAttention(true) (-want +got):\n%s", diff)
	}
}

func TestAggregate_JSONKeepsOrder(t *testing.T) {
	agg := NewAggregate([]string{"zeta", "alpha", "mid"})
	_ = agg.Set("zeta", Failed(SymbolicLink))
	_ = agg.Set("alpha", Outcome{Untracked: &Lines{Lines: []string{"?? a"}}})
	_ = agg.Set("mid", Outcome{})

	data, err := json.Marshal(agg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"zeta":{"errorCode":"symbolic-link"},"alpha":{"untracked":{"lines":["?? a"]}},"mid":{}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s\nwant %s", data, want)
	}

	var back Aggregate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(agg.Names(), back.Names()); diff != "" {
		t.Errorf("order lost (-want +got):\n%s", diff)
	}
	if !back.Complete() {
		t.Error("decoded aggregate should count every key as written")
	}
	got, _ := back.Get("alpha")
	if got.Untracked == nil || got.Untracked.Lines[0] != "?? a" {
		t.Errorf("alpha decoded as %+v", got)
	}
}

func TestAggregate_UnmarshalRejectsNonObject(t *testing.T) {
	var agg Aggregate
	if err := json.Unmarshal([]byte(`["a"]`), &agg); err == nil {
		t.Error("Unmarshal(array) should fail")
	}
	if err := json.Unmarshal([]byte(`{"a":{},"a":{}}`), &agg); !errors.Is(err, ErrDuplicateWrite) {
		t.Errorf("Unmarshal(duplicate keys) error = %v, want ErrDuplicateWrite", err)
	}
}

func TestErrorCode_Classification(t *testing.T) {
	for _, code := range []ErrorCode{NotADirectory, SymbolicLink, NoVCSRoot} {
		if !code.Classification() {
			t.Errorf("%s should be a classification code", code)
		}
	}
	for _, code := range []ErrorCode{FetchFailed, BranchCheckFailed, StatusCheckFailed, InternalError} {
		if code.Classification() {
			t.Errorf("%s should not be a classification code", code)
		}
	}
}
