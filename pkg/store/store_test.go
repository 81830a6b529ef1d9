package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblocks/pkg/fields"
	"github.com/goliatone/go-formblocks/pkg/options"
	"github.com/goliatone/go-formblocks/pkg/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "formblocks.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOptionSetRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	want := []fields.Option{
		{Value: "sales", Label: "Sales"},
		{Value: "support", Label: "Support"},
	}
	if err := s.PutOptionSet(ctx, "topics", want); err != nil {
		t.Fatalf("PutOptionSet() error = %v", err)
	}

	got, err := s.OptionSet(ctx, "topics")
	if err != nil {
		t.Fatalf("OptionSet() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionSetMissing(t *testing.T) {
	s := openStore(t)
	if _, err := s.OptionSet(context.Background(), "nope"); err == nil {
		t.Fatal("missing option set returned no error")
	}
}

func TestPutOptionSetReplaces(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.PutOptionSet(ctx, "topics", []fields.Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}); err != nil {
		t.Fatalf("PutOptionSet() error = %v", err)
	}
	want := []fields.Option{{Value: "c", Label: "C"}}
	if err := s.PutOptionSet(ctx, "topics", want); err != nil {
		t.Fatalf("PutOptionSet() replace error = %v", err)
	}

	got, err := s.OptionSet(ctx, "topics")
	if err != nil {
		t.Fatalf("OptionSet() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("replace did not take (-want +got):\n%s", diff)
	}
}

func TestSubmissionsRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	data := map[string]string{"field-1": "Ada", "field-2": "true"}
	id, err := s.SaveSubmission(ctx, "contact", data, "203.0.113.9")
	if err != nil {
		t.Fatalf("SaveSubmission() error = %v", err)
	}
	if id == 0 {
		t.Fatal("SaveSubmission() returned zero ID")
	}

	subs, err := s.Submissions(ctx, "contact")
	if err != nil {
		t.Fatalf("Submissions() error = %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("Submissions() returned %d rows, want 1", len(subs))
	}
	if diff := cmp.Diff(data, subs[0].Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if subs[0].SenderIP != "203.0.113.9" || subs[0].Created.IsZero() {
		t.Fatalf("submission metadata = %+v", subs[0])
	}
}

// The store satisfies the provider seam choice-field builders depend on.
var _ options.Provider = (*store.Store)(nil)
