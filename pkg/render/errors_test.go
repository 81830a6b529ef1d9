package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblocks/pkg/fields"
	"github.com/goliatone/go-formblocks/pkg/render"
)

func TestMapErrorsSplitsFieldAndFormLevel(t *testing.T) {
	schema := fields.NewFormSchema()
	schema.Add(fields.FieldSpec{Name: "field-1", Kind: fields.KindText})

	payload := map[string][]string{
		"field-1":  {" This field is required. ", "This field is required."},
		"__all__":  {"Something went wrong."},
		"field-99": {"Unknown field message."},
		"field-2":  {"   "},
	}

	mapping := render.MapErrors(schema, payload)

	wantFields := map[string][]string{
		"field-1": {"This field is required."},
	}
	if diff := cmp.Diff(wantFields, mapping.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if len(mapping.Form) != 2 {
		t.Fatalf("form-level errors = %v, want the two unknown-key messages", mapping.Form)
	}
}

func TestMapErrorsEmptyPayload(t *testing.T) {
	mapping := render.MapErrors(fields.NewFormSchema(), nil)
	if mapping.Fields != nil || mapping.Form != nil {
		t.Fatalf("empty payload produced %+v", mapping)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{"first", " first "}, "second", "", "first")
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Fatalf("MergeFormErrors mismatch (-want +got):\n%s", diff)
	}
}
