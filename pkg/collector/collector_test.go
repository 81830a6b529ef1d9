package collector_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblocks/pkg/collector"
	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/fields"
	"github.com/goliatone/go-formblocks/pkg/options"
)

func intPtr(v int) *int { return &v }

func contactTree() *content.Node {
	return &content.Node{
		ID: 1, Kind: content.KindForm, Attrs: content.Attrs{Name: "contact"},
		Children: []*content.Node{
			{ID: 2, Kind: content.KindTextField, Attrs: content.Attrs{
				Label: "Name", Required: true, MinValue: intPtr(2), MaxValue: intPtr(50),
			}},
			{ID: 3, Kind: content.KindFieldset, Children: []*content.Node{
				{ID: 4, Kind: content.KindBooleanField, Attrs: content.Attrs{Label: "Subscribe"}},
			}},
			{ID: 5, Kind: content.KindSubmitButton, Attrs: content.Attrs{ButtonLabel: "Send"}},
		},
	}
}

func TestCollectContainerGathersNestedFields(t *testing.T) {
	c := collector.New()
	schema, err := c.Collect(context.Background(), contactTree())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if schema.Len() != 2 {
		t.Fatalf("Collect() produced %d entries, want 2", schema.Len())
	}
	if diff := cmp.Diff([]string{"field-2", "field-4"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	name, ok := schema.Field("field-2")
	if !ok {
		t.Fatal("field-2 missing")
	}
	if name.Kind != fields.KindText || !name.Required {
		t.Fatalf("field-2 spec = %+v, want required text field", name)
	}
	if rule, ok := name.Rule(fields.ValidationRuleMinLength); !ok || rule.Params["value"] != "2" {
		t.Fatalf("field-2 min length rule = %+v, want value 2", rule)
	}
	if rule, ok := name.Rule(fields.ValidationRuleMaxLength); !ok || rule.Params["value"] != "50" {
		t.Fatalf("field-2 max length rule = %+v, want value 50", rule)
	}

	subscribe, ok := schema.Field("field-4")
	if !ok {
		t.Fatal("field-4 missing")
	}
	if subscribe.Kind != fields.KindBoolean || subscribe.Required {
		t.Fatalf("field-4 spec = %+v, want optional boolean field", subscribe)
	}

	if _, ok := schema.Field("field-5"); ok {
		t.Fatal("submit button contributed a schema entry")
	}
}

func TestCollectLeafFieldReturnsSingleEntry(t *testing.T) {
	c := collector.New()
	leaf := &content.Node{ID: 9, Kind: content.KindTextField, Attrs: content.Attrs{Label: "Email"}}

	schema, err := c.Collect(context.Background(), leaf)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if schema.Len() != 1 {
		t.Fatalf("Collect() on a leaf produced %d entries, want 1", schema.Len())
	}
	if _, ok := schema.Field("field-9"); !ok {
		t.Fatal("leaf entry not keyed by derived name")
	}
}

func TestCollectOpaqueNodeReturnsEmptySchema(t *testing.T) {
	c := collector.New()
	for _, node := range []*content.Node{
		{ID: 7, Kind: content.KindSubmitButton},
		{ID: 8, Kind: content.Kind("banner")},
		nil,
	} {
		schema, err := c.Collect(context.Background(), node)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if schema.Len() != 0 {
			t.Fatalf("Collect() on opaque node produced %d entries, want 0", schema.Len())
		}
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	c := collector.New()
	tree := contactTree()

	first, err := c.Collect(context.Background(), tree)
	if err != nil {
		t.Fatalf("first Collect() error = %v", err)
	}
	second, err := c.Collect(context.Background(), tree)
	if err != nil {
		t.Fatalf("second Collect() error = %v", err)
	}

	if diff := cmp.Diff(first.Fields(), second.Fields()); diff != "" {
		t.Fatalf("repeated collection differs (-first +second):\n%s", diff)
	}
}

func TestCollectDeepNesting(t *testing.T) {
	inner := &content.Node{ID: 30, Kind: content.KindFieldset, Children: []*content.Node{
		{ID: 31, Kind: content.KindTextField, Attrs: content.Attrs{Label: "City"}},
	}}
	tree := &content.Node{ID: 1, Kind: content.KindForm, Children: []*content.Node{
		{ID: 10, Kind: content.KindFieldset, Children: []*content.Node{
			{ID: 20, Kind: content.KindFieldset, Children: []*content.Node{inner}},
		}},
	}}

	schema, err := collector.New().Collect(context.Background(), tree)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if _, ok := schema.Field("field-31"); !ok || schema.Len() != 1 {
		t.Fatalf("deeply nested field not collected: %v", schema.Names())
	}
}

func TestCollectChoiceFieldResolvesOptions(t *testing.T) {
	provider := options.Static{
		"topics": {
			{Value: "sales", Label: "Sales"},
			{Value: "support", Label: "Support"},
		},
	}
	c := collector.New(collector.WithOptionsProvider(provider))
	tree := &content.Node{ID: 1, Kind: content.KindForm, Children: []*content.Node{
		{ID: 2, Kind: content.KindSelectField, Attrs: content.Attrs{
			Label: "Topic", Required: true, OptionSetID: "topics",
		}},
	}}

	schema, err := c.Collect(context.Background(), tree)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	spec, _ := schema.Field("field-2")
	want := []fields.Option{
		{Value: "sales", Label: "Sales"},
		{Value: "support", Label: "Support"},
	}
	if diff := cmp.Diff(want, spec.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectUnknownOptionSetFails(t *testing.T) {
	c := collector.New(collector.WithOptionsProvider(options.Static{}))
	tree := &content.Node{ID: 2, Kind: content.KindSelectField, Attrs: content.Attrs{OptionSetID: "missing"}}

	if _, err := c.Collect(context.Background(), tree); err == nil {
		t.Fatal("Collect() succeeded with an unresolvable option set")
	}
}
