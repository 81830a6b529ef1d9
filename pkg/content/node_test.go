package content_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblocks/pkg/content"
)

func TestNodeClass(t *testing.T) {
	cases := []struct {
		kind content.Kind
		want content.Class
	}{
		{content.KindForm, content.ClassContainer},
		{content.KindFieldset, content.ClassContainer},
		{content.KindTextField, content.ClassField},
		{content.KindBooleanField, content.ClassField},
		{content.KindSelectField, content.ClassField},
		{content.KindMultiSelect, content.ClassField},
		{content.KindCaptchaField, content.ClassField},
		{content.KindSubmitButton, content.ClassOpaque},
		{content.Kind("banner"), content.ClassOpaque},
	}
	for _, tc := range cases {
		node := &content.Node{ID: 1, Kind: tc.kind}
		if got := node.Class(); got != tc.want {
			t.Errorf("Class(%s) = %v, want %v", tc.kind, got, tc.want)
		}
	}

	var nilNode *content.Node
	if got := nilNode.Class(); got != content.ClassOpaque {
		t.Errorf("nil node Class() = %v, want ClassOpaque", got)
	}
}

func TestWalkVisitsDepthFirstInChildOrder(t *testing.T) {
	tree := &content.Node{
		ID: 1, Kind: content.KindForm,
		Children: []*content.Node{
			{ID: 2, Kind: content.KindTextField},
			{ID: 3, Kind: content.KindFieldset, Children: []*content.Node{
				{ID: 4, Kind: content.KindBooleanField},
			}},
			{ID: 5, Kind: content.KindSubmitButton},
		},
	}

	var order []int64
	tree.Walk(func(n *content.Node) bool {
		order = append(order, n.ID)
		return true
	})
	if diff := cmp.Diff([]int64{1, 2, 3, 4, 5}, order); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitLabel(t *testing.T) {
	tree := &content.Node{
		ID: 1, Kind: content.KindForm,
		Children: []*content.Node{
			{ID: 2, Kind: content.KindTextField},
			{ID: 3, Kind: content.KindSubmitButton, Attrs: content.Attrs{ButtonLabel: "Send"}},
		},
	}
	if got := tree.SubmitLabel(); got != "Send" {
		t.Fatalf("SubmitLabel() = %q, want %q", got, "Send")
	}

	bare := &content.Node{ID: 1, Kind: content.KindForm}
	if got := bare.SubmitLabel(); got != "" {
		t.Fatalf("SubmitLabel() on form without button = %q, want empty", got)
	}
}
