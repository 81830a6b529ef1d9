package content_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formblocks/pkg/content"
)

const contactDocument = `
blocks:
  - kind: form
    id: 10
    attrs:
      name: contact
      redirect: url
      url: https://example.com/thanks
      recipients: [editor@example.com]
    children:
      - kind: text-field
        attrs:
          label: Name
          required: true
          min_value: 2
          max_value: 50
      - kind: fieldset
        children:
          - kind: boolean-field
            attrs:
              label: Subscribe
      - kind: submit-button
        attrs:
          button_label: Send
`

func TestParseAssignsSequentialIDs(t *testing.T) {
	trees, err := content.Parse([]byte(contactDocument))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(trees) != 1 {
		t.Fatalf("Parse() returned %d trees, want 1", len(trees))
	}

	form := trees[0]
	if form.ID != 10 {
		t.Fatalf("explicit ID not honoured: got %d", form.ID)
	}

	seen := make(map[int64]bool)
	form.Walk(func(n *content.Node) bool {
		if n.ID == 0 {
			t.Errorf("node %s has no assigned ID", n.Kind)
		}
		if seen[n.ID] {
			t.Errorf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
		return true
	})
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := content.Parse([]byte("blocks:\n  - kind: carousel\n"))
	if err == nil {
		t.Fatal("Parse() accepted unknown block kind")
	}
	if !strings.Contains(err.Error(), "carousel") {
		t.Fatalf("error %q does not name the offending kind", err)
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := content.Parse([]byte("blocks: []\n")); err == nil {
		t.Fatal("Parse() accepted an empty document")
	}
}

func TestFindForm(t *testing.T) {
	trees, err := content.Parse([]byte(contactDocument))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	form, ok := content.FindForm(trees, "contact")
	if !ok {
		t.Fatal("FindForm did not locate the contact form")
	}
	if form.Attrs.Name != "contact" {
		t.Fatalf("wrong form: %q", form.Attrs.Name)
	}

	if _, ok := content.FindForm(trees, "missing"); ok {
		t.Fatal("FindForm located a form that does not exist")
	}

	anyForm, ok := content.FindForm(trees, "")
	if !ok || anyForm.ID != form.ID {
		t.Fatal("FindForm with empty name should return the first form")
	}
}
