package doctree

import "testing"

// buildList builds: ul > [li > text "a", li > text "b", li > text "c"]
func buildList(t *testing.T) (*Tree, NodeID, []NodeID) {
	t.Helper()
	tree := New()
	ul := tree.AddElement(NoNode, "ul", nil)
	var items []NodeID
	for _, s := range []string{"a", "b", "c"} {
		li := tree.AddElement(ul, "li", nil)
		tree.AddText(li, s)
		items = append(items, li)
	}
	return tree, ul, items
}

func TestTree_ParentAndChildren(t *testing.T) {
	tree, ul, items := buildList(t)

	if got := tree.Children(ul); len(got) != 3 {
		t.Fatalf("Children(ul) len = %d, want 3", len(got))
	}
	for i, li := range items {
		if tree.Parent(li) != ul {
			t.Errorf("Parent(items[%d]) = %d, want %d", i, tree.Parent(li), ul)
		}
		if tree.Children(ul)[i] != li {
			t.Errorf("Children(ul)[%d] = %d, want %d", i, tree.Children(ul)[i], li)
		}
		if tree.ParentTag(li) != "ul" {
			t.Errorf("ParentTag(items[%d]) = %q, want ul", i, tree.ParentTag(li))
		}
	}
	if tree.Parent(ul) != NoNode {
		t.Errorf("Parent(root) = %d, want NoNode", tree.Parent(ul))
	}
	if len(tree.Roots()) != 1 || tree.Roots()[0] != ul {
		t.Errorf("Roots() = %v, want [%d]", tree.Roots(), ul)
	}
}

func TestTree_SiblingHelpers(t *testing.T) {
	tree, ul, items := buildList(t)

	tests := []struct {
		name      string
		id        NodeID
		wantNext  NodeID
		wantFirst bool
		wantLast  bool
	}{
		{name: "first item", id: items[0], wantNext: items[1], wantFirst: true},
		{name: "middle item", id: items[1], wantNext: items[2]},
		{name: "last item", id: items[2], wantNext: NoNode, wantLast: true},
		{name: "root", id: ul, wantNext: NoNode, wantFirst: true, wantLast: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.NextSibling(tt.id); got != tt.wantNext {
				t.Errorf("NextSibling() = %d, want %d", got, tt.wantNext)
			}
			if got := tree.IsFirstChild(tt.id); got != tt.wantFirst {
				t.Errorf("IsFirstChild() = %v, want %v", got, tt.wantFirst)
			}
			if got := tree.IsLastChild(tt.id); got != tt.wantLast {
				t.Errorf("IsLastChild() = %v, want %v", got, tt.wantLast)
			}
		})
	}
}

func TestTree_TextUnderTextBecomesRoot(t *testing.T) {
	tree := New()
	leaf := tree.AddText(NoNode, "x")
	child := tree.AddText(leaf, "y")

	if tree.Parent(child) != NoNode {
		t.Errorf("text leaves cannot own children, got parent %d", tree.Parent(child))
	}
	if len(tree.Roots()) != 2 {
		t.Errorf("Roots() len = %d, want 2", len(tree.Roots()))
	}
}

func TestTree_InvalidIDs(t *testing.T) {
	tree := New()
	bad := NodeID(42)

	if tree.Valid(bad) || tree.Valid(NoNode) {
		t.Error("out-of-range ids must be invalid")
	}
	if tree.Kind(bad) != KindInvalid {
		t.Errorf("Kind(bad) = %v, want invalid", tree.Kind(bad))
	}
	if tree.Tag(bad) != "" || tree.Text(bad) != "" || tree.Children(bad) != nil {
		t.Error("accessors on invalid ids must return zero values")
	}
	if _, ok := tree.Attr(bad, "class"); ok {
		t.Error("Attr on invalid id must report absent")
	}
}

func TestTree_AttrAndRaw(t *testing.T) {
	tree := New()
	span := tree.AddElement(NoNode, "span", map[string]string{"class": "katex"})
	tree.SetRaw(span, "<span>raw</span>")

	if v, ok := tree.Attr(span, "class"); !ok || v != "katex" {
		t.Errorf("Attr(class) = %q, %v", v, ok)
	}
	if _, ok := tree.Attr(span, "id"); ok {
		t.Error("Attr(id) should be absent")
	}
	if tree.Raw(span) != "<span>raw</span>" {
		t.Errorf("Raw() = %q", tree.Raw(span))
	}
	if !tree.IsElementTag(span, "span") || tree.IsElementTag(span, "p") {
		t.Error("IsElementTag mismatch")
	}
}

func TestTree_Ancestors(t *testing.T) {
	tree := New()
	ul := tree.AddElement(NoNode, "ul", nil)
	li := tree.AddElement(ul, "li", nil)
	inner := tree.AddElement(li, "ol", nil)
	leaf := tree.AddElement(inner, "li", nil)

	var tags []string
	tree.Ancestors(leaf, func(id NodeID) bool {
		tags = append(tags, tree.Tag(id))
		return true
	})
	want := []string{"ol", "li", "ul"}
	if len(tags) != len(want) {
		t.Fatalf("Ancestors visited %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("ancestor[%d] = %q, want %q", i, tags[i], want[i])
		}
	}

	var count int
	tree.Ancestors(leaf, func(NodeID) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("Ancestors should stop when fn returns false, visited %d", count)
	}
}
