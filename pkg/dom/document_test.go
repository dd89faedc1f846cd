package dom

import (
	"reflect"
	"testing"
)

type recorder struct {
	recs []MutationRecord
}

func (r *recorder) observe(rec MutationRecord) { r.recs = append(r.recs, rec) }

func (r *recorder) kinds() []MutationKind {
	out := make([]MutationKind, len(r.recs))
	for i, rec := range r.recs {
		out[i] = rec.Kind
	}
	return out
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Root().Type() != DocumentNode {
		t.Errorf("root type = %v, want Document", doc.Root().Type())
	}
	if doc.DocumentElement().Tag() != "html" {
		t.Errorf("document element = %q, want html", doc.DocumentElement().Tag())
	}
	if doc.Head() == nil || doc.Body() == nil {
		t.Fatal("head and body should exist")
	}
	if got := OuterHTML(doc.Root()); got != "<!DOCTYPE html><html><head></head><body></body></html>" {
		t.Errorf("OuterHTML = %q", got)
	}
}

func TestObserve_ConnectedOnly(t *testing.T) {
	doc := NewDocument()
	rec := &recorder{}
	cancel := doc.Observe(rec.observe)
	defer cancel()

	div := NewElement("div")
	div.SetAttr("id", "detached")
	div.AppendChild(NewText("x"))
	if len(rec.recs) != 0 {
		t.Fatalf("detached changes produced %d records", len(rec.recs))
	}

	doc.Body().AppendChild(div)
	div.SetAttr("class", "a")
	div.RemoveAttr("class")
	div.SetProp("value", "v")
	div.FirstChild().SetData("y")
	div.SetHandler("onclick", func(*Event) {})
	div.SetHandler("onclick", nil)
	div.Remove()

	want := []MutationKind{
		MutationInsert,
		MutationAttr,
		MutationRemoveAttr,
		MutationProp,
		MutationText,
		MutationHandler,
		MutationHandler,
		MutationRemove,
	}
	if got := rec.kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	ins := rec.recs[0]
	if ins.Target != doc.Body() || ins.Node != div || ins.Before != nil {
		t.Errorf("insert record = %+v", ins)
	}
	if rec.recs[5].Value != "on" || rec.recs[6].Value != "" {
		t.Errorf("handler records = %q, %q; want on, empty", rec.recs[5].Value, rec.recs[6].Value)
	}
}

func TestObserve_NoOpChangesAreSilent(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div")
	doc.Body().AppendChild(div)
	div.SetAttr("class", "a")
	div.SetProp("checked", true)
	text := NewText("x")
	div.AppendChild(text)

	rec := &recorder{}
	defer doc.Observe(rec.observe)()

	div.SetAttr("class", "a")
	div.SetProp("checked", true)
	text.SetData("x")
	div.RemoveAttr("missing")
	div.SetHandler("onclick", nil)

	if len(rec.recs) != 0 {
		t.Errorf("no-op changes produced %v", rec.kinds())
	}
}

func TestObserve_MoveRecordsRemoveThenInsert(t *testing.T) {
	doc := NewDocument()
	ul := NewElement("ul")
	a, b := NewElement("li"), NewElement("li")
	ul.Append(a, b)
	doc.Body().AppendChild(ul)

	rec := &recorder{}
	defer doc.Observe(rec.observe)()

	ul.InsertBefore(b, a)

	if got := rec.kinds(); !reflect.DeepEqual(got, []MutationKind{MutationRemove, MutationInsert}) {
		t.Fatalf("kinds = %v, want [Remove Insert]", got)
	}
	if rec.recs[0].Node != b || rec.recs[1].Node != b || rec.recs[1].Before != a {
		t.Errorf("records = %+v", rec.recs)
	}
}

func TestObserve_Cancel(t *testing.T) {
	doc := NewDocument()
	first, second := &recorder{}, &recorder{}
	cancel := doc.Observe(first.observe)
	defer doc.Observe(second.observe)()

	cancel()
	doc.Body().SetAttr("class", "x")

	if len(first.recs) != 0 {
		t.Error("cancelled observer should not be called")
	}
	if len(second.recs) != 1 {
		t.Errorf("second observer got %d records, want 1", len(second.recs))
	}
}

func TestMutationKind_String(t *testing.T) {
	if MutationInsert.String() != "Insert" || MutationKind(0).String() != "Unknown" {
		t.Error("MutationKind.String is wrong")
	}
	if ElementNode.String() != "Element" || NodeType(0).String() != "Unknown" {
		t.Error("NodeType.String is wrong")
	}
}
