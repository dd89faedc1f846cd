package live

import (
	stderrors "errors"
	"testing"

	"github.com/smallie-dev/smallie/internal/errors"
	"github.com/smallie-dev/smallie/pkg/dom"
)

func TestDecodeClientMessage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"click", `{"t":"event","id":3,"type":"click"}`, false},
		{"input with value", `{"t":"event","id":3,"type":"input","value":"hi"}`, false},
		{"not json", `{"t":`, true},
		{"wrong type", `{"t":"hello","id":3,"type":"click"}`, true},
		{"missing id", `{"t":"event","type":"click"}`, true},
		{"missing event type", `{"t":"event","id":3}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClientMessage([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Code != "E061" {
				t.Errorf("err = %v, want code E061", err)
			}
		})
	}

	msg, _ := DecodeClientMessage([]byte(`{"t":"event","id":7,"type":"change","checked":true}`))
	if msg.Checked == nil || !*msg.Checked {
		t.Error("checked should decode as true")
	}
	if msg.Value != nil {
		t.Errorf("value = %q, want nil", *msg.Value)
	}
}

// watched returns a document with a body list and an encoder that has sent
// the body to the client.
func watched(t *testing.T) (*dom.Document, *encoder, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	list := dom.NewElement("ul")
	doc.Body().AppendChild(list)

	enc := &encoder{ids: newIDMap()}
	enc.ids.wire(doc.Body())
	doc.Observe(enc.record)
	return doc, enc, list
}

func opNames(f *Frame) []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.Ops))
	for i, op := range f.Ops {
		out[i] = op.Op
	}
	return out
}

func sameOps(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestEncoderInsertSerializesSubtree(t *testing.T) {
	_, enc, list := watched(t)

	li := dom.NewElement("li")
	li.SetAttr("class", "item")
	li.AppendChild(dom.NewText("one"))
	li.SetHandler("onclick", func(*dom.Event) {})
	list.AppendChild(li)

	f := enc.flush()
	if got := opNames(f); !sameOps(got, []string{OpInsert}) {
		t.Fatalf("ops = %v, want [insert]", got)
	}
	node := f.Ops[0].Node
	if node.Tag != "li" || node.Kind != "element" {
		t.Errorf("node = %+v, want li element", node)
	}
	if len(node.Attrs) != 1 || node.Attrs[0] != [2]string{"class", "item"} {
		t.Errorf("attrs = %v", node.Attrs)
	}
	if len(node.On) != 1 || node.On[0] != "onclick" {
		t.Errorf("on = %v, want [onclick]", node.On)
	}
	if len(node.Children) != 1 || node.Children[0].Data != "one" {
		t.Errorf("children = %+v", node.Children)
	}
	if id, _ := enc.ids.id(list); f.Ops[0].Parent != id {
		t.Errorf("parent = %d, want %d", f.Ops[0].Parent, id)
	}

	// Changes after the insert are separate ops against known ids.
	li.FirstChild().SetData("uno")
	li.SetAttr("class", "done")
	li.RemoveAttr("class")
	f = enc.flush()
	if got := opNames(f); !sameOps(got, []string{OpText, OpAttr, OpRmAttr}) {
		t.Errorf("ops = %v, want [text attr rmattr]", got)
	}
}

func TestEncoderMoveKeepsIDs(t *testing.T) {
	_, enc, list := watched(t)
	a, b := dom.NewElement("li"), dom.NewElement("li")
	list.Append(a, b)
	enc.flush()

	idA, _ := enc.ids.id(a)
	idB, _ := enc.ids.id(b)
	list.InsertBefore(b, a)

	f := enc.flush()
	if got := opNames(f); !sameOps(got, []string{OpRemove, OpMove}) {
		t.Fatalf("ops = %v, want [remove move]", got)
	}
	if f.Ops[1].ID != idB || f.Ops[1].Before != idA {
		t.Errorf("move = %+v, want id %d before %d", f.Ops[1], idB, idA)
	}
	if len(f.Drop) != 0 {
		t.Errorf("drop = %v, want none", f.Drop)
	}
}

func TestEncoderDropsDetachedNodes(t *testing.T) {
	_, enc, list := watched(t)
	li := dom.NewElement("li")
	li.AppendChild(dom.NewText("x"))
	list.AppendChild(li)
	enc.flush()

	liID, _ := enc.ids.id(li)
	li.Remove()
	f := enc.flush()
	if got := opNames(f); !sameOps(got, []string{OpRemove}) {
		t.Fatalf("ops = %v, want [remove]", got)
	}
	if len(f.Drop) != 2 {
		t.Errorf("drop = %v, want the item and its text", f.Drop)
	}
	if enc.ids.lookup(liID) != nil {
		t.Error("dropped id should no longer resolve")
	}

	// Changes to detached nodes are not sent.
	li.SetAttr("class", "gone")
	if f := enc.flush(); f != nil {
		t.Errorf("frame = %+v, want nil", f)
	}
}

func TestEncoderPropAndHandler(t *testing.T) {
	doc, enc, _ := watched(t)
	input := dom.NewElement("input")
	doc.Body().AppendChild(input)
	enc.flush()

	input.SetProp("checked", true)
	input.SetHandler("onchange", func(*dom.Event) {})
	input.SetHandler("onchange", nil)

	f := enc.flush()
	if got := opNames(f); !sameOps(got, []string{OpProp, OpOn, OpOn}) {
		t.Fatalf("ops = %v, want [prop on on]", got)
	}
	if f.Ops[0].Prop != true {
		t.Errorf("prop = %v, want true", f.Ops[0].Prop)
	}
	if f.Ops[1].Value != "on" || f.Ops[2].Value != "" {
		t.Errorf("handler values = %q, %q", f.Ops[1].Value, f.Ops[2].Value)
	}
}

func TestErrorFrame(t *testing.T) {
	f := errorFrame(errors.New("E021").WithDetail("Node 9 is not part of this session."))
	if f.Type != FrameError || f.Code != "E021" || f.Detail == "" {
		t.Errorf("frame = %+v", f)
	}

	f = errorFrame(stderrors.New("plain"))
	if f.Code != "" || f.Message != "plain" {
		t.Errorf("frame = %+v", f)
	}
}
