package ui

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/reactive"
)

// Value is a value bound into a template slot. It is one of Static,
// Reactive, NodeValue, List or Empty.
type Value interface {
	isValue()
}

// Static is a plain value, applied once.
type Static struct {
	V any
}

// Reactive is a value read inside an effect, so the slot follows it.
type Reactive struct {
	Read func() any
}

// NodeValue inserts an existing node.
type NodeValue struct {
	Node *dom.Node
}

// List is a sequence of values, flattened in order.
type List []Value

// Empty renders nothing and removes attributes.
type Empty struct{}

func (Static) isValue()    {}
func (Reactive) isValue()  {}
func (NodeValue) isValue() {}
func (List) isValue()      {}
func (Empty) isValue()     {}

// ValueOf classifies v.
//
// Signals, computeds and any other reactive.Getter are Reactive, as are
// functions taking no arguments and returning one result. Nodes and node
// slices become NodeValue and List; other slices are lists of their elements.
// nil is Empty. Everything else is Static.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Empty{}
	case Value:
		return v
	case *dom.Node:
		if v == nil {
			return Empty{}
		}
		return NodeValue{Node: v}
	case []*dom.Node:
		out := make(List, 0, len(v))
		for _, n := range v {
			out = append(out, ValueOf(n))
		}
		return out
	case []any:
		out := make(List, 0, len(v))
		for _, e := range v {
			out = append(out, ValueOf(e))
		}
		return out
	case reactive.Getter:
		return Reactive{Read: v.GetAny}
	case func() []*dom.Node:
		if v == nil {
			return Empty{}
		}
		return Reactive{Read: func() any { return v() }}
	case func() string:
		if v == nil {
			return Empty{}
		}
		return Reactive{Read: func() any { return v() }}
	case func() any:
		if v == nil {
			return Empty{}
		}
		return Reactive{Read: v}
	case string, []byte, bool:
		return Static{V: v}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if rv.IsNil() {
			return Empty{}
		}
		if t := rv.Type(); t.NumIn() == 0 && t.NumOut() == 1 {
			return Reactive{Read: func() any { return rv.Call(nil)[0].Interface() }}
		}
	case reflect.Slice:
		out := make(List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, ValueOf(rv.Index(i).Interface()))
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Empty{}
		}
	}
	return Static{V: v}
}

// resolve reads through Reactive values. Reads register with the running
// effect.
func resolve(v Value) Value {
	for {
		r, ok := v.(Reactive)
		if !ok {
			return v
		}
		v = ValueOf(r.Read())
	}
}

// textOf renders v as attribute text.
func textOf(v Value) string {
	switch v := resolve(v).(type) {
	case Static:
		return stringify(v.V)
	case NodeValue:
		return v.Node.TextContent()
	case List:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = textOf(e)
		}
		return strings.Join(parts, ",")
	case Empty:
		return ""
	}
	return ""
}

// truthy converts v for boolean properties such as "checked".
func truthy(v Value) bool {
	switch v := resolve(v).(type) {
	case Static:
		if b, ok := v.V.(bool); ok {
			return b
		}
		s := stringify(v.V)
		return s != "" && s != "false" && s != "0"
	case NodeValue:
		return true
	case List:
		return len(v) > 0
	case Empty:
		return false
	}
	return false
}

// isFalse reports whether v is the boolean false, which removes an attribute.
func isFalse(v Value) bool {
	s, ok := v.(Static)
	if !ok {
		return false
	}
	b, ok := s.V.(bool)
	return ok && !b
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}
	return fmt.Sprint(v)
}

// handlerOf converts the function forms accepted for on* attributes.
func handlerOf(v any) (dom.Handler, bool) {
	switch h := v.(type) {
	case dom.Handler:
		return h, h != nil
	case func(*dom.Event):
		return h, h != nil
	case func():
		if h == nil {
			return nil, false
		}
		return func(*dom.Event) { h() }, true
	}
	return nil, false
}
