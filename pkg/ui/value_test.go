package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/reactive"
)

func TestValueOf(t *testing.T) {
	node := dom.NewElement("b")
	var nilNode *dom.Node
	var nilFunc func() string

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "Empty"},
		{"nil node", nilNode, "Empty"},
		{"nil func", nilFunc, "Empty"},
		{"string", "x", "Static"},
		{"int", 3, "Static"},
		{"bytes", []byte("x"), "Static"},
		{"duration", time.Second, "Static"},
		{"node", node, "NodeValue"},
		{"nodes", []*dom.Node{node}, "List"},
		{"strings", []string{"a", "b"}, "List"},
		{"any slice", []any{1, "a"}, "List"},
		{"signal", reactive.NewSignal(1), "Reactive"},
		{"computed", reactive.NewComputed(func() int { return 1 }), "Reactive"},
		{"func string", func() string { return "" }, "Reactive"},
		{"func int", func() int { return 1 }, "Reactive"},
		{"func nodes", func() []*dom.Node { return nil }, "Reactive"},
		{"handler", func() {}, "Static"},
		{"value", Empty{}, "Empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			switch ValueOf(tt.in).(type) {
			case Static:
				got = "Static"
			case Reactive:
				got = "Reactive"
			case NodeValue:
				got = "NodeValue"
			case List:
				got = "List"
			case Empty:
				got = "Empty"
			}
			if got != tt.want {
				t.Errorf("ValueOf(%T) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{true, "true"},
		{42, "42"},
		{int64(-7), "-7"},
		{1.5, "1.5"},
		{100000000.0, "100000000"},
		{time.Second, "1s"},
		{errors.New("boom"), "boom"},
		{struct{ A int }{1}, "{1}"},
	}

	for _, tt := range tests {
		if got := stringify(tt.in); got != tt.want {
			t.Errorf("stringify(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{nil, false},
		{"", false},
		{"false", false},
		{"yes", true},
		{0, false},
		{1, true},
	}

	for _, tt := range tests {
		if got := truthy(ValueOf(tt.in)); got != tt.want {
			t.Errorf("truthy(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
