package jsonsax

import (
	"fmt"
	"testing"
)

func equalNodes(a, b *Node) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NodeInteger:
		return a.integerValue == b.integerValue
	case NodeNumber:
		return a.numberValue == b.numberValue
	case NodeString:
		return a.stringValue == b.stringValue
	case NodeBoolean:
		return a.booleanValue == b.booleanValue
	case NodeArray:
		if len(a.arrayValue) != len(b.arrayValue) {
			return false
		}
		for i := range a.arrayValue {
			if !equalNodes(a.arrayValue[i], b.arrayValue[i]) {
				return false
			}
		}
		return true
	case NodeObject:
		if len(a.objectValue) != len(b.objectValue) {
			return false
		}
		for i := range a.objectValue {
			if a.objectValue[i].key != b.objectValue[i].key {
				return false
			}
			if !equalNodes(a.objectValue[i].val, b.objectValue[i].val) {
				return false
			}
		}
		return true
	}
	return true
}

func TestNodeTypeStrings(t *testing.T) {
	for _, test := range []struct {
		input    NodeType
		expected string
	}{
		{NodeNull, nodeTypeStrings[NodeNull]},
		{NodeArray, nodeTypeStrings[NodeArray]},
		{NodeObject, nodeTypeStrings[NodeObject]},
		{NodeBoolean, nodeTypeStrings[NodeBoolean]},
		{NodeInteger, nodeTypeStrings[NodeInteger]},
		{NodeNumber, nodeTypeStrings[NodeNumber]},
		{NodeString, nodeTypeStrings[NodeString]},
		{numNodeTypes, "<unknown>"},
		{1000, "<unknown>"},
		{-1, "<unknown>"},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if actual := test.input.String(); actual != test.expected {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}

func TestNodeType(t *testing.T) {
	for _, test := range []struct {
		input    Node
		expected NodeType
	}{
		{Node{kind: NodeNull}, NodeNull},
		{Node{kind: NodeArray}, NodeArray},
		{Node{kind: numNodeTypes}, nodeTypeUnknown},
		{Node{kind: 1000}, nodeTypeUnknown},
		{Node{kind: -1}, nodeTypeUnknown},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if actual := test.input.Type(); actual != test.expected {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}

func TestNodeAsNull(t *testing.T) {
	n := Node{}
	if _, err := n.AsNull(); err != nil {
		t.Errorf("expected no error got %v", err)
	}
	n = Node{kind: NodeBoolean, booleanValue: true}
	if _, err := n.AsNull(); err == nil {
		t.Error("expected error got none")
	}
}

func TestNodeAsNumber(t *testing.T) {
	n := Node{kind: NodeNumber, numberValue: 5}
	if v, err := n.AsNumber(); err != nil || v != 5 {
		t.Errorf("expected 5, nil got %v, %v", v, err)
	}
	n = Node{kind: NodeInteger, integerValue: 5}
	if v, err := n.AsNumber(); err != nil || v != 5 {
		t.Errorf("expected 5, nil got %v, %v", v, err)
	}
	n = Node{kind: NodeBoolean, booleanValue: true}
	if _, err := n.AsNumber(); err == nil {
		t.Error("expected error got none")
	}
}

func TestNodeAsInteger(t *testing.T) {
	n := Node{kind: NodeInteger, integerValue: 5}
	if v, err := n.AsInteger(); err != nil || v != 5 {
		t.Errorf("expected 5, nil got %v, %v", v, err)
	}
	n = Node{kind: NodeNumber, numberValue: 5}
	if _, err := n.AsInteger(); err == nil {
		t.Error("expected error got none")
	}
}

func TestNodeAsString(t *testing.T) {
	n := Node{kind: NodeString, stringValue: "5"}
	if v, err := n.AsString(); err != nil || v != "5" {
		t.Errorf("expected 5, nil got %v, %v", v, err)
	}
	n = Node{kind: NodeBoolean}
	if _, err := n.AsString(); err == nil {
		t.Error("expected error got none")
	}
}

func TestNodeAsBoolean(t *testing.T) {
	n := Node{kind: NodeBoolean, booleanValue: true}
	if v, err := n.AsBoolean(); err != nil || v != true {
		t.Errorf("expected true, nil got %v, %v", v, err)
	}
	n = Node{}
	if _, err := n.AsBoolean(); err == nil {
		t.Error("expected error got none")
	}
}

func TestNodeAsArray(t *testing.T) {
	n := Node{kind: NodeArray, arrayValue: []*Node{{}}}
	a, err := n.AsArray()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if !equalNodes(a[0], &Node{}) {
		t.Errorf("expected %v got %v", &Node{}, a[0])
	}
	n = Node{}
	if _, err := n.AsArray(); err == nil {
		t.Error("expected error got none")
	}
}

func TestNodeAsObject(t *testing.T) {
	n := Node{kind: NodeObject, objectValue: []member{{"a", &Node{}}}}
	o, err := n.AsObject()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if !equalNodes(o["a"], &Node{}) {
		t.Errorf("expected %v got %v", &Node{}, o["a"])
	}
	n = Node{}
	if _, err := n.AsObject(); err == nil {
		t.Error("expected error got none")
	}
}

func TestNodeString(t *testing.T) {
	for _, test := range []struct {
		input    Node
		expected string
	}{
		{Node{}, "null"},
		{Node{kind: NodeInteger, integerValue: -5}, `-5`},
		{Node{kind: NodeNumber, numberValue: -5}, `-5`},
		{Node{kind: NodeNumber, numberValue: -5.1}, `-5.1`},
		{Node{kind: NodeString, stringValue: "-5.12"}, `"-5.12"`},
		{Node{kind: NodeBoolean, booleanValue: true}, `true`},
		{Node{kind: NodeBoolean, booleanValue: false}, `false`},
		{Node{kind: NodeArray, arrayValue: []*Node{
			{},
			{kind: NodeInteger, integerValue: -5},
			{kind: NodeString, stringValue: "-5.12"},
			{kind: NodeBoolean, booleanValue: true},
		}}, `[null, -5, "-5.12", true]`},
		{Node{kind: NodeObject, objectValue: []member{
			{"a", &Node{}},
			{"b", &Node{kind: NodeInteger, integerValue: -5}},
			{"c", &Node{kind: NodeString, stringValue: "-5.12"}},
			{"d", &Node{kind: NodeBoolean, booleanValue: true}},
		}}, `{"a": null, "b": -5, "c": "-5.12", "d": true}`},
		{Node{kind: numNodeTypes, integerValue: -5}, `<unknown>`},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if actual := test.input.String(); actual != test.expected {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}

func TestParseTreeIndex(t *testing.T) {
	root, err := ParseTree([]byte(`[[[true, false]]]`))
	if err != nil {
		t.Fatalf("expected no error got %v", err)
	}
	for _, test := range []struct {
		actual   *Node
		expected *Node
	}{
		{root.Index(0).Index(0).Index(0), &Node{kind: NodeBoolean, booleanValue: true}},
		{root.Index(0).Index(0).Index(1), &Node{kind: NodeBoolean, booleanValue: false}},
		{root.Index(0).Index(0).Index(2), &Node{}},
		{root.Index(0).Index(1).Index(2), &Node{}},
		{root.Index(-1).Index(1).Index(2), &Node{}},
	} {
		t.Run(fmt.Sprintf("%v", test.actual), func(t *testing.T) {
			if !equalNodes(test.actual, test.expected) {
				t.Errorf("expected %v\ngot %v", test.expected, test.actual)
			}
		})
	}
}

func TestParseTreeKey(t *testing.T) {
	root, err := ParseTree([]byte(`{"a": {"b": {"c": true, "d":false}}}`))
	if err != nil {
		t.Fatalf("expected no error got %v", err)
	}
	for _, test := range []struct {
		actual   *Node
		expected *Node
	}{
		{root.Key("a").Key("b").Key("c"), &Node{kind: NodeBoolean, booleanValue: true}},
		{root.Key("a").Key("b").Key("d"), &Node{kind: NodeBoolean, booleanValue: false}},
		{root.Key("a").Key("b").Key("e"), &Node{}},
		{root.Key("a").Key("e").Key("d"), &Node{}},
		{root.Key("e").Key("b").Key("d"), &Node{}},
	} {
		t.Run(fmt.Sprintf("%v", test.actual), func(t *testing.T) {
			if !equalNodes(test.actual, test.expected) {
				t.Errorf("expected %v\ngot %v", test.expected, test.actual)
			}
		})
	}
}

func TestParseTreeTrailingComma(t *testing.T) {
	if _, err := ParseTree([]byte(`{"a": 1,}`)); err == nil {
		t.Error("expected a trailing comma to be rejected")
	}
}

func TestParseTreeMixedDocument(t *testing.T) {
	root, err := ParseTree([]byte(`{"name": "ferret", "age": 3, "tags": ["pet", "mammal"], "good": true, "nickname": null}`))
	if err != nil {
		t.Fatalf("expected no error got %v", err)
	}
	name, err := root.Key("name").AsString()
	if err != nil || name != "ferret" {
		t.Errorf("expected ferret got %v, %v", name, err)
	}
	age, err := root.Key("age").AsInteger()
	if err != nil || age != 3 {
		t.Errorf("expected 3 got %v, %v", age, err)
	}
	tags, err := root.Key("tags").AsArray()
	if err != nil || len(tags) != 2 {
		t.Errorf("expected 2 tags got %v, %v", tags, err)
	}
	if _, err := root.Key("nickname").AsNull(); err != nil {
		t.Errorf("expected nickname to be null, got %v", err)
	}
}
