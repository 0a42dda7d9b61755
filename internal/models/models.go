package models

import "fmt"

// Kind identifies which case of the value model a node holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a parsed XON value. The set of implementations is closed: Object,
// List, String, Number, Bool and Null.
type Node interface {
	Kind() Kind
	node()
}

// Pair is one key/value entry of an Object.
type Pair struct {
	Key   string
	Value Node
}

// Object holds pairs in source order. Keys are not unique; duplicates are
// kept as written.
type Object struct {
	Pairs []Pair
}

// List holds items in source order.
type List struct {
	Items []Node
}

// String is a text value. Bare words in value position also become Strings.
type String struct {
	Value string
}

// Number is a numeric scalar. Hex and decimal literals share the type.
type Number struct {
	Value float64
}

// Bool is a boolean value.
type Bool struct {
	Value bool
}

// Null is the absence of a value.
type Null struct{}

func (*Object) Kind() Kind { return KindObject }
func (*List) Kind() Kind   { return KindList }
func (*String) Kind() Kind { return KindString }
func (*Number) Kind() Kind { return KindNumber }
func (*Bool) Kind() Kind   { return KindBool }
func (*Null) Kind() Kind   { return KindNull }

func (*Object) node() {}
func (*List) node()   {}
func (*String) node() {}
func (*Number) node() {}
func (*Bool) node()   {}
func (*Null) node()   {}

// Get returns the value of the first pair with the given key.
func (o *Object) Get(key string) (Node, bool) {
	for _, p := range o.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether any pair uses key.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of pairs, duplicates included.
func (o *Object) Len() int { return len(o.Pairs) }

// Keys returns every key in order, duplicates included.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Pairs))
	for i, p := range o.Pairs {
		keys[i] = p.Key
	}
	return keys
}

// At returns the item at index i, or false when i is out of range.
func (l *List) At(i int) (Node, bool) {
	if i < 0 || i >= len(l.Items) {
		return nil, false
	}
	return l.Items[i], true
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.Items) }

// Document is the result of loading one XON source.
type Document struct {
	Root         Node
	Source       string // file path, or empty for in-memory input
	RootIsObject bool
}

// Equal reports whether two trees have the same structure and values.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Object:
		y := b.(*Object)
		if len(x.Pairs) != len(y.Pairs) {
			return false
		}
		for i := range x.Pairs {
			if x.Pairs[i].Key != y.Pairs[i].Key || !Equal(x.Pairs[i].Value, y.Pairs[i].Value) {
				return false
			}
		}
		return true
	case *List:
		y := b.(*List)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *String:
		return x.Value == b.(*String).Value
	case *Number:
		return x.Value == b.(*Number).Value
	case *Bool:
		return x.Value == b.(*Bool).Value
	case *Null:
		return true
	default:
		panic(fmt.Sprintf("models: unknown node type %T", a))
	}
}
