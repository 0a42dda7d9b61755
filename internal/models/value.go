package models

import (
	"fmt"
	"math"
	"sort"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
	"github.com/mcncl/xon/internal/errors"
)

// XONValue is the consumer-facing form of a parsed document.
// This can be nil, bool, float64, string, *XONObject or XONArray.
type XONValue interface{}

// XONArray represents a XON list, which is a slice of XONValues.
type XONArray []XONValue

// XONObject is an insertion-ordered map of strings to XONValues.
type XONObject struct {
	m *linkedhashmap.Map[string, XONValue]
}

// NewXONObject creates an empty object.
func NewXONObject() *XONObject {
	return &XONObject{m: linkedhashmap.New[string, XONValue]()}
}

// Set stores value under key. A key that is already present keeps its
// position and takes the new value.
func (o *XONObject) Set(key string, value XONValue) {
	if o.m == nil {
		o.m = linkedhashmap.New[string, XONValue]()
	}
	o.m.Put(key, value)
}

// Get returns the value stored under key.
func (o *XONObject) Get(key string) (XONValue, bool) {
	if o == nil || o.m == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Keys returns the keys in insertion order.
func (o *XONObject) Keys() []string {
	if o == nil || o.m == nil {
		return nil
	}
	return o.m.Keys()
}

// Len returns the number of distinct keys.
func (o *XONObject) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return o.m.Size()
}

// Native converts the object and everything below it to map[string]any and
// []any, dropping key order.
func (o *XONObject) Native() map[string]any {
	out := make(map[string]any, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		out[k] = Native(v)
	}
	return out
}

// ToValue projects an AST onto runtime values. Duplicate object keys
// collapse: the key stays at its first position and the last value wins.
func ToValue(n Node) XONValue {
	switch v := n.(type) {
	case *Object:
		obj := NewXONObject()
		for _, p := range v.Pairs {
			obj.Set(p.Key, ToValue(p.Value))
		}
		return obj
	case *List:
		arr := make(XONArray, len(v.Items))
		for i, item := range v.Items {
			arr[i] = ToValue(item)
		}
		return arr
	case *String:
		return v.Value
	case *Number:
		return v.Value
	case *Bool:
		return v.Value
	case *Null, nil:
		return nil
	default:
		panic(fmt.Sprintf("models: unknown node type %T", n))
	}
}

// Native converts a runtime value into plain Go maps and slices.
func Native(v XONValue) any {
	switch t := v.(type) {
	case *XONObject:
		return t.Native()
	case XONArray:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Native(item)
		}
		return out
	default:
		return t
	}
}

// finiteNumber rejects NaN and infinities, which have no XON spelling
func finiteNumber(f float64) (Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite number %v", errors.ErrUnsupportedValue, f)
	}
	return &Number{Value: f}, nil
}

// FromValue builds an AST from a runtime value. Plain Go maps have their
// keys sorted, integer kinds become numbers, and NaN, infinities or anything outside the value
// model is rejected with ErrUnsupportedValue.
func FromValue(v XONValue) (Node, error) {
	switch t := v.(type) {
	case nil:
		return &Null{}, nil
	case Node:
		return t, nil
	case bool:
		return &Bool{Value: t}, nil
	case string:
		return &String{Value: t}, nil
	case float64:
		return finiteNumber(t)
	case float32:
		return finiteNumber(float64(t))
	case int:
		return &Number{Value: float64(t)}, nil
	case int8:
		return &Number{Value: float64(t)}, nil
	case int16:
		return &Number{Value: float64(t)}, nil
	case int32:
		return &Number{Value: float64(t)}, nil
	case int64:
		return &Number{Value: float64(t)}, nil
	case uint:
		return &Number{Value: float64(t)}, nil
	case uint8:
		return &Number{Value: float64(t)}, nil
	case uint16:
		return &Number{Value: float64(t)}, nil
	case uint32:
		return &Number{Value: float64(t)}, nil
	case uint64:
		return &Number{Value: float64(t)}, nil
	case *XONObject:
		obj := &Object{Pairs: make([]Pair, 0, t.Len())}
		for _, k := range t.Keys() {
			raw, _ := t.Get(k)
			child, err := FromValue(raw)
			if err != nil {
				return nil, err
			}
			obj.Pairs = append(obj.Pairs, Pair{Key: k, Value: child})
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := &Object{Pairs: make([]Pair, 0, len(keys))}
		for _, k := range keys {
			child, err := FromValue(t[k])
			if err != nil {
				return nil, err
			}
			obj.Pairs = append(obj.Pairs, Pair{Key: k, Value: child})
		}
		return obj, nil
	case XONArray:
		return listFromValues(t)
	case []any:
		return listFromValues(t)
	case []string:
		list := &List{Items: make([]Node, len(t))}
		for i, s := range t {
			list.Items[i] = &String{Value: s}
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: %T", errors.ErrUnsupportedValue, v)
	}
}

func listFromValues[T any](items []T) (Node, error) {
	list := &List{Items: make([]Node, len(items))}
	for i, item := range items {
		child, err := FromValue(item)
		if err != nil {
			return nil, err
		}
		list.Items[i] = child
	}
	return list, nil
}
