package value

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged union. The zero Value is Null.
//
// Values can be copied by assignment: mutating methods copy any storage
// they write to, so a change made through one copy never shows in another.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func String(s string) Value { return Value{kind: KindString, s: s} }

// Array builds an array holding copies of items.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	for i, it := range items {
		arr[i] = it.Clone()
	}
	return Value{kind: KindArray, arr: arr}
}

// Strings is shorthand for an array of string values.
func Strings(ss ...string) Value {
	arr := make([]Value, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return Value{kind: KindArray, arr: arr}
}

// Object builds an object holding copies of the entries in m.
func Object(m map[string]Value) Value {
	obj := make(map[string]Value, len(m))
	for k, v := range m {
		obj[k] = v.Clone()
	}
	return Value{kind: KindObject, obj: obj}
}

func EmptyObject() Value { return Value{kind: KindObject, obj: map[string]Value{}} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the elements of an array. The slice is shared with v and
// must not be modified.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the entries of an object. The map is shared with v and
// must not be modified.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Len returns the number of elements of an array or entries of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Keys returns the keys of an object in lexicographic order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the entry stored under key. It reports false when v is not an
// object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	e, ok := v.obj[key]
	return e, ok
}

// Lookup follows a path of object keys.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, k := range path {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// StringAt returns the string stored under key.
func (v Value) StringAt(key string) (string, bool) {
	e, ok := v.Get(key)
	if !ok {
		return "", false
	}
	return e.AsString()
}

// Contains reports whether an array holds an element equal to item.
func (v Value) Contains(item Value) bool {
	if v.kind != KindArray {
		return false
	}
	for _, e := range v.arr {
		if Equal(e, item) {
			return true
		}
	}
	return false
}

// Set stores a copy of e under key, replacing any previous entry. Set panics
// if v is not an object; it is meant for building fragments, never for data
// read from outside.
func (v *Value) Set(key string, e Value) {
	if v.kind != KindObject {
		panic(fmt.Sprintf("value: Set(%q) on %s", key, v.kind))
	}
	v.own()
	v.obj[key] = e.Clone()
}

// Append adds copies of items to an array. It panics if v is not an array.
func (v *Value) Append(items ...Value) {
	if v.kind != KindArray {
		panic(fmt.Sprintf("value: Append on %s", v.kind))
	}
	v.own()
	for _, it := range items {
		v.arr = append(v.arr, it.Clone())
	}
}

// own gives v a private copy of its top-level storage before a write. Copies
// of a Value share storage until one of them is mutated; since nested values
// are never written in place either, copying one level is enough.
func (v *Value) own() {
	switch v.kind {
	case KindArray:
		v.arr = slices.Clone(v.arr)
	case KindObject:
		obj := make(map[string]Value, len(v.obj)+1)
		maps.Copy(obj, v.obj)
		v.obj = obj
	}
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]Value, len(v.obj))
		for k, e := range v.obj {
			obj[k] = e.Clone()
		}
		return Value{kind: KindObject, obj: obj}
	}
	return v
}

// Equal reports deep equality. Integers and floats never compare equal to
// each other.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v in a compact, deterministic form used in error messages.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(formatFloat(v.f))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			v.obj[k].writeTo(sb)
		}
		sb.WriteByte('}')
	}
}
