// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package attribute // import "github.com/otelworks/metricsdk/attribute"

import (
	"errors"
	"hash/maphash"
)

// errOddArgs is returned when Builder.Set is called with an odd number of
// alternating key/value arguments.
var errOddArgs = errors.New("attribute: odd number of arguments to Builder.Set")

// Set is an ordered, immutable sequence of KeyValue pairs. Unlike most
// attribute implementations in the wild, Set never reorders or
// deduplicates: equality and hashing are positional, exactly as the caller
// supplied the pairs, per the partitioning rules a time series is keyed by.
type Set struct {
	kvs []KeyValue
}

var emptySet = Set{}

// Empty returns the canonical, distinct empty Set.
func Empty() Set { return emptySet }

// NewSet builds a Set from an already-ordered slice of KeyValue. The slice
// is copied; the caller's slice may be reused after the call returns.
func NewSet(kvs ...KeyValue) Set {
	if len(kvs) == 0 {
		return emptySet
	}
	cp := make([]KeyValue, len(kvs))
	copy(cp, kvs)
	return Set{kvs: cp}
}

// Builder constructs a Set from an alternating sequence of string keys and
// bool/string/int64/float64 values, in the order given. An odd-length
// argument list is a programming error and is caught here rather than
// silently truncated.
type Builder struct {
	args []any
}

// NewBuilder returns a Builder seeded with the given alternating
// key/value arguments.
func NewBuilder(args ...any) *Builder {
	return &Builder{args: args}
}

// Add appends one more key/value pair to the builder.
func (b *Builder) Add(key string, value any) *Builder {
	b.args = append(b.args, key, value)
	return b
}

// Set materializes the accumulated arguments into an attribute Set. It
// returns errOddArgs if an odd number of arguments was supplied.
func (b *Builder) Set() (Set, error) {
	if len(b.args)%2 != 0 {
		return emptySet, errOddArgs
	}
	if len(b.args) == 0 {
		return emptySet, nil
	}
	kvs := make([]KeyValue, 0, len(b.args)/2)
	for i := 0; i < len(b.args); i += 2 {
		key, ok := b.args[i].(string)
		if !ok {
			return emptySet, errors.New("attribute: argument at even position is not a string key")
		}
		kv, err := toKeyValue(key, b.args[i+1])
		if err != nil {
			return emptySet, err
		}
		kvs = append(kvs, kv)
	}
	return Set{kvs: kvs}, nil
}

func toKeyValue(key string, v any) (KeyValue, error) {
	switch val := v.(type) {
	case bool:
		return Bool(key, val), nil
	case string:
		return String(key, val), nil
	case int64:
		return Int64(key, val), nil
	case int:
		return Int(key, val), nil
	case float64:
		return Float64(key, val), nil
	default:
		return KeyValue{}, errors.New("attribute: unsupported value type in Set builder")
	}
}

// Len returns the number of KeyValue pairs in s.
func (s Set) Len() int { return len(s.kvs) }

// Get returns the i'th KeyValue pair, in caller-supplied order.
func (s Set) Get(i int) KeyValue { return s.kvs[i] }

// ToSlice returns a copy of the ordered KeyValue pairs in s.
func (s Set) ToSlice() []KeyValue {
	cp := make([]KeyValue, len(s.kvs))
	copy(cp, s.kvs)
	return cp
}

// Iter returns an iterator over the attributes, in the order they were
// supplied.
func (s Set) Iter() Iterator {
	return Iterator{set: s, idx: -1}
}

// Equal reports whether s and o are positionally equal: same length, and
// each indexed pair matches by key and value. Sets are never reordered, so
// this is a literal pairwise comparison, not a set comparison.
func (s Set) Equal(o Set) bool {
	if len(s.kvs) != len(o.kvs) {
		return false
	}
	for i, kv := range s.kvs {
		if !kv.Equal(o.kvs[i]) {
			return false
		}
	}
	return true
}

// seed is process-global so that two Sets built from identical
// byte-sequences in the same process hash identically; it intentionally
// does not need to be stable across processes.
var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of s, consistent with Equal: equal Sets
// always hash equally. It is not a cryptographic hash and may collide.
func (s Set) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, kv := range s.kvs {
		_, _ = h.WriteString(string(kv.Key))
		h.WriteByte(0)
		writeValue(&h, kv.Value)
		h.WriteByte(0)
	}
	return h.Sum64()
}

func writeValue(h *maphash.Hash, v Value) {
	var tag [1]byte
	tag[0] = byte(v.Type())
	h.Write(tag[:])
	switch v.Type() {
	case STRING:
		_, _ = h.WriteString(v.AsString())
	default:
		var buf [8]byte
		n := v.numeric
		for i := 0; i < 8; i++ {
			buf[i] = byte(n)
			n >>= 8
		}
		h.Write(buf[:])
	}
}

// Filter is a predicate used to keep or drop an individual KeyValue when
// deriving a filtered Set.
type Filter func(KeyValue) bool

// Filter returns a new Set containing only the KeyValue pairs for which f
// returns true, preserving relative order, plus whether any pair was
// dropped.
func (s Set) Filter(f Filter) (Set, bool) {
	if f == nil {
		return s, false
	}
	var dropped bool
	kvs := make([]KeyValue, 0, len(s.kvs))
	for _, kv := range s.kvs {
		if f(kv) {
			kvs = append(kvs, kv)
		} else {
			dropped = true
		}
	}
	if !dropped {
		return s, false
	}
	if len(kvs) == 0 {
		return emptySet, true
	}
	return Set{kvs: kvs}, true
}

// Iterator walks a Set's KeyValue pairs in order.
type Iterator struct {
	set Set
	idx int
}

// Next advances the iterator and reports whether a pair remains.
func (i *Iterator) Next() bool {
	i.idx++
	return i.idx < i.set.Len()
}

// Attribute returns the current KeyValue.
func (i *Iterator) Attribute() KeyValue { return i.set.Get(i.idx) }

// Len returns the total number of attributes in the iterated Set,
// regardless of how far the iterator has advanced.
func (i *Iterator) Len() int { return i.set.Len() }
