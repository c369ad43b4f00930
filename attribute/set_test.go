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

package attribute_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelworks/metricsdk/attribute"
)

func TestSetDoesNotReorderOrDeduplicate(t *testing.T) {
	s := attribute.NewSet(
		attribute.String("b", "2"),
		attribute.String("a", "1"),
		attribute.String("a", "1"),
	)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, attribute.Key("b"), s.Get(0).Key)
	assert.Equal(t, attribute.Key("a"), s.Get(1).Key)
	assert.Equal(t, attribute.Key("a"), s.Get(2).Key)
}

func TestSetEqualIsPositional(t *testing.T) {
	a := attribute.NewSet(attribute.String("x", "1"), attribute.String("y", "2"))
	b := attribute.NewSet(attribute.String("y", "2"), attribute.String("x", "1"))
	assert.False(t, a.Equal(b), "differently-ordered sets must not compare equal")

	c := attribute.NewSet(attribute.String("x", "1"), attribute.String("y", "2"))
	assert.True(t, a.Equal(c))
}

func TestEmptySetIsDistinctAndLegal(t *testing.T) {
	e1 := attribute.Empty()
	e2 := attribute.NewSet()
	assert.True(t, e1.Equal(e2))
	assert.Equal(t, 0, e1.Len())
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := attribute.NewSet(attribute.Int64("n", 1), attribute.Bool("ok", true))
	b := attribute.NewSet(attribute.Int64("n", 1), attribute.Bool("ok", true))
	require.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := attribute.NewSet(attribute.Int64("n", 2), attribute.Bool("ok", true))
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestBuilderRejectsOddArgsAndBadTypes(t *testing.T) {
	_, err := attribute.NewBuilder("k").Set()
	assert.Error(t, err)

	_, err = attribute.NewBuilder("k", struct{}{}).Set()
	assert.Error(t, err)

	s, err := attribute.NewBuilder("a", int64(1)).Add("b", "s").Set()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestFilterPreservesOrderAndReportsDropped(t *testing.T) {
	s := attribute.NewSet(
		attribute.String("keep", "1"),
		attribute.String("drop", "2"),
		attribute.String("keep2", "3"),
	)
	filtered, dropped := s.Filter(func(kv attribute.KeyValue) bool {
		return kv.Key != "drop"
	})
	assert.True(t, dropped)
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, attribute.Key("keep"), filtered.Get(0).Key)
	assert.Equal(t, attribute.Key("keep2"), filtered.Get(1).Key)

	unchanged, dropped := s.Filter(func(attribute.KeyValue) bool { return true })
	assert.False(t, dropped)
	assert.True(t, unchanged.Equal(s))

	_, dropped = s.Filter(nil)
	assert.False(t, dropped)
}

func TestIteratorWalksInOrder(t *testing.T) {
	s := attribute.NewSet(attribute.String("a", "1"), attribute.String("b", "2"))
	iter := s.Iter()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Attribute().Key))
	}
	assert.Equal(t, []string{"a", "b"}, keys)
}
