// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadiadb/rudd"
)

func TestComposeIdentity(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(a, b)

	comp := bdd.ComposeBegin()
	g := comp.Apply(f)
	assert.True(t, bdd.Equal(f, g))
}

func TestComposeSubstitute(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)

	f := bdd.And(a, b) // a & b
	comp := bdd.ComposeBegin().Register(0, c)
	g := comp.Apply(f) // expect c & b

	assert.True(t, bdd.Equal(g, bdd.And(c, b)))
}

func TestComposeSimultaneous(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)

	f := bdd.Xor(a, b)
	comp := bdd.ComposeBegin().Register(0, b).Register(1, a)
	g := comp.Apply(f)

	// xor is commutative, so swapping a and b leaves it unchanged.
	assert.True(t, bdd.Equal(g, f))

	// substituting with an unrelated function does change it.
	h := bdd.ComposeBegin().Register(0, c).Apply(f)
	assert.True(t, bdd.Equal(h, bdd.Xor(c, b)))
}

func TestComposeBatchesAreIndependent(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.And(a, b)

	g1 := bdd.ComposeBegin().Register(0, c).Apply(f)
	g2 := bdd.ComposeBegin().Register(1, c).Apply(f)

	assert.True(t, bdd.Equal(g1, bdd.And(c, b)))
	assert.True(t, bdd.Equal(g2, bdd.And(a, c)))
}

func TestComposeVariableOutOfRange(t *testing.T) {
	bdd, err := rudd.NewClassic(2)
	require.NoError(t, err)
	a := bdd.Ithvar(0)
	// an out-of-range Register is rejected and recorded as an error, but
	// leaves the substitution batch unchanged -- Apply still succeeds.
	comp := bdd.ComposeBegin().Register(5, a)
	result := comp.Apply(a)
	assert.True(t, bdd.Equal(result, a))
	assert.True(t, bdd.Errored())
}
