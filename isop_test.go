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

func TestISOPSingleFunction(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Or(bdd.And(a, b), bdd.And(b, c))

	node, cover := bdd.ISOP(f, f)
	require.False(t, node.IsError())
	assert.True(t, bdd.Equal(node, f))
	assert.NotEmpty(t, cover)
}

func TestISOPBounds(t *testing.T) {
	bdd, err := rudd.NewClassic(2)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	lower := bdd.And(a, b)
	upper := bdd.Or(a, b)

	f, _ := bdd.ISOP(lower, upper)
	// f must imply upper and be implied by lower.
	assert.True(t, bdd.Equal(bdd.Imp(lower, f), bdd.True()))
	assert.True(t, bdd.Equal(bdd.Imp(f, upper), bdd.True()))
}

func TestISOPConstants(t *testing.T) {
	bdd, err := rudd.NewClassic(2)
	require.NoError(t, err)
	f, cov := bdd.ISOP(bdd.False(), bdd.False())
	assert.True(t, bdd.Equal(f, bdd.False()))
	assert.Empty(t, cov)

	g, _ := bdd.ISOP(bdd.True(), bdd.True())
	assert.True(t, bdd.Equal(g, bdd.True()))
}

func TestCoverString(t *testing.T) {
	c := rudd.Cover{
		rudd.Product{{Var: 0, Neg: false}, {Var: 1, Neg: true}},
	}
	assert.Equal(t, "x0&!x1", c.String())
	assert.Equal(t, "0", rudd.Cover{}.String())
}
