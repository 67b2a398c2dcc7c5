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

func TestCheckSymmetryOr(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.Or(a, b)
	assert.True(t, bdd.CheckSymmetry(f, 0, 1, true))
}

func TestCheckSymmetryAsymmetric(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(a, bdd.Not(b))
	assert.False(t, bdd.CheckSymmetry(f, 0, 1, true))
}

func TestCheckSymmetryNegativePolarity(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	// f(a,b) == a and !b: f(0,1)=0, f(1,0)=1 (asymmetric under plain swap)
	// but f(0,0)=0, f(1,1)=0 (co-symmetric under swap-with-negation).
	f := bdd.And(a, bdd.Not(b))
	assert.False(t, bdd.CheckSymmetry(f, 0, 1, true))
	assert.True(t, bdd.CheckSymmetry(f, 0, 1, false))
}

func TestCheckSymmetrySameVariable(t *testing.T) {
	bdd, err := rudd.NewClassic(2)
	require.NoError(t, err)
	assert.False(t, bdd.CheckSymmetry(bdd.True(), 0, 0, true))
}
