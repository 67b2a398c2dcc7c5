// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadiadb/rudd"
)

func TestMintermCountConstants(t *testing.T) {
	bdd, err := rudd.NewClassic(4)
	require.NoError(t, err)

	one := big.NewInt(1)
	assert.Equal(t, new(big.Int).Lsh(one, 4), bdd.MintermCount(bdd.True(), 4))
	assert.Equal(t, big.NewInt(0), bdd.MintermCount(bdd.False(), 4))
}

func TestMintermCountSingleVariable(t *testing.T) {
	bdd, err := rudd.NewClassic(2)
	require.NoError(t, err)
	a := bdd.Ithvar(0)
	// a depends only on variable 0: half of the 2^2 assignments satisfy it.
	assert.Equal(t, big.NewInt(2), bdd.MintermCount(a, 2))
}

func TestMintermCountComplement(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(a, b)
	notF := bdd.Not(f)

	total := pow2(3)
	sum := new(big.Int).Add(bdd.MintermCount(f, 3), bdd.MintermCount(notF, 3))
	assert.Equal(t, total, sum)
}

func TestSatcountMatchesManagerWidth(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(a, b)
	assert.Equal(t, bdd.MintermCount(f, 3), bdd.Satcount(f))
}

func TestWalsh0Identity(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.Or(a, b)

	mc := bdd.MintermCount(f, 3)
	want := new(big.Int).Sub(pow2(3), new(big.Int).Lsh(mc, 1))
	assert.Equal(t, want, bdd.Walsh0(f, 3))
}

func TestWalsh1SplitsOnCofactors(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.Xor(a, b)

	f0 := bdd.Cofactor(f, 0, false)
	f1 := bdd.Cofactor(f, 0, true)
	want := new(big.Int).Sub(bdd.Walsh0(f0, 2), bdd.Walsh0(f1, 2))
	assert.Equal(t, want, bdd.Walsh1(f, 0, 3))
}

func pow2(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}
