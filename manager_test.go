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

func TestNewClassicAndModernAgree(t *testing.T) {
	classic, err := rudd.NewClassic(3)
	require.NoError(t, err)
	modern, err := rudd.NewModern(3)
	require.NoError(t, err)

	for _, bdd := range []rudd.BDD{classic, modern} {
		assert.Equal(t, 3, bdd.NumVars())
		f := bdd.And(bdd.Ithvar(0), bdd.NIthvar(1))
		assert.True(t, bdd.IsCube(f))
		assert.False(t, bdd.Equal(f, bdd.False()))
	}
}

func TestNewVarGrowsManager(t *testing.T) {
	bdd, err := rudd.NewClassic(1)
	require.NoError(t, err)
	v, err := bdd.NewVar()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, bdd.NumVars())
	assert.False(t, bdd.Ithvar(1).IsError())
}

func TestOwnershipAcrossManagers(t *testing.T) {
	a, err := rudd.NewClassic(2)
	require.NoError(t, err)
	b, err := rudd.NewClassic(2)
	require.NoError(t, err)
	foreign := a.Ithvar(0)
	assert.True(t, b.Not(foreign).IsError())
	assert.True(t, b.Errored())
}

func TestSizeAndStats(t *testing.T) {
	bdd, err := rudd.NewClassic(3)
	require.NoError(t, err)
	f := bdd.And(bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2))
	assert.Equal(t, 3, bdd.Size(f))
	assert.NotEmpty(t, bdd.Stats())
}

func TestParamsRoundtrip(t *testing.T) {
	bdd, err := rudd.NewClassic(2, rudd.GCThreshold(80))
	require.NoError(t, err)
	p := bdd.Params()
	assert.Equal(t, 80, p.GCThreshold)
	p.GCThreshold = 40
	bdd.SetParams(p, rudd.PGCThreshold)
	assert.Equal(t, 40, bdd.Params().GCThreshold)
}

func TestDestroy(t *testing.T) {
	bdd, err := rudd.NewClassic(2)
	require.NoError(t, err)
	f := bdd.And(bdd.Ithvar(0), bdd.Ithvar(1))
	assert.False(t, f.IsError())

	bdd.Destroy()
	bdd.Destroy() // idempotent

	assert.True(t, f.IsError())
	assert.True(t, bdd.Not(f).IsError())
}
