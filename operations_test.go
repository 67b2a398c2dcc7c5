// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import (
	"fmt"
	"math/rand"
	"testing"
)

//********************************************************************************************

func TestMin3(t *testing.T) {
	var minTests = []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range minTests {
		actual := min3(tt.p, tt.q, tt.r)
		if actual != tt.expected {
			t.Errorf("min3(%d, %d, %d): expected %d, actual %d", tt.p, tt.q, tt.r, tt.expected, actual)
		}
	}
}

//********************************************************************************************

func TestIte_1(t *testing.T) {
	bdd, _ := NewClassic(4, NodeSize(5000), CacheSize(50))
	n1 := bdd.Makeset([]int{0, 2, 3})
	n2 := bdd.Makeset([]int{0, 3})
	actual := bdd.Equiv(bdd.Ite(n1, n2, bdd.Not(n2)), bdd.Or(bdd.And(n1, n2), bdd.And(bdd.Not(n1), bdd.Not(n2))))
	if !bdd.Equal(actual, bdd.True()) {
		t.Errorf("ite(f,g,h) <=> (f and g) or (-f and h): expected true, actual false")
	}
}

//********************************************************************************************

// TestOperations implements the same tests than the bddtest program in the
// Buddy distribution. It uses function Allsat for checking that all
// assignments are detected.

func TestOperations(t *testing.T) {
	bdd, _ := NewClassic(4, NodeSize(1000), CacheSize(1000))
	varnum := 4

	test1Check := func(x *Node) error {
		allsatBDD := x
		allsatSumBDD := bdd.False()
		// Calculate whole set of assignments and remove all assignments
		// from original set
		bdd.Allsat(x, func(varset []int) error {
			y := bdd.True()
			for k, v := range varset {
				switch v {
				case 0:
					y = bdd.And(y, bdd.NIthvar(k))
				case 1:
					y = bdd.And(y, bdd.Ithvar(k))
				}
			}
			t.Logf("Checking bdd with %-4s assignments\n", bdd.Satcount(y))
			// Sum up all assignments
			allsatSumBDD = bdd.Or(allsatSumBDD, y)
			// Remove assignment from initial set
			allsatBDD = bdd.Apply(allsatBDD, y, OPdiff)
			return nil
		})

		// Now the summed set should be equal to the original set and the
		// subtracted set should be empty
		if !bdd.Equal(allsatSumBDD, x) {
			return fmt.Errorf("AllSat sum is not the initial BDD")
		}

		if !bdd.Equal(allsatBDD, bdd.False()) {
			return fmt.Errorf("AllSat is not False")
		}
		return nil
	}

	a := bdd.Ithvar(0)
	b := bdd.Ithvar(1)
	c := bdd.Ithvar(2)
	d := bdd.Ithvar(3)
	na := bdd.NIthvar(0)
	nb := bdd.NIthvar(1)
	nc := bdd.NIthvar(2)
	nd := bdd.NIthvar(3)

	test1Check(bdd.True())

	test1Check(bdd.False())

	// a & b | !a & !b
	test1Check(bdd.Or(bdd.And(a, b), bdd.And(na, nb)))

	// a & b | c & d
	test1Check(bdd.Or(bdd.And(a, b), bdd.And(c, d)))

	// a & !b | a & !d | a & b & !c
	test1Check(bdd.Or(bdd.And(a, nb), bdd.And(a, nd), bdd.And(a, b, nc)))

	for i := 0; i < varnum; i++ {
		test1Check(bdd.Ithvar(i))
		test1Check(bdd.NIthvar(i))
	}

	set := bdd.True()
	for i := 0; i < 50; i++ {
		v := rand.Intn(varnum)
		s := rand.Intn(2)

		if s == 0 {
			set = bdd.And(set, bdd.Ithvar(v))
		} else {
			set = bdd.And(set, bdd.NIthvar(v))
		}

		test1Check(set)
	}
}
