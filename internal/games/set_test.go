package games_test

import (
	"reflect"
	"testing"

	"commongames/internal/games"
)

func TestNewSetCollapsesDuplicates(t *testing.T) {
	s := games.NewSet(10, 10, 20)
	if s.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", s.Len())
	}
	if !s.Contains(10) || !s.Contains(20) {
		t.Fatalf("unexpected members: %v", s.Sorted())
	}
}

func TestIntersectLeavesInputsUntouched(t *testing.T) {
	a := games.NewSet(10, 20, 30)
	b := games.NewSet(20, 30, 40)

	got := a.Intersect(b)
	if !got.Equal(games.NewSet(20, 30)) {
		t.Fatalf("unexpected intersection: %v", got.Sorted())
	}
	if a.Len() != 3 || b.Len() != 3 {
		t.Fatalf("inputs modified: a=%v b=%v", a.Sorted(), b.Sorted())
	}
}

func TestSortedAscending(t *testing.T) {
	got := games.NewSet(30, 10, 20).Sorted()
	want := []games.ID{10, 20, 30}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
}

func TestAccumulatorSingleFoldIsIdentity(t *testing.T) {
	var acc games.Accumulator
	in := games.NewSet(1, 2, 3)
	acc.Fold(in)

	if !acc.Set().Equal(in) {
		t.Fatalf("expected identity, got %v", acc.Set().Sorted())
	}
	if acc.Folds() != 1 {
		t.Fatalf("expected 1 fold, got %d", acc.Folds())
	}
}

func TestAccumulatorScenario(t *testing.T) {
	var acc games.Accumulator
	acc.Fold(games.NewSet(10, 20, 30))
	acc.Fold(games.NewSet(20, 30, 40))

	if !acc.Set().Equal(games.NewSet(20, 30)) {
		t.Fatalf("unexpected intersection: %v", acc.Set().Sorted())
	}
}

func TestAccumulatorEmptySeedIsNotUnset(t *testing.T) {
	var acc games.Accumulator
	if acc.Seeded() {
		t.Fatal("zero accumulator should be unseeded")
	}

	acc.Fold(games.NewSet())
	if !acc.Seeded() {
		t.Fatal("expected empty first set to seed the accumulator")
	}

	acc.Fold(games.NewSet(1, 2))
	if acc.Set().Len() != 0 {
		t.Fatalf("expected empty intersection after empty seed, got %v", acc.Set().Sorted())
	}
}

func TestAccumulatorOrderIndependent(t *testing.T) {
	sets := []games.Set{
		games.NewSet(1, 2, 3, 4, 5),
		games.NewSet(2, 3, 5, 8),
		games.NewSet(0, 2, 5, 9, 3),
	}
	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	want := games.NewSet(2, 3, 5)
	for _, order := range orders {
		var acc games.Accumulator
		for _, idx := range order {
			acc.Fold(sets[idx])
		}
		if !acc.Set().Equal(want) {
			t.Fatalf("order %v: got %v want %v", order, acc.Set().Sorted(), want.Sorted())
		}
	}
}

func TestAccumulatorSetReturnsCopy(t *testing.T) {
	var acc games.Accumulator
	acc.Fold(games.NewSet(7))
	snapshot := acc.Set()
	snapshot.Add(8)
	if acc.Set().Contains(8) {
		t.Fatal("mutating the returned set should not affect the accumulator")
	}
}
