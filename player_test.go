package main

import (
	"reflect"
	"testing"
)

func TestMergePositionsEmptyLeavesStoreUnchanged(t *testing.T) {
	st := newPlayerStore()
	st.applyFullSnapshot(map[string]Player{
		"a": {ID: "a", Username: "Ann", X: 1, Y: 2, Facing: DirDown},
		"b": {ID: "b", Username: "Bob", X: 3, Y: 4, Facing: DirLeft},
	}, map[string]Avatar{
		"av": {Name: "av", Frames: map[Direction][]string{DirDown: {"f0"}}},
	})

	before := make(map[string]Player, len(st.players))
	for id, p := range st.players {
		before[id] = p
	}

	st.mergePositions(map[string]Player{})

	if !reflect.DeepEqual(st.players, before) {
		t.Fatalf("empty merge changed store: %#v != %#v", st.players, before)
	}
}

func TestMergePositionsOverwritesOnlyListedEntries(t *testing.T) {
	st := newPlayerStore()
	st.upsertPlayer(Player{ID: "a", Username: "Ann", X: 1})
	st.upsertPlayer(Player{ID: "b", Username: "Bob", X: 3})

	st.mergePositions(map[string]Player{
		"a": {ID: "a", Username: "Ann", X: 99, Moving: true},
	})

	a, _ := st.get("a")
	if a.X != 99 || !a.Moving {
		t.Fatalf("entry a not overwritten: %#v", a)
	}
	b, _ := st.get("b")
	if b.X != 3 {
		t.Fatalf("entry b touched by partial merge: %#v", b)
	}
}

func TestDisplayNameDisambiguation(t *testing.T) {
	st := newPlayerStore()
	tim1 := Player{ID: "xxxxabcd", Username: "Tim"}
	tim2 := Player{ID: "xxxxwxyz", Username: "Tim"}
	sue := Player{ID: "yyyy1234", Username: "Sue"}
	st.upsertPlayer(tim1)
	st.upsertPlayer(tim2)
	st.upsertPlayer(sue)

	if got := st.displayName(tim1); got != "Tim (abcd)" {
		t.Errorf("displayName(tim1)=%q, want %q", got, "Tim (abcd)")
	}
	if got := st.displayName(tim2); got != "Tim (wxyz)" {
		t.Errorf("displayName(tim2)=%q, want %q", got, "Tim (wxyz)")
	}
	if got := st.displayName(sue); got != "Sue" {
		t.Errorf("displayName(sue)=%q, want %q", got, "Sue")
	}
}

func TestDisplayNameShortID(t *testing.T) {
	st := newPlayerStore()
	st.upsertPlayer(Player{ID: "a1", Username: "Tim"})
	st.upsertPlayer(Player{ID: "b2", Username: "Tim"})

	if got := st.displayName(Player{ID: "a1", Username: "Tim"}); got != "Tim (a1)" {
		t.Errorf("displayName=%q, want %q", got, "Tim (a1)")
	}
}

func TestRegisterAvatarIfAbsentIsImmutable(t *testing.T) {
	st := newPlayerStore()
	first := Avatar{Name: "av", Frames: map[Direction][]string{DirUp: {"one"}}}
	second := Avatar{Name: "av", Frames: map[Direction][]string{DirUp: {"two"}}}

	st.registerAvatarIfAbsent(first)
	st.registerAvatarIfAbsent(second)

	got, ok := st.avatar("av")
	if !ok {
		t.Fatal("avatar missing")
	}
	if got.Frames[DirUp][0] != "one" {
		t.Fatalf("registered avatar was overwritten: %#v", got)
	}
}

func TestRemove(t *testing.T) {
	st := newPlayerStore()
	st.upsertPlayer(Player{ID: "a"})
	st.remove("a")
	if _, ok := st.get("a"); ok {
		t.Fatal("player still present after remove")
	}
	// Removing an unknown id is a no-op.
	st.remove("ghost")
}
