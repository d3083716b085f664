package trace

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/bubblesim/internal/physics"
)

func TestRecordFrame(t *testing.T) {
	r, err := Open(Memory)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	last, err := r.LastTick()
	if err != nil || last != -1 {
		t.Fatalf("LastTick() = %d, %v; want -1", last, err)
	}

	bodies := []physics.Body{
		{Pos: mgl64.Vec2{1, 2}, Vel: mgl64.Vec2{0.5, -3}, Radius: 3, Group: 0},
		{Pos: mgl64.Vec2{40, 20}, Vel: mgl64.Vec2{0, -11}, Radius: 8, Group: 1, Eliminated: true},
	}
	if err := r.Record(7, bodies); err != nil {
		t.Fatal(err)
	}
	bodies[0].Pos = mgl64.Vec2{9, 9}
	if err := r.Record(8, bodies[:1]); err != nil {
		t.Fatal(err)
	}

	rows, err := r.Frame(7)
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{
		{Index: 0, Group: 0, X: 1, Y: 2, VX: 0.5, VY: -3, Radius: 3},
		{Index: 1, Group: 1, X: 40, Y: 20, VX: 0, VY: -11, Radius: 8, Eliminated: true},
	}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}

	rows, err = r.Frame(8)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].X != 9 {
		t.Errorf("Frame(8) = %+v", rows)
	}

	if rows, _ := r.Frame(99); len(rows) != 0 {
		t.Errorf("Frame(99) = %+v, want empty", rows)
	}
	if last, _ := r.LastTick(); last != 8 {
		t.Errorf("LastTick() = %d, want 8", last)
	}
}

func TestOpenRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); !errors.Is(err, ErrExists) {
		t.Fatalf("Open(existing) err = %v, want ErrExists", err)
	}
}
