package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/punish2048/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string { return s.id }
func (s *stubGame) Title() string { return "Stub" }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen) {}
func (s *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register(Info{ID: "test_a", Title: "A", Blurb: "first"}, func() Game { return &stubGame{id: "test_a"} })
	Register(Info{ID: "test_b"}, func() Game { return &stubGame{id: "test_b"} })

	if !Exists("test_a") || !Exists("test_b") {
		t.Fatal("registered modes should exist")
	}

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "test_b" {
		t.Errorf("ID = %q, want test_b", g.ID())
	}

	info, ok := Lookup("test_b")
	if !ok || info.Title != "test_b" {
		t.Errorf("Lookup = %+v, %v; want title defaulted to the ID", info, ok)
	}

	// Registration order is kept.
	var ids []string
	for _, m := range List() {
		if m.ID == "test_a" || m.ID == "test_b" {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "test_a" {
		t.Errorf("List order = %v, want [test_a test_b]", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_mode")
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
	if Exists("no_such_mode") {
		t.Error("unknown mode should not exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Info{ID: "test_dup"}, func() Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(Info{ID: "test_dup"}, func() Game { return &stubGame{} })
}
