package entities

import (
	"testing"

	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
)

func celebrationSpec(t *testing.T, runID string) RunSpec {
	t.Helper()
	def, err := config.DefaultCatalog().Get("high-score")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	values := config.InitialValues(def)
	gen := particle.NewGenerator(particle.NewSource(1), 400, 800)
	banner, ok := gen.Banner(def.Kind, values)
	if !ok {
		t.Fatal("celebration has no banner")
	}
	return RunSpec{
		RunID:     runID,
		Particles: gen.Generate(def.Kind, values, particle.CountFor(def.Kind, values)),
		Glows:     gen.Glows(def.Kind, values),
		Banner:    &banner,
		TPS:       60,
	}
}

func TestSpawnRun_EntityOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	spec := celebrationSpec(t, "run-a")

	ids := SpawnRun(em, spec)
	want := len(spec.Particles) + len(spec.Glows) + 1
	if len(ids) != want {
		t.Fatalf("spawned %d entities, want %d", len(ids), want)
	}

	for i := range spec.Particles {
		pc, ok := ecs.GetComponent[*components.ParticleComponent](em, ids[i])
		if !ok {
			t.Fatalf("entity %d has no particle component", i)
		}
		if pc.Particle.Index != i {
			t.Errorf("entity %d holds particle %d", i, pc.Particle.Index)
		}
	}

	last := ids[len(ids)-1]
	bc, ok := ecs.GetComponent[*components.BannerComponent](em, last)
	if !ok {
		t.Fatal("last entity is not the banner")
	}
	if bc.State.Text != "HIGH SCORE!" {
		t.Errorf("banner text = %q", bc.State.Text)
	}

	for _, id := range ids {
		run, ok := ecs.GetComponent[*components.RunComponent](em, id)
		if !ok || run.RunID != "run-a" {
			t.Errorf("entity %d run = %+v", id, run)
		}
	}
}

func TestDestroyRun_OnlyMatchingRun(t *testing.T) {
	em := ecs.NewEntityManager()
	a := SpawnRun(em, celebrationSpec(t, "run-a"))
	b := SpawnRun(em, celebrationSpec(t, "run-b"))

	if n := DestroyRun(em, "run-a"); n != len(a) {
		t.Errorf("DestroyRun(run-a) = %d, want %d", n, len(a))
	}
	if em.EntityCount() != len(b) {
		t.Errorf("EntityCount = %d, want %d", em.EntityCount(), len(b))
	}
	if n := DestroyRun(em, "run-a"); n != 0 {
		t.Errorf("second DestroyRun = %d, want 0", n)
	}
	if n := DestroyRun(em, "unknown"); n != 0 {
		t.Errorf("DestroyRun(unknown) = %d, want 0", n)
	}
}

func TestSpawnRun_Empty(t *testing.T) {
	em := ecs.NewEntityManager()
	if ids := SpawnRun(em, RunSpec{RunID: "empty"}); len(ids) != 0 {
		t.Errorf("empty spec spawned %d entities", len(ids))
	}
}
