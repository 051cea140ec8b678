package result

import (
	"testing"
	"time"
)

func TestBuilderDefaultsToPassed(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	r := b.Build()
	if r.Status != StatusPassed {
		t.Errorf("expected passed with no steps, got %s", r.Status)
	}
	if len(r.Steps) != 0 {
		t.Errorf("expected no steps, got %d", len(r.Steps))
	}
}

func TestBuilderFailedIsSticky(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.AddStep(StepInput{Name: "open", Status: StatusFailed})
	b.AddStep(StepInput{Name: "check", Status: StatusPassed})
	b.AddStep(StepInput{Name: "verify", Status: StatusSkipped})
	if got := b.Build().Status; got != StatusFailed {
		t.Errorf("failed must be sticky, got %s", got)
	}
}

func TestBuilderSkippedDoesNotDowngradeFailed(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.AddStep(StepInput{Name: "a", Status: StatusSkipped})
	if got := b.Status(); got != StatusSkipped {
		t.Fatalf("skipped step on passed run should set skipped, got %s", got)
	}
	b.AddStep(StepInput{Name: "b", Status: StatusFailed})
	b.AddStep(StepInput{Name: "c", Status: StatusSkipped})
	if got := b.Build().Status; got != StatusFailed {
		t.Errorf("skipped must not downgrade failed, got %s", got)
	}
}

func TestBuilderEmptyStatusDefaultsToPassed(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.AddStep(StepInput{Name: "open"})
	r := b.Build()
	if r.Steps[0].Status != StatusPassed {
		t.Errorf("empty step status should default to passed, got %s", r.Steps[0].Status)
	}
	if r.Status != StatusPassed {
		t.Errorf("expected passed, got %s", r.Status)
	}
}

func TestBuilderSetErrorForcesFailed(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.AddStep(StepInput{Name: "open", Status: StatusPassed})
	b.SetError("boom")
	b.AddStep(StepInput{Name: "after", Status: StatusPassed})
	r := b.Build()
	if r.Status != StatusFailed {
		t.Errorf("SetError must force failed, got %s", r.Status)
	}
	if r.ErrorMessage != "boom" {
		t.Errorf("expected error message 'boom', got %q", r.ErrorMessage)
	}
}

func TestBuilderSetErrorLastMessageWins(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.SetError("first").SetError("second")
	if got := b.Build().ErrorMessage; got != "second" {
		t.Errorf("expected last error message to win, got %q", got)
	}
}

func TestBuilderAddTagIdempotent(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.AddTag("smoke").AddTag("ui").AddTag("smoke")
	r := b.Build()
	if len(r.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", r.Tags)
	}
	if r.Tags[0] != "smoke" || r.Tags[1] != "ui" {
		t.Errorf("unexpected tag order: %v", r.Tags)
	}
}

func TestBuilderBuildIsRepeatable(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	b := NewBuilder("t1", "login", "")
	b.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	b.startTime = base

	first := b.Build()
	second := b.Build()
	if second.Duration < first.Duration {
		t.Errorf("duration must be non-decreasing across builds: %f then %f", first.Duration, second.Duration)
	}
	if first.TestID != second.TestID || first.Status != second.Status {
		t.Error("repeated builds must agree on content")
	}
	if !first.StartTime.Equal(second.StartTime) {
		t.Error("start time must stay fixed across builds")
	}
}

func TestBuildSnapshotsAreIndependent(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.AddStep(StepInput{Name: "open"})
	r := b.Build()
	b.AddStep(StepInput{Name: "later", Status: StatusFailed})
	if len(r.Steps) != 1 {
		t.Errorf("built snapshot must not grow with the builder, got %d steps", len(r.Steps))
	}
	if r.Status != StatusPassed {
		t.Errorf("built snapshot must not change status retroactively, got %s", r.Status)
	}
}

func TestStepCounts(t *testing.T) {
	b := NewBuilder("t1", "login", "")
	b.AddStep(StepInput{Name: "a", Status: StatusPassed})
	b.AddStep(StepInput{Name: "b", Status: StatusFailed})
	b.AddStep(StepInput{Name: "c", Status: StatusPassed})
	b.AddStep(StepInput{Name: "d", Status: StatusSkipped})
	r := b.Build()
	p, f, s := r.StepCounts()
	if p != 2 || f != 1 || s != 1 {
		t.Errorf("expected 2/1/1, got %d/%d/%d", p, f, s)
	}
}
