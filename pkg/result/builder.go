package result

import "time"

// StepInput carries the fields for one step being added to a builder.
// Status defaults to passed when empty; Timestamp defaults to the time
// the step is added.
type StepInput struct {
	Name         string
	Description  string
	Status       Status
	Duration     float64
	Screenshot   string
	ErrorMessage string
	Timestamp    time.Time
}

// Builder accumulates a test outcome step by step and produces an
// immutable TestResult snapshot. One builder is owned by exactly one
// execution; it is not safe for concurrent use.
type Builder struct {
	testID          string
	testName        string
	testDescription string
	startTime       time.Time
	steps           []TestStep
	tags            []string
	errorMessage    string
	status          Status

	now func() time.Time // injectable clock for tests
}

// NewBuilder creates a builder for one execution attempt. The start time
// is fixed here; every Build call measures duration from it.
func NewBuilder(testID, testName, testDescription string) *Builder {
	b := &Builder{
		testID:          testID,
		testName:        testName,
		testDescription: testDescription,
		status:          StatusPassed,
		now:             time.Now,
	}
	b.startTime = b.now()
	return b
}

// AddStep appends a step and updates the overall status.
//
// The derivation rule is sticky: a failed step forces the run to failed
// permanently; a skipped step only downgrades a run that is still passed.
func (b *Builder) AddStep(in StepInput) *Builder {
	status := in.Status
	if status == "" {
		status = StatusPassed
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = b.now()
	}
	b.steps = append(b.steps, TestStep{
		Name:         in.Name,
		Description:  in.Description,
		Status:       status,
		Duration:     in.Duration,
		Screenshot:   in.Screenshot,
		ErrorMessage: in.ErrorMessage,
		Timestamp:    ts,
	})

	if status == StatusFailed {
		b.status = StatusFailed
	} else if status == StatusSkipped && b.status != StatusFailed {
		b.status = StatusSkipped
	}
	return b
}

// AddTag records a tag once; duplicates are ignored.
func (b *Builder) AddTag(tag string) *Builder {
	for _, t := range b.tags {
		if t == tag {
			return b
		}
	}
	b.tags = append(b.tags, tag)
	return b
}

// SetError records a top-level failure and forces the run status to
// failed regardless of step history. The last message wins.
func (b *Builder) SetError(message string) *Builder {
	b.errorMessage = message
	b.status = StatusFailed
	return b
}

// Status returns the current derived status.
func (b *Builder) Status() Status { return b.status }

// Steps returns the steps added so far.
func (b *Builder) Steps() []TestStep { return b.steps }

// Build snapshots the accumulated state into a TestResult. It may be
// called more than once; each call re-measures end time and duration
// against the fixed start time.
func (b *Builder) Build() TestResult {
	end := b.now()
	steps := make([]TestStep, len(b.steps))
	copy(steps, b.steps)
	tags := make([]string, len(b.tags))
	copy(tags, b.tags)

	return TestResult{
		TestID:          b.testID,
		TestName:        b.testName,
		TestDescription: b.testDescription,
		Status:          b.status,
		StartTime:       b.startTime,
		EndTime:         end,
		Duration:        end.Sub(b.startTime).Seconds(),
		Steps:           steps,
		ErrorMessage:    b.errorMessage,
		Tags:            tags,
	}
}
