// Package pipeline executes the staged firmware build sequence.
//
// The pipeline is an explicit state machine over the stage order
// clean → compile → package-assets → deploy-firmware → deploy-assets →
// monitor. Each stage is conditional on the resolved [config.Options] and on
// whether web assets were staged, and every stage is a blocking external
// toolchain invocation observed only as success or failure.
//
// Execution is strictly sequential and fail-fast: the first stage failure
// moves the machine to [StateFailed] and aborts all remaining stages with no
// retry and no rollback of completed stages. The monitor stage is the one
// exception to failure accounting — it is an interactive hand-off, and the
// pipeline is Done once it has been invoked.
//
// Key types:
//   - [Runner] drives the state machine over an injected [Toolchain]
//   - [StageResult] is the per-stage tri-state (skipped/succeeded/failed)
//   - [StageError] names the stage behind a failure
package pipeline

import (
	"context"
	"fmt"

	"fwbuild/internal/config"
	"fwbuild/internal/output"
)

// State is a phase of the pipeline state machine.
type State string

// Pipeline states. Idle is initial; Done and Failed are terminal.
const (
	StateIdle              State = "idle"
	StateCleaning          State = "cleaning"
	StateCompiling         State = "compiling"
	StatePackagingAssets   State = "packaging-assets"
	StateDeployingFirmware State = "deploying-firmware"
	StateDeployingAssets   State = "deploying-assets"
	StateMonitoring        State = "monitoring"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// Stage names one pipeline stage. The value is what failure messages and the
// call log use.
type Stage string

// Pipeline stages in execution order.
const (
	StageClean          Stage = "clean"
	StageCompile        Stage = "compile"
	StagePackageAssets  Stage = "package-assets"
	StageDeployFirmware Stage = "deploy-firmware"
	StageDeployAssets   Stage = "deploy-assets"
	StageMonitor        Stage = "monitor"
)

// Stages lists every stage in execution order.
func Stages() []Stage {
	return []Stage{StageClean, StageCompile, StagePackageAssets, StageDeployFirmware, StageDeployAssets, StageMonitor}
}

// StageResult is the tri-state outcome of one stage within a single
// invocation. Results are never persisted.
type StageResult int

// Stage outcomes.
const (
	// ResultSkipped means the stage was configured off or gated out.
	ResultSkipped StageResult = iota

	// ResultSucceeded means the external command reported success.
	ResultSucceeded

	// ResultFailed means the external command reported failure.
	ResultFailed
)

func (r StageResult) String() string {
	switch r {
	case ResultSucceeded:
		return "succeeded"
	case ResultFailed:
		return "failed"
	}
	return "skipped"
}

// Toolchain is the external command surface the pipeline delegates to.
//
// Each method blocks for the duration of the external command and returns
// nil on success. The toolchain package provides the PlatformIO
// implementation and a recording test double.
type Toolchain interface {
	Clean(ctx context.Context, env string) error
	Build(ctx context.Context, env string) error
	BuildFilesystem(ctx context.Context, env string) error
	Upload(ctx context.Context, env string) error
	UploadFilesystem(ctx context.Context, env string) error
	Monitor(ctx context.Context, baud int) error
}

// StageError reports which stage failed and wraps the underlying command
// error.
type StageError struct {
	// Stage is the stage that failed.
	Stage Stage

	// Err is the toolchain error.
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Runner drives the pipeline state machine.
//
// A Runner is single-use: create one per invocation with [NewRunner], call
// [Runner.Run] once, then read [Runner.State] and [Runner.Result].
type Runner struct {
	tc      Toolchain
	printer *output.Printer
	baud    int

	state   State
	results map[Stage]StageResult
}

// NewRunner creates a Runner in [StateIdle] with every stage result
// initialized to [ResultSkipped].
func NewRunner(tc Toolchain, printer *output.Printer, baud int) *Runner {
	results := make(map[Stage]StageResult, len(Stages()))
	for _, s := range Stages() {
		results[s] = ResultSkipped
	}
	return &Runner{
		tc:      tc,
		printer: printer,
		baud:    baud,
		state:   StateIdle,
		results: results,
	}
}

// State returns the current machine state.
func (r *Runner) State() State {
	return r.state
}

// Result returns the recorded outcome for a stage.
func (r *Runner) Result(s Stage) StageResult {
	return r.results[s]
}

// step binds one stage to its gate and toolchain call.
type step struct {
	stage  Stage
	state  State
	enable bool
	invoke func(context.Context) error
}

// Run executes the applicable stages in order.
//
// hasAssets gates the package-assets stage and, together with
// opts.UploadFilesystem, the deploy-assets stage. On the first stage failure
// Run records the failure, moves to [StateFailed], and returns a
// [*StageError]; no later stage is attempted. Reaching the end of the
// applicable sequence (including the monitor hand-off, whose own exit status
// is ignored) moves the machine to [StateDone] and returns nil.
func (r *Runner) Run(ctx context.Context, opts config.Options, hasAssets bool) error {
	env := opts.Board.Env()

	steps := []step{
		{
			stage:  StageClean,
			state:  StateCleaning,
			enable: opts.CleanBuild,
			invoke: func(ctx context.Context) error { return r.tc.Clean(ctx, env) },
		},
		{
			stage:  StageCompile,
			state:  StateCompiling,
			enable: true,
			invoke: func(ctx context.Context) error { return r.tc.Build(ctx, env) },
		},
		{
			stage:  StagePackageAssets,
			state:  StatePackagingAssets,
			enable: hasAssets,
			invoke: func(ctx context.Context) error { return r.tc.BuildFilesystem(ctx, env) },
		},
		{
			stage:  StageDeployFirmware,
			state:  StateDeployingFirmware,
			enable: opts.UploadFirmware,
			invoke: func(ctx context.Context) error { return r.tc.Upload(ctx, env) },
		},
		{
			stage:  StageDeployAssets,
			state:  StateDeployingAssets,
			enable: opts.UploadFilesystem && hasAssets,
			invoke: func(ctx context.Context) error { return r.tc.UploadFilesystem(ctx, env) },
		},
	}

	for _, s := range steps {
		if !s.enable {
			continue
		}

		r.state = s.state
		r.printer.Stagef("%s (%s)", s.stage, env)

		if err := s.invoke(ctx); err != nil {
			r.results[s.stage] = ResultFailed
			r.state = StateFailed
			return &StageError{Stage: s.stage, Err: err}
		}

		r.results[s.stage] = ResultSucceeded
		r.printer.Successf("%s complete", s.stage)
	}

	if opts.StartMonitor {
		r.state = StateMonitoring
		r.printer.Stagef("%s (baud %d), press Ctrl+C to exit", StageMonitor, r.baud)

		// Interactive hand-off: the monitor's own exit status is not a
		// pipeline outcome.
		_ = r.tc.Monitor(ctx, r.baud)
		r.results[StageMonitor] = ResultSucceeded
	}

	r.state = StateDone
	return nil
}
