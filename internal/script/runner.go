package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"modui/pkg/utils"
)

type Kind string

const (
	KindMerge Kind = "merge"
	KindPatch Kind = "patch"
)

// Job is one script invocation. The working directory is part of the external
// contract: the importer's scripts resolve every relative path against it.
type Job struct {
	Kind       Kind
	ScriptPath string
	WorkDir    string
	Args       []string
}

type Outcome string

const (
	Success            Outcome = "success"
	NonZeroExit        Outcome = "nonzero_exit"
	TimedOut           Outcome = "timed_out"
	Cancelled          Outcome = "cancelled"
	LaunchFailed       Outcome = "launch_failed"
	InterpreterMissing Outcome = "interpreter_missing"
)

// Result classifies a finished job. Outcomes are data, not errors: a script
// exiting nonzero is a normal thing to report, not a fault in this program.
type Result struct {
	Outcome  Outcome
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

type InterpreterMissingError struct {
	Script       string
	Interpreters []string
}

func (e *InterpreterMissingError) Error() string {
	return fmt.Sprintf("no interpreter for %q: none of %s found on PATH",
		filepath.Base(e.Script), strings.Join(e.Interpreters, ", "))
}

// Swapped out in tests to simulate an absent interpreter.
var (
	defaultLookPath = exec.LookPath
	lookPath        = defaultLookPath
)

// Interpreter candidates per script extension, tried in order. Anything not
// listed here is executed directly.
var interpreters = map[string][]string{
	".py": {"python3", "python"},
	".sh": {"bash", "sh"},
}

// Runner executes one job at a time. Two scripts racing on the same working
// directory would corrupt the merge output, so Run holds a lock for the whole
// invocation.
type Runner struct {
	Timeout   time.Duration // zero means no timeout
	MaxOutput int           // per-stream capture bound in bytes
	mu        sync.Mutex
}

const defaultMaxOutput = 64 * 1024

func NewRunner(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout, MaxOutput: defaultMaxOutput}
}

// Run launches the job's script and waits for it to finish, time out, or be
// cancelled through ctx. The child and its descendants are killed as a group
// on timeout or cancel; no orphan keeps writing into the mods folder.
func (r *Runner) Run(ctx context.Context, job Job) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(job.ScriptPath); err != nil {
		return Result{Outcome: LaunchFailed, ExitCode: -1, Err: err}
	}

	name, args, err := resolveCommand(job)
	if err != nil {
		return Result{Outcome: InterpreterMissing, ExitCode: -1, Err: err}
	}

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	stdout := &utils.TailBuffer{Max: r.MaxOutput}
	stderr := &utils.TailBuffer{Max: r.MaxOutput}

	c := exec.CommandContext(runCtx, name, args...)
	c.Dir = job.WorkDir
	c.Stdout = stdout
	c.Stderr = stderr
	setProcGroup(c)
	c.Cancel = func() error { return killProcGroup(c) }
	c.WaitDelay = 5 * time.Second

	runErr := c.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case runErr == nil:
		res.Outcome = Success
	case ctx.Err() != nil:
		res.Outcome = Cancelled
		res.ExitCode = -1
		res.Err = ctx.Err()
	case runCtx.Err() != nil:
		res.Outcome = TimedOut
		res.ExitCode = -1
		res.Err = fmt.Errorf("timed out after %s", r.Timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.Outcome = NonZeroExit
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.Outcome = LaunchFailed
			res.ExitCode = -1
		}
		res.Err = runErr
	}
	return res
}

// resolveCommand maps the script extension to an interpreter on PATH. Scripts
// without a mapped extension are assumed directly executable.
func resolveCommand(job Job) (string, []string, error) {
	ext := strings.ToLower(filepath.Ext(job.ScriptPath))
	candidates, ok := interpreters[ext]
	if !ok {
		return job.ScriptPath, job.Args, nil
	}
	for _, cand := range candidates {
		if path, err := lookPath(cand); err == nil {
			return path, append([]string{job.ScriptPath}, job.Args...), nil
		}
	}
	return "", nil, &InterpreterMissingError{Script: job.ScriptPath, Interpreters: candidates}
}
