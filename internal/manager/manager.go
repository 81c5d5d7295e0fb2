// Package manager is the single entry point for the interface layer. Every
// operation returns a uniform Result, so shells render outcomes without
// knowing which component produced them.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"modui/internal/config"
	"modui/internal/mods"
	"modui/internal/script"
)

// Result is the one shape shells consume: a verdict, a human-readable
// message, and optional detail (typically a script output tail).
type Result struct {
	Success bool
	Message string
	Details string
}

// ModList is a fresh view of the mods folder plus the Result that produced it.
type ModList struct {
	Mods     []mods.Mod
	Warnings []string
	Result   Result
}

// ScriptReport carries a script outcome together with the re-scanned mod
// list, since merge and patch scripts may add or remove folders.
type ScriptReport struct {
	Result Result
	Run    script.Result
	Fresh  ModList
}

type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

type Manager struct {
	layout config.Layout
	runner *script.Runner
	log    *slog.Logger

	// Guards every file-system mutation under the root. Listing takes the
	// read side so it can overlap with other reads but never with a rename
	// or a running script.
	mu sync.RWMutex
}

func New(layout config.Layout, opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		layout: layout,
		runner: script.NewRunner(opts.Timeout),
		log:    log,
	}
}

func (m *Manager) Layout() config.Layout { return m.layout }

// ListMods re-scans the mods folder. State is never cached between calls;
// the folder is the only source of truth.
func (m *Manager) ListMods() ModList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scan()
}

func (m *Manager) scan() ModList {
	list, warnings, err := mods.List(m.layout.ModsDir())
	if err != nil {
		return ModList{Result: Result{Message: err.Error()}}
	}
	for _, w := range warnings {
		m.log.Warn("mod scan", "warning", w)
	}
	return ModList{
		Mods:     list,
		Warnings: warnings,
		Result:   Result{Success: true, Message: fmt.Sprintf("%d mod(s)", len(list))},
	}
}

// ToggleMods enables or disables the named mods and returns the fresh list.
// Unknown names fail the whole request before anything is renamed.
func (m *Manager) ToggleMods(names []string, enabled bool) ModList {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.scan()
	if !current.Result.Success {
		return current
	}

	byName := make(map[string]mods.Mod, len(current.Mods))
	for _, mod := range current.Mods {
		byName[mod.Name] = mod
	}

	var targets []mods.Mod
	for _, name := range names {
		mod, ok := byName[name]
		if !ok {
			current.Result = Result{Message: fmt.Sprintf("unknown mod %q", name)}
			return current
		}
		targets = append(targets, mod)
	}

	changed := 0
	for _, mod := range targets {
		if mod.Enabled != enabled {
			changed++
		}
		if _, err := mods.SetEnabled(m.layout.ModsDir(), mod, enabled); err != nil {
			fresh := m.scan()
			fresh.Result = Result{Message: err.Error()}
			return fresh
		}
	}

	verb := "enabled"
	if !enabled {
		verb = "disabled"
	}
	m.log.Info("toggled mods", "names", names, "enabled", enabled, "changed", changed)

	fresh := m.scan()
	if fresh.Result.Success {
		fresh.Result.Message = fmt.Sprintf("%s %d mod(s), %d unchanged", verb, changed, len(targets)-changed)
	}
	return fresh
}

// RunMerge runs a merge script inside Scripts/Merge with the selected mods'
// folder names as arguments. An empty selection passes every enabled mod.
func (m *Manager) RunMerge(ctx context.Context, scriptPath string, selected []string) ScriptReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.scan()
	if !current.Result.Success {
		return ScriptReport{Result: current.Result, Fresh: current}
	}

	byName := make(map[string]mods.Mod, len(current.Mods))
	for _, mod := range current.Mods {
		byName[mod.Name] = mod
	}

	var args []string
	if len(selected) == 0 {
		for _, mod := range current.Mods {
			if mod.Enabled {
				args = append(args, mods.FolderName(mod.Name, true))
			}
		}
	} else {
		for _, name := range selected {
			mod, ok := byName[name]
			if !ok {
				current.Result = Result{Message: fmt.Sprintf("unknown mod %q", name)}
				return ScriptReport{Result: current.Result, Fresh: current}
			}
			if !mod.Enabled {
				current.Result = Result{Message: fmt.Sprintf("mod %q is disabled; enable it before merging", name)}
				return ScriptReport{Result: current.Result, Fresh: current}
			}
			args = append(args, mods.FolderName(mod.Name, true))
		}
	}

	return m.runScript(ctx, script.Job{
		Kind:       script.KindMerge,
		ScriptPath: scriptPath,
		WorkDir:    m.layout.MergeDir(),
		Args:       args,
	})
}

// RunPatch runs a patch script with the mods folder as working directory.
func (m *Manager) RunPatch(ctx context.Context, scriptPath string) ScriptReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.runScript(ctx, script.Job{
		Kind:       script.KindPatch,
		ScriptPath: scriptPath,
		WorkDir:    m.layout.ModsDir(),
	})
}

func (m *Manager) runScript(ctx context.Context, job script.Job) ScriptReport {
	m.log.Info("running script", "kind", job.Kind, "script", job.ScriptPath, "workdir", job.WorkDir)
	run := m.runner.Run(ctx, job)
	report := ScriptReport{
		Run:    run,
		Result: describe(job, run),
		Fresh:  m.scan(),
	}
	m.log.Info("script finished", "kind", job.Kind, "outcome", run.Outcome, "exit", run.ExitCode)
	return report
}

// describe folds a script.Result into the uniform shape, attaching the output
// tail so users can self-diagnose without hunting for logs.
func describe(job script.Job, run script.Result) Result {
	details := outputTail(run)
	switch run.Outcome {
	case script.Success:
		return Result{Success: true, Message: fmt.Sprintf("%s script completed", job.Kind), Details: details}
	case script.NonZeroExit:
		return Result{Message: fmt.Sprintf("%s script exited with status %d", job.Kind, run.ExitCode), Details: details}
	case script.TimedOut:
		return Result{Message: fmt.Sprintf("%s script %v", job.Kind, run.Err), Details: details}
	case script.Cancelled:
		return Result{Message: fmt.Sprintf("%s script cancelled", job.Kind), Details: details}
	case script.InterpreterMissing:
		return Result{Message: run.Err.Error()}
	default:
		return Result{Message: fmt.Sprintf("%s script failed to start: %v", job.Kind, run.Err), Details: details}
	}
}

func outputTail(run script.Result) string {
	parts := make([]string, 0, 2)
	if out := strings.TrimSpace(run.Stdout); out != "" {
		parts = append(parts, out)
	}
	if errOut := strings.TrimSpace(run.Stderr); errOut != "" {
		parts = append(parts, errOut)
	}
	return strings.Join(parts, "\n")
}
