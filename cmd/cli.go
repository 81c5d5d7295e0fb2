package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"modui/internal/config"
	"modui/internal/manager"
	"modui/internal/tui"
)

type CLI struct {
	Root        string        `flag:"" help:"GIMI root directory (defaults to the last one used)"`
	Timeout     time.Duration `flag:"" default:"10m" help:"Script execution timeout"`
	Verbose     bool          `flag:"" short:"v" help:"Log operations to stderr"`
	MergeScript string        `flag:"" help:"Merge script to run (default: first script in Scripts/Merge)"`
	PatchScript string        `flag:"" help:"Patch script to run (default: first script in Scripts)"`

	List    ListCmd    `cmd:"" help:"List mods and their state"`
	Enable  EnableCmd  `cmd:"" help:"Enable mods by name"`
	Disable DisableCmd `cmd:"" help:"Disable mods by name"`
	Merge   MergeCmd   `cmd:"" help:"Run a merge script against enabled mods"`
	Patch   PatchCmd   `cmd:"" help:"Run a patch script"`
	Tui     TuiCmd     `cmd:"" default:"1" help:"Interactive interface"`
}

// resolveRoot picks the root directory the way the original desktop tool did:
// explicit choice first, then the remembered one, then the current directory.
// The chosen root is persisted for the next run.
func (cli *CLI) resolveRoot() (string, error) {
	root := cli.Root
	if root == "" {
		settings, err := config.LoadSettings()
		if err == nil {
			root = settings.LastRoot
		}
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}
	if err := (config.Settings{LastRoot: root}).Save(); err != nil {
		slog.Warn("could not persist settings", "error", err)
	}
	return root, nil
}

func (cli *CLI) buildManager(quiet bool) (*manager.Manager, error) {
	root, err := cli.resolveRoot()
	if err != nil {
		return nil, err
	}

	out := io.Writer(os.Stderr)
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	if quiet {
		out = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	return manager.New(config.Layout{Root: root}, manager.Options{
		Timeout: cli.Timeout,
		Logger:  logger,
	}), nil
}

// scriptContext cancels the running script on Ctrl-C instead of killing the
// whole program, so the outcome is still reported.
func scriptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func printList(list manager.ModList) {
	for _, mod := range list.Mods {
		mark := "[x]"
		if !mod.Enabled {
			mark = "[ ]"
		}
		fmt.Printf("%s %s\n", mark, mod.Name)
	}
}

func reportScript(report manager.ScriptReport) error {
	if report.Result.Details != "" {
		fmt.Println(report.Result.Details)
	}
	if !report.Result.Success {
		return errors.New(report.Result.Message)
	}
	fmt.Println(report.Result.Message)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(cli *CLI) error {
	mgr, err := cli.buildManager(false)
	if err != nil {
		return err
	}
	list := mgr.ListMods()
	if !list.Result.Success {
		return errors.New(list.Result.Message)
	}
	printList(list)
	return nil
}

type EnableCmd struct {
	Names []string `arg:"" help:"Mod names to enable"`
}

func (c *EnableCmd) Run(cli *CLI) error {
	return toggle(cli, c.Names, true)
}

type DisableCmd struct {
	Names []string `arg:"" help:"Mod names to disable"`
}

func (c *DisableCmd) Run(cli *CLI) error {
	return toggle(cli, c.Names, false)
}

func toggle(cli *CLI, names []string, enabled bool) error {
	mgr, err := cli.buildManager(false)
	if err != nil {
		return err
	}
	list := mgr.ToggleMods(names, enabled)
	if !list.Result.Success {
		return errors.New(list.Result.Message)
	}
	fmt.Println(list.Result.Message)
	printList(list)
	return nil
}

type MergeCmd struct {
	Mods []string `arg:"" optional:"" help:"Mods to merge (default: all enabled)"`
}

func (c *MergeCmd) Run(cli *CLI) error {
	mgr, err := cli.buildManager(false)
	if err != nil {
		return err
	}
	scriptPath := cli.MergeScript
	if scriptPath == "" {
		scriptPath, err = config.FindScript(mgr.Layout().MergeDir())
		if err != nil {
			return err
		}
	}
	ctx, stop := scriptContext()
	defer stop()
	return reportScript(mgr.RunMerge(ctx, scriptPath, c.Mods))
}

type PatchCmd struct{}

func (c *PatchCmd) Run(cli *CLI) error {
	mgr, err := cli.buildManager(false)
	if err != nil {
		return err
	}
	scriptPath := cli.PatchScript
	if scriptPath == "" {
		scriptPath, err = config.FindScript(mgr.Layout().ScriptsDir())
		if err != nil {
			return err
		}
	}
	ctx, stop := scriptContext()
	defer stop()
	return reportScript(mgr.RunPatch(ctx, scriptPath))
}

type TuiCmd struct{}

func (c *TuiCmd) Run(cli *CLI) error {
	// Logging is discarded here: stderr belongs to the alt screen.
	mgr, err := cli.buildManager(true)
	if err != nil {
		return err
	}
	return tui.Create(mgr, cli.MergeScript, cli.PatchScript)
}
