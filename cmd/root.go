// Package cmd implements the CLI command structure for nebula.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/nebula/internal/config"
	"github.com/nibzard/nebula/internal/logging"
	"github.com/nibzard/nebula/internal/output"
	"github.com/nibzard/nebula/internal/snapshot"
	"github.com/nibzard/nebula/internal/todo"
	"github.com/nibzard/nebula/internal/ui"
	"github.com/nibzard/nebula/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// Run executes the nebula CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("nebula", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)

	// If no args or first arg is a flag, use "menu" as default
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, cfg, logger, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, logger, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, cfg, logger, remainingArgs)
	case "rm", "remove":
		return rmCommand(ctx, cfg, logger, remainingArgs)
	case "status":
		return statusCommand(ctx, cfg, logger, remainingArgs)
	case "init":
		return initCommand(ctx, cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// menuCommand starts the interactive menu.
func menuCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("nebula menu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !utils.IsTTY(stdout) {
		return fmt.Errorf("the menu needs a terminal, use a subcommand instead (see nebula help)")
	}

	path := cfg.TaskPath()
	store := todo.NewStore()
	var message string
	if cfg.LoadOnStart {
		tasks, err := snapshot.Load(path)
		if err != nil {
			// Start empty rather than refuse to open; saving will overwrite.
			logger.Error("load failed", "path", path, "err", err)
			message = fmt.Sprintf("Failed to load: %v", err)
		} else {
			store.Replace(tasks)
			logger.Info("tasks loaded", "path", path, "count", len(tasks))
		}
	}

	// The alt screen owns the terminal, only debug sessions keep logging.
	if logger.GetLevel() > log.DebugLevel {
		logger = logging.Discard()
	}

	return ui.Run(ctx, store, ui.Options{
		Path:          path,
		ConfirmRemove: cfg.ConfirmRemove,
		Color:         cfg.Color,
		Message:       message,
		Logger:        logger,
	})
}

// addCommand adds one task and saves the file.
func addCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("nebula add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	description := fs.String("d", "", "Task description")
	statusArg := fs.String("s", string(todo.StatusTodo), "Initial status (Todo|InProgress|Done)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	status, err := todo.ParseStatus(*statusArg)
	if err != nil {
		return err
	}

	store, path, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	task := store.Add(title, strings.TrimSpace(*description))
	if status != task.Status {
		if err := store.UpdateStatus(task.ID, status); err != nil {
			return err
		}
		task.Status = status
	}
	logger.Debug("task added", "id", task.ID, "status", task.Status)

	if err := saveStore(ctx, store, path, logger); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Task added successfully.")
	fmt.Fprintln(stdout, output.TaskLine(task))
	return nil
}

// lsCommand renders the task list.
func lsCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("nebula ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatArg := fs.String("format", string(output.FormatText), "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	format, err := output.ParseFormat(*formatArg)
	if err != nil {
		return err
	}

	store, _, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return output.Render(stdout, store.List(), format, output.Options{Color: cfg.Color})
}

// rmCommand removes one task by id and saves the file.
func rmCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("nebula rm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: nebula rm [-y] <id>")
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	store, path, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	task, err := store.Get(id)
	if err != nil {
		return err
	}
	if cfg.ConfirmRemove && !*yes {
		ok, err := confirm(ctx, fmt.Sprintf("Delete task #%d? [Y/n] ", task.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(stdout, "Cancelled.")
			return nil
		}
	}
	if _, err := store.Remove(id); err != nil {
		return err
	}
	logger.Debug("task removed", "id", id)

	if err := saveStore(ctx, store, path, logger); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Task with ID %d removed successfully.\n", id)
	return nil
}

// statusCommand changes the status of one task and saves the file.
func statusCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("nebula status", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: nebula status <id> <status>")
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}
	status, err := todo.ParseStatus(strings.Join(fs.Args()[1:], " "))
	if err != nil {
		return err
	}

	store, path, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := store.UpdateStatus(id, status); err != nil {
		return err
	}
	logger.Debug("task status updated", "id", id, "status", status)

	if err := saveStore(ctx, store, path, logger); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Task #%d updated.\n", id)
	return nil
}

// initCommand writes an example nebula.toml and an empty task file into the
// working directory. Existing files are left alone unless -force is given.
func initCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("nebula init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	configPath := filepath.Join(cfg.WorkDir, "nebula.toml")
	if !*force && fileExists(configPath) {
		fmt.Fprintf(stdout, "Skipped %s (exists)\n", configPath)
	} else {
		if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", configPath)
	}

	taskPath := cfg.TaskPath()
	if !*force && fileExists(taskPath) {
		fmt.Fprintf(stdout, "Skipped %s (exists)\n", taskPath)
		return nil
	}
	if err := saveStore(ctx, todo.NewStore(), taskPath, logger); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", taskPath)
	return nil
}

// doctorCommand reports the effective configuration and task file health.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("nebula doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	cfg := cws.Config
	path := cfg.TaskPath()
	if len(remaining) == 1 {
		path = remaining[0]
	}

	fmt.Fprintln(stdout, "Nebula Doctor")
	fmt.Fprintln(stdout, "=============")
	fmt.Fprintln(stdout)

	allOK := true

	fmt.Fprintln(stdout, "Config files:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "  (none, using defaults)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(stdout, "  %s\n", f)
	}
	for _, key := range cws.Undecoded {
		fmt.Fprintf(stdout, "  ⚠️  Unknown key: %s\n", key)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Settings:")
	values := map[string]string{
		"task_file":      cfg.TaskFile,
		"load_on_start":  strconv.FormatBool(cfg.LoadOnStart),
		"confirm_remove": strconv.FormatBool(cfg.ConfirmRemove),
		"color":          strconv.FormatBool(cfg.Color),
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": strconv.FormatBool(cfg.LogTimestamps),
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "  %-15s %-12s (%s)\n", k, values[k], cws.Sources[k])
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Task file: %s\n", path)
	tasks, err := snapshot.Load(path)
	switch {
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	case fileExists(path):
		store := todo.NewStore()
		store.Replace(tasks)
		fmt.Fprintf(stdout, "  ✅ OK (%d tasks, next id %d)\n", store.Len(), store.NextID())
	default:
		fmt.Fprintln(stdout, "  ✅ Not created yet (will be written on first save)")
	}
	fmt.Fprintf(stdout, "  Schema: bundled, %d bytes\n", len(snapshot.Schema()))
	fmt.Fprintln(stdout)

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "nebula version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Nebula To Do - a small local task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  nebula [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu                      Interactive menu (default command)")
	fmt.Fprintln(w, "  add [-d desc] [-s status] <title...>")
	fmt.Fprintln(w, "                            Add a task")
	fmt.Fprintln(w, "  ls [-format text|json|yaml]")
	fmt.Fprintln(w, "                            List tasks")
	fmt.Fprintln(w, "  rm [-y] <id>              Remove a task")
	fmt.Fprintln(w, "  status <id> <status>      Set a task status (Todo|InProgress|Done)")
	fmt.Fprintln(w, "  init [-force]             Write nebula.toml and an empty task file")
	fmt.Fprintln(w, "  doctor [file]             Check config and task file validity")
	fmt.Fprintln(w, "  version                   Show version information")
	fmt.Fprintln(w, "  help                      Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration files:")
	fmt.Fprintln(w, "  ~/.nebula/nebula.toml, ./nebula.toml or ./.nebula.toml")
}

// loadStore reads the configured task file into a new store.
func loadStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*todo.Store, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	path := cfg.TaskPath()
	tasks, err := snapshot.Load(path)
	if err != nil {
		logger.Error("load failed", "path", path, "err", err)
		return nil, "", fmt.Errorf("loading task file: %w", err)
	}
	logger.Info("tasks loaded", "path", path, "count", len(tasks))
	store := todo.NewStore()
	store.Replace(tasks)
	return store, path, nil
}

// saveStore writes the store unless ctx is already done.
func saveStore(ctx context.Context, store *todo.Store, path string, logger *log.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tasks := store.List()
	if err := snapshot.Save(tasks, path); err != nil {
		logger.Error("save failed", "path", path, "err", err)
		return fmt.Errorf("saving task file: %w", err)
	}
	logger.Info("tasks saved", "path", path, "count", len(tasks))
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

// confirm asks a yes/no question on stdin. An empty answer means yes; end of
// input means no. It returns ctx.Err() if ctx is done before an answer.
func confirm(ctx context.Context, prompt string) (bool, error) {
	fmt.Fprint(stdout, prompt)

	type answer struct {
		line string
		err  error
	}
	in := stdin
	answers := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		answers <- answer{line, err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		fmt.Fprintln(stdout)
		return false, ctx.Err()
	case a = <-answers:
	}
	if a.err != nil && a.line == "" {
		fmt.Fprintln(stdout)
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(a.line)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
