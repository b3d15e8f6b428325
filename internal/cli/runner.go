package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/filestore"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options carry root flags. Empty strings leave the config value alone.
type Options struct {
	Group      bool   // list grouped by pending/completed
	ConfigPath string // extra TOML config file
	Theme      string
	DataFile   string
	LogOutput  io.Writer
}

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// today is swapped out in tests.
var today = func() string { return time.Now().Format("2006-01-02") }

var subcommands = map[string]bool{
	"add": true, "ls": true, "done": true, "rm": true, "ui": true, "categories": true,
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return exitUsage
	}
	cmd, a := args[0], args[1:]

	switch {
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		PrintHelp()
		return exitOK
	case !subcommands[cmd]:
		ui.Fail("unknown subcommand: " + cmd)
		PrintHelp()
		return exitUsage
	}

	if cmd == "categories" {
		return doCategories()
	}

	s, code := open(opt)
	if code != exitOK {
		return code
	}

	switch cmd {
	case "ls":
		return doList(s, opt)
	case "add":
		return doAdd(s, a)
	case "done":
		n, code := parseIndex("done", a)
		if code != exitOK {
			return code
		}
		return doMark(s, n)
	case "rm":
		n, code := parseIndex("rm", a)
		if code != exitOK {
			return code
		}
		return doRemove(s, n)
	default: // ui
		return doInteractive(s)
	}
}

func PrintHelp() {
	ui.Print(`todo - a small task list

Usage:
  todo [-group] [-config file] [-theme name] [-file path] <subcommand> [args]

Subcommands:
  add [flags] <title...>   Add a task (title can be multiple words)
      -desc <text>           description
      -due <YYYY-MM-DD>      due date (default today)
      -category <name>       category (default personal)
      -priority <level>      low, medium or high (default medium)
  ls                       List tasks
  done <index>             Mark the task at 1-based index completed
  rm <index>               Remove the task at 1-based index
  categories               List categories
  ui                       Interactive list

Examples:
  todo add -due 2025-10-10 -category errands -priority low Buy milk
  todo ls
  todo done 2
  todo rm 3`)
}

// session is the state shared by subcommands after startup.
type session struct {
	app     *app.App
	path    string
	loadErr error
}

// open loads config, wires the logger and gateway and does the single
// startup load. A failed load is reported but never stops the command.
func open(opt Options) (*session, int) {
	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		ui.Fail("config: " + err.Error())
		return nil, exitError
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}
	if opt.DataFile != "" {
		cfg.DataFile = config.ExpandPath(opt.DataFile)
	}
	ui.SetTheme(cfg.Theme)

	logOut := opt.LogOutput
	if logOut == nil {
		logOut = io.Discard
	}
	logger := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)

	store := filestore.New(cfg.DataFile)
	a := app.New(store, logger)
	s := &session{app: a, path: cfg.DataFile}
	if err := a.Load(); err != nil {
		s.loadErr = err
		if !errors.Is(err, fs.ErrNotExist) {
			ui.Warn(err.Error() + " (continuing with an empty list)")
			keepUnreadable(store)
		}
	}
	return s, exitOK
}

// keepUnreadable copies a file that failed to load before the next change
// overwrites it.
func keepUnreadable(store *filestore.Store) {
	dst, err := store.Backup()
	if err != nil {
		ui.Warn("could not back up " + store.Path() + ": " + err.Error() + "; the next change overwrites it")
		return
	}
	ui.Note("previous contents copied to " + dst)
}

func parseIndex(cmd string, args []string) (int, int) {
	if len(args) != 1 {
		ui.Fail(fmt.Sprintf("usage: todo %s <index>", cmd))
		return 0, exitUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + args[0])
		return 0, exitUsage
	}
	return n, exitOK
}

// -------------- subcommand impls ----------------

func doList(s *session, opt Options) int {
	tasks := s.app.GetAllTasks()
	if errors.Is(s.loadErr, fs.ErrNotExist) {
		ui.Note("no saved tasks yet (" + s.path + ")")
	}

	t := ui.Current()
	d, p := s.app.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(tasks),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(d, d+p, 28)), ""}
	if opt.Group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, tableLines(tasks, allRows(len(tasks)))...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add -due 2025-10-10 Buy milk`"))
	ui.Print(ui.Panel(lines))
	return exitOK
}

func doAdd(s *session, args []string) int {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	desc := flags.String("desc", "", "description")
	due := flags.String("due", today(), "due date, YYYY-MM-DD")
	category := flags.String("category", model.CategoryPersonal.String(), "category")
	priority := flags.String("priority", string(model.PriorityMedium), "low, medium or high")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			PrintHelp()
			return exitOK
		}
		ui.Fail("add: " + err.Error())
		return exitUsage
	}
	if flags.NArg() == 0 {
		ui.Fail("usage: todo add [flags] <title...>")
		return exitUsage
	}

	cat, ok := model.ParseCategory(*category)
	if !ok {
		ui.Fail(fmt.Sprintf("add: unknown category %q (see `todo categories`)", *category))
		return exitUsage
	}
	title := strings.Join(flags.Args(), " ")
	if err := s.app.AddTask(title, *desc, *due, cat, *priority); err != nil {
		ui.Fail("add: " + err.Error())
		return exitUsage
	}
	if code := checkSaved(s); code != exitOK {
		return code
	}
	ui.OK("added")
	return exitOK
}

func doMark(s *session, userIndex int) int {
	if err := s.app.MarkTaskAsCompleted(userIndex - 1); err != nil {
		return failSelection(s, err, userIndex)
	}
	if code := checkSaved(s); code != exitOK {
		return code
	}
	ui.OK("marked completed")
	return exitOK
}

func doRemove(s *session, userIndex int) int {
	if err := s.app.DeleteTask(userIndex - 1); err != nil {
		return failSelection(s, err, userIndex)
	}
	if code := checkSaved(s); code != exitOK {
		return code
	}
	ui.OK("removed")
	return exitOK
}

func doCategories() int {
	for _, c := range model.Categories() {
		ui.Print(strings.ToLower(c.String()))
	}
	return exitOK
}

func doInteractive(s *session) int {
	if err := tui.Run(s.app); err != nil {
		ui.Fail("ui: " + err.Error())
		return exitError
	}
	return checkSaved(s)
}

func failSelection(s *session, err error, userIndex int) int {
	ui.Fail(fmt.Sprintf("%s: have %d, got %d", err, len(s.app.GetAllTasks()), userIndex))
	ui.Note("Hint: run `todo ls` to see valid indexes")
	return exitUsage
}

// checkSaved turns a failed save into exit code 1. The change is still in
// memory but this process is about to exit, so it is lost.
func checkSaved(s *session) int {
	if s.app.Synced() || s.app.SaveErr() == nil {
		return exitOK
	}
	ui.Fail("save: " + s.app.SaveErr().Error())
	return exitError
}

// -------------- rendering helpers --------------

var tableHeaders = []string{"#", "Title", "Description", "Due Date", "Category", "Priority", "Status"}

func allRows(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// tableLines renders the rows at the given indexes, numbered 1-based so the
// numbers can be passed straight to done and rm.
func tableLines(tasks []app.Row, indexes []int) []string {
	if len(indexes) == 0 {
		return []string{ui.Current().Muted.Render("no tasks")}
	}
	rows := make([][]string, 0, len(indexes))
	for _, i := range indexes {
		r := tasks[i]
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ui.Truncate(r.Title, 40),
			ui.Truncate(r.Description, 30),
			r.DueDate,
			r.Category,
			r.Priority,
			r.Status,
		})
	}
	return []string{ui.Table(tableHeaders, rows, func(row int) bool {
		return rows[row][6] == model.StatusCompleted
	})}
}

func groupLines(tasks []app.Row) []string {
	var pend, done []int
	for i, r := range tasks {
		if r.Status == model.StatusCompleted {
			done = append(done, i)
		} else {
			pend = append(pend, i)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	lines = append(lines, tableLines(tasks, pend)...)
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Completed"))
	lines = append(lines, tableLines(tasks, done)...)
	return lines
}
