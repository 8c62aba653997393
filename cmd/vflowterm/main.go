// Command vflowterm browses a large generated list, tree or table in the
// terminal. Only the rows on screen are ever realized.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/go-theft-auto/vflow"
	"github.com/go-theft-auto/vflow/backend/term"
	"github.com/go-theft-auto/vflow/internal/democonfig"
)

type flags struct {
	config string
	view   string
	items  int
	wrap   string
	theme  string
	debug  bool
	dump   bool
}

func main() {
	var f flags

	root := &cobra.Command{
		Use:   "vflowterm",
		Short: "Scroll a virtualized list, tree or table in the terminal",
		Example: `  vflowterm --items 1000000
  vflowterm --view tree --items 5000
  vflowterm --config demo.toml
  vflowterm --view table --dump | head`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolve(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg, f.dump)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "TOML file with demo settings")
	fl.StringVar(&f.view, "view", "", "container: list, tree or table")
	fl.IntVarP(&f.items, "items", "n", 0, "number of generated items")
	fl.StringVar(&f.wrap, "wrap", "", "list wrapping: none, word, char or auto")
	fl.StringVar(&f.theme, "theme", "", "palette for the GL host: default, dark or light")
	fl.BoolVarP(&f.debug, "debug", "d", false, "log layout passes to stderr")
	fl.BoolVar(&f.dump, "dump", false, "print one screen and exit instead of running interactively")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vflowterm:", err)
		os.Exit(1)
	}
}

// resolve layers explicitly set flags over the config file over defaults.
func resolve(cmd *cobra.Command, f flags) (democonfig.Config, error) {
	cfg := democonfig.Default()
	if f.config != "" {
		var err error
		if cfg, err = democonfig.Load(f.config); err != nil {
			return cfg, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("view") {
		cfg.View = f.view
	}
	if fl.Changed("items") {
		cfg.Items = f.items
	}
	if fl.Changed("wrap") {
		cfg.Wrap = f.wrap
	}
	if fl.Changed("theme") {
		cfg.Theme = f.theme
	}
	if fl.Changed("debug") {
		cfg.Debug = f.debug
	}
	return cfg, cfg.Validate()
}

func run(out io.Writer, cfg democonfig.Config, dump bool) error {
	vflow.SetDebug(cfg.Debug)
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sched := vflow.NewScheduler()
	surface, err := buildSurface(cfg, sched, logger)
	if err != nil {
		return err
	}
	m := term.New(surface, sched, vflow.WithLogger(logger))
	m.SetTitle(fmt.Sprintf("%s of %d", cfg.View, cfg.Items))

	fd := int(os.Stdout.Fd())
	if dump || !xterm.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := xterm.GetSize(fd); err == nil {
			width, height = w, h
		}
		m.Update(tea.WindowSizeMsg{Width: width, Height: height})
		_, err := fmt.Fprintln(out, m.View())
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func buildSurface(cfg democonfig.Config, sched *vflow.Scheduler, logger *slog.Logger) (term.Surface, error) {
	wrap, err := cfg.WrapMode()
	if err != nil {
		return nil, err
	}
	opts := []vflow.Option{
		vflow.CellMetrics(1, 1, 0),
		vflow.WithScheduler(sched),
		vflow.WithLogger(logger),
		vflow.WithWrap(wrap),
	}

	switch cfg.View {
	case "tree":
		tree := vflow.NewTreeView(democonfig.SampleTree(cfg.Items, 4), append(opts, vflow.WithIndent(2))...)
		return term.TreeSurface[string]{Tree: tree}, nil

	case "table":
		rows := vflow.NewObservableList(democonfig.SampleRows(cfg.Items)...)
		table, err := vflow.NewTableView(rows, tableColumns(), opts...)
		if err != nil {
			return nil, fmt.Errorf("table: %w", err)
		}
		return term.TableSurface[democonfig.Row]{Table: table}, nil

	default:
		items := vflow.NewObservableList(democonfig.SampleLines(cfg.Items)...)
		return term.ListSurface[string]{List: vflow.NewListView(items, opts...)}, nil
	}
}

func tableColumns() []*vflow.TableColumn[democonfig.Row] {
	return []*vflow.TableColumn[democonfig.Row]{
		{Title: "ID", Value: func(r democonfig.Row) string { return strconv.Itoa(r.ID) }, Flags: vflow.ColumnWidthFixed, InitWidth: 8},
		{Title: "Name", Value: func(r democonfig.Row) string { return r.Name }},
		{Title: "Words", Value: func(r democonfig.Row) string { return strconv.Itoa(r.Words) }, Flags: vflow.ColumnWidthFixed, InitWidth: 6},
		{Title: "Notes", Value: func(r democonfig.Row) string { return "" }, Flags: vflow.ColumnWidthStretch, MinWidth: 10},
	}
}
