// Package main provides the CLI entrypoint for tuicodon.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/tuicodon/internal/codon"
	"github.com/verte-zerg/tuicodon/internal/config"
	"github.com/verte-zerg/tuicodon/internal/generator"
	"github.com/verte-zerg/tuicodon/internal/logger"
	"github.com/verte-zerg/tuicodon/internal/model"
	"github.com/verte-zerg/tuicodon/internal/quiz"
	"github.com/verte-zerg/tuicodon/internal/reviewui"
	"github.com/verte-zerg/tuicodon/internal/stats"
	"github.com/verte-zerg/tuicodon/internal/store"
	"github.com/verte-zerg/tuicodon/internal/strand"
	"github.com/verte-zerg/tuicodon/internal/tui"
)

const (
	defaultTable         = "standard"
	defaultWeakTop       = quiz.DefaultWeakTop
	defaultWeakFactor    = quiz.DefaultWeakFactor
	defaultTerminalWidth = 80
)

var defaultVariant = strand.RNATemplate.String()

var (
	drillTable      string
	drillVariant    string
	drillSeed       int64
	drillCountStart bool
	drillFocusWeak  bool
	drillWeakTop    int
	drillWeakFactor float64
	drillPlain      bool
	drillReview     bool
	drillLogFile    string
	drillDebug      bool

	tableTable string

	presentTable      string
	presentSeed       int64
	presentCountStart bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuicodon",
		Short:         "Codon translation drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	rootCmd.Flags().StringVar(&drillTable, "table", defaultTable, "codon table: standard, a name under the tables dir, or a .json/.toml path")
	rootCmd.Flags().StringVar(&drillVariant, "variant", defaultVariant, "strand variant, e.g. rna-template or dna-nontemplate-reverse")
	rootCmd.Flags().Int64Var(&drillSeed, "seed", 0, "random seed (0 draws a fresh one)")
	rootCmd.Flags().BoolVar(&drillCountStart, "count-start", true, "include the start codon's residue in the answer")
	rootCmd.Flags().BoolVar(&drillFocusWeak, "focus-weak", false, "bias rounds toward residues missed this session")
	rootCmd.Flags().IntVar(&drillWeakTop, "weak-top", defaultWeakTop, "number of weak residues to focus on")
	rootCmd.Flags().Float64Var(&drillWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for codons of weak residues")
	rootCmd.Flags().BoolVar(&drillPlain, "plain", false, "line mode instead of the full-screen UI")
	rootCmd.Flags().BoolVar(&drillReview, "review", false, "open the review screen after exit")
	rootCmd.Flags().StringVar(&drillLogFile, "log-file", "", "write diagnostics as JSON lines to this file")
	rootCmd.Flags().BoolVar(&drillDebug, "debug", false, "enable debug diagnostics")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newPresentCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "table", &drillTable, fileCfg.Drill.Table)
	applyStringConfig(cmd, "variant", &drillVariant, fileCfg.Drill.Variant)
	applyInt64Config(cmd, "seed", &drillSeed, fileCfg.Drill.Seed)
	applyBoolConfig(cmd, "count-start", &drillCountStart, fileCfg.Drill.CountStart)
	applyBoolConfig(cmd, "focus-weak", &drillFocusWeak, fileCfg.Drill.FocusWeak)
	applyIntConfig(cmd, "weak-top", &drillWeakTop, fileCfg.Drill.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &drillWeakFactor, fileCfg.Drill.WeakFactor)
	applyBoolConfig(cmd, "plain", &drillPlain, fileCfg.Drill.Plain)
	applyBoolConfig(cmd, "review", &drillReview, fileCfg.Drill.Review)
	applyStringConfig(cmd, "log-file", &drillLogFile, fileCfg.Log.File)
	applyBoolConfig(cmd, "debug", &drillDebug, fileCfg.Log.Debug)

	cfg := model.Config{
		TablePath:  drillTable,
		Variant:    drillVariant,
		Seed:       drillSeed,
		CountStart: drillCountStart,
		FocusWeak:  drillFocusWeak,
		WeakTop:    drillWeakTop,
		WeakFactor: drillWeakFactor,
		Plain:      drillPlain,
		Review:     drillReview,
		LogFile:    drillLogFile,
		Debug:      drillDebug,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}
	variant, err := strand.ParseVariant(cfg.Variant)
	if err != nil {
		return fmt.Errorf("invalid --variant: %w", err)
	}

	interactive := !cfg.Plain && isTerminal(os.Stdin) && isTerminal(os.Stdout)
	logPath := cfg.LogFile
	if logPath == "" && cfg.Debug && interactive {
		logPath = config.DefaultLogPath()
	}
	log, err := logger.New(logger.Options{Debug: cfg.Debug, File: logPath})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		// Best-effort flush; stderr syncs fail on some terminals.
		_ = log.Sync()
	}()

	table, err := loadTable(cfg.TablePath)
	if err != nil {
		return err
	}

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	sessionID, err := st.CreateSession(ctx, model.SessionInfo{
		StartedAt:  time.Now(),
		Variant:    variant.String(),
		TablePath:  cfg.TablePath,
		CountStart: cfg.CountStart,
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	session, err := quiz.NewSession(table, newGenerator(cfg.Seed), quiz.Options{
		Variant:    variant,
		CountStart: cfg.CountStart,
		FocusWeak:  cfg.FocusWeak,
		WeakTop:    cfg.WeakTop,
		WeakFactor: cfg.WeakFactor,
		SessionID:  sessionID,
		Journal:    st,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to start drill: %w", err)
	}
	log.Info("session started",
		zap.String("session_id", sessionID),
		zap.String("variant", variant.String()),
		zap.String("table", cfg.TablePath),
		zap.Bool("interactive", interactive),
	)

	var drillErr error
	if interactive {
		drill := tui.NewModel(ctx, session)
		program := tea.NewProgram(drill, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		drillErr = drill.Err()
	} else {
		drillErr = tui.RunPlain(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	if drillErr != nil {
		log.Error("drill stopped", zap.String("session_id", sessionID), zap.Error(drillErr))
	}

	report, err := stats.BuildReport(ctx, st, sessionID)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	log.Info("session finished",
		zap.String("session_id", sessionID),
		zap.Int("rounds", report.Summary.Rounds),
		zap.Int("correct", report.Summary.Correct),
		zap.Int64("total_ms", report.Summary.TotalMs),
	)

	if cfg.Review && interactive && drillErr == nil && report.Summary.Rounds > 0 {
		program := tea.NewProgram(reviewui.NewModel(report), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run review TUI: %w", err)
		}
	}

	if err := printReport(cmd.OutOrStdout(), session.WrongReport(), report, terminalWidth()); err != nil {
		return err
	}
	return drillErr
}

func printReport(w io.Writer, wrong []model.SymbolCount, report stats.Report, width int) error {
	if err := stats.RenderWrongReport(w, wrong); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := stats.RenderSummary(w, report, width-len("Time trend: ")); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Validate and print a codon table",
		Args:  cobra.NoArgs,
		RunE:  runTableCmd,
	}
	cmd.Flags().StringVar(&tableTable, "table", defaultTable, "codon table: standard, a name under the tables dir, or a .json/.toml path")
	return cmd
}

func runTableCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "table", &tableTable, fileCfg.Drill.Table)

	table, err := loadTable(tableTable)
	if err != nil {
		return err
	}
	return renderCodonTable(cmd.OutOrStdout(), table)
}

func renderCodonTable(w io.Writer, table *codon.Table) error {
	rows := make([][]string, 0, 21)
	for _, aa := range table.AminoAcids() {
		codons := table.CodonsFor(aa)
		labels := make([]string, len(codons))
		for i, c := range codons {
			switch {
			case table.IsStart(c):
				labels[i] = c + "(start)"
			case table.IsStop(c):
				labels[i] = c + "(stop)"
			default:
				labels[i] = c
			}
		}
		rows = append(rows, []string{aa, fmt.Sprintf("%d", len(codons)), strings.Join(labels, " ")})
	}
	if err := stats.RenderTable(w, []string{"Residue", "Codons", "Members"}, rows, map[int]bool{1: true}); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if _, err := fmt.Fprintf(w, "\nStart: %s\nStop: %s\n", strings.Join(table.Start(), ", "), strings.Join(table.Stop(), ", ")); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func newPresentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "present",
		Short: "Generate one round and print it in every strand variant",
		Args:  cobra.NoArgs,
		RunE:  runPresentCmd,
	}
	cmd.Flags().StringVar(&presentTable, "table", defaultTable, "codon table: standard, a name under the tables dir, or a .json/.toml path")
	cmd.Flags().Int64Var(&presentSeed, "seed", 0, "random seed (0 draws a fresh one)")
	cmd.Flags().BoolVar(&presentCountStart, "count-start", true, "include the start codon's residue in the answer")
	return cmd
}

func runPresentCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "table", &presentTable, fileCfg.Drill.Table)
	applyBoolConfig(cmd, "count-start", &presentCountStart, fileCfg.Drill.CountStart)

	table, err := loadTable(presentTable)
	if err != nil {
		return err
	}
	gen := newGenerator(presentSeed)
	round, err := gen.Generate(table, gen.AskLength(), gen.Padding(), gen.Padding(), presentCountStart)
	if err != nil {
		return fmt.Errorf("failed to generate round: %w", err)
	}
	return renderPresentation(cmd.OutOrStdout(), round)
}

func renderPresentation(w io.Writer, round generator.Round) error {
	rows := make([][]string, 0, len(strand.Variants()))
	for _, v := range strand.Variants() {
		display, err := strand.Present(round.Sequence, v)
		if err != nil {
			return fmt.Errorf("failed to present %s: %w", v, err)
		}
		rows = append(rows, []string{v.String(), display})
	}
	if err := stats.RenderTable(w, []string{"Variant", "Display"}, rows, nil); err != nil {
		return fmt.Errorf("failed to write variants: %w", err)
	}
	if _, err := fmt.Fprintf(w, "\nAnswer: %s\nCodons: %d  head: %d  tail: %d\n", round.Answer, round.AskLength, round.HeadLength, round.TailLength); err != nil {
		return fmt.Errorf("failed to write answer: %w", err)
	}
	return nil
}

func loadTable(name string) (*codon.Table, error) {
	path := config.ResolveTablePath(name)
	table, err := codon.Load(path)
	if err != nil {
		if path == "" {
			return nil, fmt.Errorf("failed to load codon table: %w", err)
		}
		return nil, fmt.Errorf("failed to load codon table %s: %w", path, err)
	}
	return table, nil
}

func newGenerator(seed int64) *generator.Generator {
	if seed == 0 {
		return generator.New()
	}
	return generator.NewWithSeed(seed)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuicodon configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# table = %q          # standard, a name under %s, or a .json/.toml path
# variant = %q        # rna|dna, template|nontemplate, optional -reverse
# seed = 0                  # 0 draws a fresh seed every run
# count-start = true        # Include the start codon's residue in the answer
# focus-weak = false        # Bias rounds toward residues missed this session
# weak-top = %d             # Number of weak residues to focus on
# weak-factor = %.1f        # Extra weight for codons of weak residues
# plain = false             # Line mode instead of the full-screen UI
# review = false            # Open the review screen after exit

[log]
# file = ""                 # JSON diagnostics file
# debug = false             # Enable debug diagnostics
`,
		defaultTable,
		config.DefaultTableDir(),
		defaultVariant,
		defaultWeakTop,
		defaultWeakFactor,
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.TablePath) == "" {
		return fmt.Errorf("--table must not be empty")
	}
	if _, err := strand.ParseVariant(cfg.Variant); err != nil {
		return fmt.Errorf("--variant: %w", err)
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
