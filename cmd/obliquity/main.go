package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/obliquity/internal/config"
	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/viz"
)

var (
	configFile string
	presetName string
	dateFlag   string
	verbose    bool
	logFile    string

	obliquity  float64
	numDays    int
	currentDay int
	themeName  string
	dataDir    string
	frameRate  int

	// sweep
	sweepFrom    float64
	sweepTo      float64
	sweepSteps   int
	sweepWorkers int

	// animate
	periods float64

	// output
	outFile    string
	withTable  bool
	sceneSVG   bool
	svgScale   float64
	gifScale   int
	plotHeight int
)

// main registers the commands and runs the interactive lab when no
// subcommand is given. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "obliquity",
		Short:         "axial tilt and the solar noon discrepancy",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&presetName, "preset", "", "planet preset (see the presets command)")
	pf.StringVar(&dateFlag, "date", "", "use Earth's mean obliquity on this date (YYYY-MM-DD)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64Var(&obliquity, "obliquity", config.DefaultObliquity, "axial tilt in degrees")
	pf.IntVar(&numDays, "days", config.DefaultNumDays, "days per year")
	pf.IntVar(&currentDay, "day", 0, "current day")
	pf.StringVar(&themeName, "theme", config.DefaultTheme, "colour theme")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "directory for saved runs")
	rootCmd.Flags().StringVar(&logFile, "log-file", "obliquity.log", "debug log file for the interactive lab")

	dayCmd := &cobra.Command{
		Use:   "day [day]",
		Short: "print the discrepancy for one day",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printDay,
	}

	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "plot the discrepancy over one year",
		RunE:  printSeries,
	}
	seriesCmd.Flags().BoolVar(&withTable, "table", false, "print every day as a table")
	seriesCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "peak discrepancy across a range of obliquities",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first obliquity")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 90, "last obliquity")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 19, "number of obliquities")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "animate the orbit as plain text",
		RunE:  runAnimate,
	}
	animateCmd.Flags().Float64Var(&periods, "periods", 1, "orbits to play")
	animateCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (0 = config)")

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "compute the series and store it as a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saveRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run, or the current settings, to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run, or the current settings, to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the series chart, or the scene, to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().BoolVar(&sceneSVG, "scene", false, "draw the 3D scene instead of the chart")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 4, "pixels per braille dot")

	exportGIFCmd := &cobra.Command{
		Use:   "export-gif [run_id]",
		Short: "record one orbit of the scene as an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportGIF,
	}
	exportGIFCmd.Flags().IntVar(&gifScale, "scale", 2, "pixels per braille dot")

	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd, exportSVGCmd, exportGIFCmd} {
		c.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout, orbit.gif for GIFs)")
	}

	rootCmd.AddCommand(dayCmd, seriesCmd, presetsCmd, sweepCmd, animateCmd,
		saveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, exportGIFCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the environment, the preset,
// the date and finally explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}

	if presetName != "" {
		p, ok := config.GetPreset(presetName)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
		p.Apply(cfg)
	}
	if dateFlag != "" {
		t, err := time.Parse(time.DateOnly, dateFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --date: %w", err)
		}
		cfg.Obliquity = config.EarthObliquity(t)
	}

	flags := cmd.Flags()
	if flags.Changed("obliquity") {
		cfg.Obliquity = obliquity
	}
	if flags.Changed("days") {
		cfg.NumDays = numDays
	}
	if flags.Changed("day") {
		cfg.CurrentDay = currentDay
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("fps") && frameRate > 0 {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !viz.HasTheme(cfg.Theme) {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}
	return cfg, nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newCache(cfg *config.Config) (*discrepancy.Cache, error) {
	return discrepancy.NewCache(cfg.CacheSize)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cache, err := newCache(cfg)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logOut := io.Discard
	if verbose {
		f, err := tea.LogToFile(logFile, "obliquity")
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	log := newLogger(logOut)

	app, err := viz.NewApp(viz.Settings{
		Obliquity:     min(cfg.Obliquity, viz.MaxObliquity),
		DayCount:      cfg.NumDays,
		CurrentDay:    cfg.CurrentDay,
		Period:        cfg.OrbitPeriod,
		LineThreshold: cfg.LineThreshold,
		LineTarget:    cfg.LineTarget,
		Theme:         cfg.Theme,
		FPS:           cfg.FPS,
		Cache:         cache,
		Logger:        log,
	})
	if err != nil {
		return err
	}
	log.Debug("starting lab", "obliquity", cfg.Obliquity, "days", cfg.NumDays)

	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	app.Driver().Stop()
	app.Controller().Close()
	return err
}
