package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/obliquity/internal/animation"
	"github.com/san-kum/obliquity/internal/chart"
	"github.com/san-kum/obliquity/internal/config"
	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/export"
	"github.com/san-kum/obliquity/internal/scene"
	"github.com/san-kum/obliquity/internal/storage"
	"github.com/san-kum/obliquity/internal/sweep"
	"github.com/san-kum/obliquity/internal/tui"
	"github.com/san-kum/obliquity/internal/viz"
)

func printDay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	day := cfg.CurrentDay
	if len(args) == 1 {
		day, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day %q: %w", args[0], err)
		}
	}
	if day < 0 || day >= cfg.NumDays {
		return fmt.Errorf("day %d out of range [0, %d]", day, cfg.NumDays-1)
	}

	r := discrepancy.Compute(cfg.Obliquity, day, cfg.NumDays)
	fmt.Printf("day %d of %d at %.2f° obliquity\n", day, cfg.NumDays, cfg.Obliquity)
	fmt.Printf("  solar noon leads clock noon by %.3f° = %.2f minutes\n", r.AngleDeg, r.Minutes)
	return nil
}

func printSeries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cache, err := newCache(cfg)
	if err != nil {
		return err
	}
	samples := cache.Series(cfg.Obliquity, cfg.NumDays)
	plotSamples(samples, fmt.Sprintf("minutes per day at %.2f°", cfg.Obliquity))

	peak := discrepancy.Peak(samples)
	fmt.Printf("\npeak: %s\n", chart.Tooltip(peak))

	if withTable {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DAY\tLABEL\tANGLE\tMINUTES")
		for i, s := range samples {
			fmt.Fprintf(w, "%d\t%s\t%.4f\t%.3f\n", s.Day, chart.TickLabel(i, len(samples)), s.OrbitalAngle, s.Minutes)
		}
		return w.Flush()
	}
	return nil
}

func plotSamples(samples []discrepancy.Sample, caption string) {
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Minutes
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOBLIQUITY\tDAYS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f°\t%d\t%s\n", name, p.Obliquity, p.NumDays, p.Description)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cache, err := newCache(cfg)
	if err != nil {
		return err
	}
	log := newLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	s := &sweep.Sweep{NumDays: cfg.NumDays, Workers: sweepWorkers, Cache: cache}
	points, err := s.Run(ctx, sweep.Range{From: sweepFrom, To: sweepTo, Steps: sweepSteps})
	if err != nil {
		return err
	}
	log.Debug("sweep finished", "points", len(points), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OBLIQUITY\tPEAK DAY\tPEAK MIN\tMEAN MIN")
	for _, p := range points {
		fmt.Fprintf(w, "%.2f°\t%d\t%.3f\t%.3f\n", p.Obliquity, p.PeakDay, p.PeakMinutes, p.MeanMinutes)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(points) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(sweep.PeakMinutes(points),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("peak minutes, %.1f° to %.1f°", sweepFrom, sweepTo)),
		))
	}
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cache, err := newCache(cfg)
	if err != nil {
		return err
	}
	if periods <= 0 {
		return fmt.Errorf("--periods must be positive, got %g", periods)
	}
	log := newLogger(os.Stderr)

	live := tui.NewLiveRenderer(os.Stdout, cfg.FPS)
	ctrl, err := scene.New(viz.NewRenderer(), chart.NewAdapter(chart.NewASCIIChart(60, 8)),
		scene.WithObliquity(cfg.Obliquity),
		scene.WithDayCount(cfg.NumDays),
		scene.WithCurrentDay(cfg.CurrentDay),
		scene.WithLineThinning(cfg.LineThreshold, cfg.LineTarget),
		scene.WithSeriesCache(cache),
		scene.WithLogger(log),
		scene.OnReadout(live.OnSnapshot),
	)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	frames := animation.NewFrameQueue()
	driver := animation.New(ctrl, frames,
		animation.WithPeriod(cfg.OrbitPeriod),
		animation.WithLogger(log),
	)

	runFor := time.Duration(periods * float64(cfg.OrbitPeriod))
	ctx, cancel := context.WithTimeout(cmd.Context(), runFor)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	live.Start()
	defer live.Stop()
	live.OnSnapshot(ctrl.Snapshot())

	driver.Start()
	err = tui.Play(ctx, frames, cfg.FPS)
	driver.Stop()
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func saveRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := presetName
	if len(args) == 1 {
		name = args[0]
	}
	if name == "" {
		name = fmt.Sprintf("obliquity-%.2f", cfg.Obliquity)
	}

	st := storage.New(cfg.DataDir, newLogger(os.Stderr))
	samples := discrepancy.Series(cfg.Obliquity, cfg.NumDays)
	runID, err := st.Save(name, cfg.Obliquity, samples)
	if err != nil {
		return err
	}
	peak := discrepancy.Peak(samples)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("days: %d\n", len(samples))
	fmt.Printf("peak: %s\n", chart.Tooltip(peak))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir, newLogger(os.Stderr))
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tOBLIQUITY\tDAYS\tPEAK DAY\tPEAK MIN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f°\t%d\t%d\t%.2f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format(time.DateTime),
			run.Obliquity,
			run.NumDays,
			run.PeakDay,
			run.PeakMinutes,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir, newLogger(os.Stderr))
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	plotSamples(samples, fmt.Sprintf("%s: %.2f°, %d days", meta.Name, meta.Obliquity, meta.NumDays))
	fmt.Printf("\npeak: day %d, %.2f minutes; mean %.2f minutes\n", meta.PeakDay, meta.PeakMinutes, meta.MeanMinutes)
	return nil
}

// exportSource returns a stored run's series when a run id is given and the
// configured series otherwise.
func exportSource(cmd *cobra.Command, args []string) (*config.Config, float64, []discrepancy.Sample, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, 0, nil, err
	}
	if len(args) == 0 {
		return cfg, cfg.Obliquity, discrepancy.Series(cfg.Obliquity, cfg.NumDays), nil
	}
	st := storage.New(cfg.DataDir, newLogger(os.Stderr))
	meta, err := st.Load(args[0])
	if err != nil {
		return nil, 0, nil, err
	}
	samples, err := st.LoadSeries(args[0])
	if err != nil {
		return nil, 0, nil, err
	}
	return cfg, meta.Obliquity, samples, nil
}

func withOutput(write func(w io.Writer) error) error {
	if outFile == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, _, samples, err := exportSource(cmd, args)
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error { return export.WriteCSV(w, samples) })
}

func exportJSON(cmd *cobra.Command, args []string) error {
	_, obl, samples, err := exportSource(cmd, args)
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error { return export.WriteJSON(w, obl, samples) })
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, obl, samples, err := exportSource(cmd, args)
	if err != nil {
		return err
	}
	theme := viz.GetTheme(cfg.Theme)

	var svg string
	if sceneSVG {
		svg, err = sceneToSVG(cfg, obl, len(samples), theme)
		if err != nil {
			return err
		}
	} else {
		title := fmt.Sprintf("Solar noon discrepancy at %.2f°", obl)
		svg = export.SeriesSVG(samples, 800, 400, string(theme.Primary), title)
		if svg == "" {
			return fmt.Errorf("series too short to chart: %d samples", len(samples))
		}
	}
	return withOutput(func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

// headlessScene builds a controller over a renderer that is only drawn on
// demand.
func headlessScene(cfg *config.Config, obl float64, days int) (*scene.Controller, *viz.Renderer, error) {
	renderer := viz.NewRenderer()
	ctrl, err := scene.New(renderer, chart.NewAdapter(chart.NewASCIIChart(60, 8)),
		scene.WithObliquity(obl),
		scene.WithDayCount(days),
		scene.WithCurrentDay(cfg.CurrentDay),
		scene.WithLineThinning(cfg.LineThreshold, cfg.LineTarget),
	)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, renderer, nil
}

func sceneToSVG(cfg *config.Config, obl float64, days int, theme viz.Theme) (string, error) {
	ctrl, renderer, err := headlessScene(cfg, obl, days)
	if err != nil {
		return "", err
	}
	defer ctrl.Close()

	canvas := viz.NewCanvas(sceneWidth, sceneHeight)
	renderer.Draw(canvas)
	return export.CanvasToSVG(canvas, svgScale, func(ink uint32) string {
		return string(theme.SceneColor(scene.Color(ink)))
	}), nil
}

const (
	sceneWidth  = 100
	sceneHeight = 40
	maxGIFFrame = 90
)

// exportGIF records one orbit of the scene, one frame per drawn day.
func exportGIF(cmd *cobra.Command, args []string) error {
	cfg, obl, samples, err := exportSource(cmd, args)
	if err != nil {
		return err
	}
	days := len(samples)
	ctrl, renderer, err := headlessScene(cfg, obl, days)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	stride := max(1, (days+maxGIFFrame-1)/maxGIFFrame)
	frames := (days + stride - 1) / stride
	delay := max(2, int(cfg.OrbitPeriod/time.Duration(frames)/(10*time.Millisecond)))

	theme := viz.GetTheme(cfg.Theme)
	rec := viz.NewRecorder(gifScale, delay, theme.InkColor)
	canvas := viz.NewCanvas(sceneWidth, sceneHeight)
	for day := 0; day < days; day += stride {
		ctrl.SetCurrentDay(day)
		renderer.Draw(canvas)
		rec.Capture(canvas)
	}
	newLogger(os.Stderr).Debug("recorded orbit", "frames", rec.Len(), "delay", delay)

	if outFile == "" {
		outFile = "orbit.gif"
	}
	return withOutput(rec.Encode)
}
