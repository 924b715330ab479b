package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/golang/geo/r2"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/armkin/internal/config"
	"github.com/san-kum/armkin/internal/export"
	"github.com/san-kum/armkin/internal/kinematics"
	"github.com/san-kum/armkin/internal/logging"
	"github.com/san-kum/armkin/internal/storage"
	"github.com/san-kum/armkin/internal/sweep"
	"github.com/san-kum/armkin/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	// Arm overrides
	lengths []float64
	angles  []float64
	degrees bool
	dimFlag string
	// Output
	format  string
	outPath string
	width   int
	height  int
	// Style overrides
	linkColor  string
	jointColor string
	markerSize float64
	linkWidth  float64
	showGrid   bool
	title      string
	// Sweep
	joint   int
	from    float64
	to      float64
	steps   int
	svgPath string

	log = logging.Nop()
)

// main registers the armkin commands and runs the viewer when no
// subcommand is given. Exits 1 if the command returns an error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "armkin",
		Short:        "forward kinematics for serial-link arms",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New("armkin", verbose)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
		RunE: viewArm,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".armkin", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset arm")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64SliceVar(&lengths, "lengths", nil, "link lengths, comma separated")
	pf.Float64SliceVar(&angles, "angles", nil, "relative joint angles, comma separated")
	pf.BoolVar(&degrees, "deg", false, "angles are in degrees")
	pf.StringVar(&dimFlag, "dim", "", "output dimension (2d or 3d)")
	addStyleFlags(rootCmd)

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "print joint positions",
		Args:  cobra.NoArgs,
		RunE:  solveArm,
	}
	solveCmd.Flags().StringVar(&format, "format", "table", "output format (table, json, csv)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "draw the arm to an svg or png file",
		Args:  cobra.NoArgs,
		RunE:  renderArm,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "arm.svg", "output file (.svg or .png)")
	renderCmd.Flags().IntVar(&width, "width", 600, "image width")
	renderCmd.Flags().IntVar(&height, "height", 400, "image height")
	addStyleFlags(renderCmd)

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive viewer with joint sliders",
		Args:  cobra.NoArgs,
		RunE:  viewArm,
	}
	addStyleFlags(viewCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one joint and record the tip path",
		Args:  cobra.NoArgs,
		RunE:  sweepArm,
	}
	sweepCmd.Flags().IntVar(&joint, "joint", 0, "joint index to sweep")
	sweepCmd.Flags().Float64Var(&from, "from", -90, "start angle (degrees)")
	sweepCmd.Flags().Float64Var(&to, "to", 90, "end angle (degrees)")
	sweepCmd.Flags().IntVar(&steps, "steps", 181, "number of poses")
	sweepCmd.Flags().StringVar(&svgPath, "svg", "", "also write the tip path as svg")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list sweep runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available arm presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLINKS\tLENGTHS\tANGLES\tDIM")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%v\t%v %s\t%dd\n", name, len(p.Lengths), p.Lengths, p.Angles, p.Units, p.Dimension)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(solveCmd, renderCmd, viewCmd, sweepCmd, listCmd, plotCmd, presetsCmd)
	return rootCmd
}

func addStyleFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&linkColor, "link-color", "", "link color (name or #rrggbb)")
	f.StringVar(&jointColor, "joint-color", "", "joint color (name or #rrggbb)")
	f.Float64Var(&markerSize, "marker-size", 0, "joint marker size")
	f.Float64Var(&linkWidth, "link-width", 0, "link line width")
	f.BoolVar(&showGrid, "grid", true, "draw grid")
	f.StringVar(&title, "title", "", "figure title")
}

// resolveArm applies defaults, then the preset, then the config file, then
// any flags the user set explicitly.
func resolveArm(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("lengths") {
		cfg.Lengths = lengths
	}
	if flags.Changed("angles") {
		cfg.Angles = angles
	}
	// Angles given on the command line are radians unless --deg is set.
	if flags.Changed("angles") || flags.Changed("deg") {
		if degrees {
			cfg.Units = config.UnitsDegrees
		} else {
			cfg.Units = config.UnitsRadians
		}
	}
	if flags.Changed("dim") {
		d, err := kinematics.ParseDimension(dimFlag)
		if err != nil {
			return nil, err
		}
		cfg.Dimension = int(d)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if idx := cfg.NonPositiveLinks(); len(idx) > 0 {
		log.Warnw("non-positive link lengths", "links", idx)
	}
	return cfg, nil
}

func resolveStyle(cmd *cobra.Command, cfg *config.Config) (viz.Style, error) {
	style := viz.StyleFromConfig(cfg.Style)
	flags := cmd.Flags()
	if flags.Changed("link-color") {
		style = style.WithLinkColor(linkColor)
	}
	if flags.Changed("joint-color") {
		style = style.WithJointColor(jointColor)
	}
	if flags.Changed("marker-size") {
		style = style.WithMarkerSize(markerSize)
	}
	if flags.Changed("link-width") {
		style = style.WithLinkWidth(linkWidth)
	}
	if flags.Changed("grid") {
		style = style.WithGrid(showGrid)
	}
	if flags.Changed("title") {
		style = style.WithTitle(title)
	}
	return style, style.Validate()
}

func solveConfig(cfg *config.Config) (kinematics.Positions, error) {
	rad, err := cfg.Radians()
	if err != nil {
		return kinematics.Positions{}, err
	}
	dim, err := cfg.Dim()
	if err != nil {
		return kinematics.Positions{}, err
	}
	pos, err := kinematics.Solve(cfg.Lengths, rad, dim)
	if err != nil {
		return kinematics.Positions{}, err
	}
	log.Debugw("solved chain", "arm", cfg.Name, "links", len(cfg.Lengths), "dim", dim.String())
	return pos, nil
}

type solveOutput struct {
	Dimension int         `json:"dimension"`
	Lengths   []float64   `json:"lengths"`
	Angles    []float64   `json:"angles"`
	Points    [][]float64 `json:"points"`
	Reach     float64     `json:"reach"`
}

func solveArm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveArm(cmd)
	if err != nil {
		return err
	}
	pos, err := solveConfig(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		rad, _ := cfg.Radians()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{
			Dimension: int(pos.Dim),
			Lengths:   cfg.Lengths,
			Angles:    rad,
			Points:    pos.Coords(),
			Reach:     pos.Reach(),
		})
	case "csv":
		w := csv.NewWriter(out)
		header := []string{"joint", "x", "y"}
		if pos.Dim == kinematics.Spatial {
			header = append(header, "z")
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for i, c := range pos.Coords() {
			row := []string{strconv.Itoa(i)}
			for _, v := range c {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	case "table":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		if pos.Dim == kinematics.Spatial {
			fmt.Fprintln(w, "JOINT\tX\tY\tZ")
		} else {
			fmt.Fprintln(w, "JOINT\tX\tY")
		}
		for i, c := range pos.Coords() {
			cells := make([]string, len(c))
			for j, v := range c {
				cells[j] = fmt.Sprintf("%.6f", v)
			}
			fmt.Fprintf(w, "%d\t%s\n", i, strings.Join(cells, "\t"))
		}
		fmt.Fprintf(w, "reach\t%.6f\n", pos.Reach())
		return w.Flush()
	default:
		return fmt.Errorf("unknown format: %s (available: table, json, csv)", format)
	}
}

func renderArm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveArm(cmd)
	if err != nil {
		return err
	}
	style, err := resolveStyle(cmd, cfg)
	if err != nil {
		return err
	}
	pos, err := solveConfig(cfg)
	if err != nil {
		return err
	}

	if width <= 0 || height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".png":
		err = export.WritePNG(&buf, pos, style, width, height)
	default:
		_, err = buf.WriteString(export.ArmToSVG(pos, style, width, height))
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return err
	}

	log.Infow("rendered arm", "path", outPath, "links", len(cfg.Lengths))
	return nil
}

func viewArm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveArm(cmd)
	if err != nil {
		return err
	}
	style, err := resolveStyle(cmd, cfg)
	if err != nil {
		return err
	}
	rad, err := cfg.Radians()
	if err != nil {
		return err
	}
	dim, err := cfg.Dim()
	if err != nil {
		return err
	}
	return viz.Run(viz.NewApp(cfg.Lengths, rad, dim, style))
}

func sweepArm(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := resolveArm(cmd)
	if err != nil {
		return err
	}
	rad, err := cfg.Radians()
	if err != nil {
		return err
	}
	dim, err := cfg.Dim()
	if err != nil {
		return err
	}

	lo, hi := from*math.Pi/180, to*math.Pi/180

	sc := sweep.Config{
		Lengths: cfg.Lengths,
		Angles:  rad,
		Joint:   joint,
		From:    lo,
		To:      hi,
		Steps:   steps,
		Dim:     dim,
	}

	start := time.Now()
	result, err := sweep.Run(context.Background(), sc)
	if err != nil {
		return err
	}
	log.Debugw("sweep finished", "poses", len(result.Poses), "elapsed", time.Since(start))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, sc, result)
	if err != nil {
		return err
	}

	xs, ys := result.Tips()
	fmt.Fprintln(out, asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption(fmt.Sprintf("tip x (red), tip y (green) over joint %d", joint)),
	))

	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	fmt.Fprintf(out, "poses: %d\n", len(result.Poses))
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range []string{"max_reach", "min_reach", "tip_path_length"} {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}

	if svgPath != "" {
		pts := make([]r2.Point, len(xs))
		for i := range xs {
			pts[i] = r2.Point{X: xs[i], Y: ys[i]}
		}
		style := viz.StyleFromConfig(cfg.Style)
		if err := os.WriteFile(svgPath, []byte(export.TipPathToSVG(pts, 600, 600, style.Link().Hex())), 0644); err != nil {
			return err
		}
		log.Infow("wrote tip path", "path", svgPath)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARM\tTIME\tLINKS\tJOINT\tSTEPS\tMAX REACH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.4f\n",
			run.ID,
			run.Arm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Lengths),
			run.Joint,
			run.Steps,
			run.Metrics["max_reach"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	out := cmd.OutOrStdout()

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	values, poses, err := st.LoadPoses(runID)
	if err != nil {
		return err
	}
	if len(poses) == 0 {
		return fmt.Errorf("no data to plot")
	}
	log.Debugw("loaded run", "id", runID, "poses", len(poses), "joint", meta.Joint)

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "arm: %s\n", meta.Arm)
	fmt.Fprintf(out, "joint %d: %.3f .. %.3f rad\n", meta.Joint, values[0], values[len(values)-1])
	fmt.Fprintf(out, "samples: %d\n\n", len(poses))

	series := map[string][]float64{
		"tip x": make([]float64, len(poses)),
		"tip y": make([]float64, len(poses)),
		"reach": make([]float64, len(poses)),
	}
	for i, p := range poses {
		tip := p.Tip()
		series["tip x"][i] = tip.X
		series["tip y"][i] = tip.Y
		series["reach"][i] = p.Reach()
	}

	for _, caption := range []string{"tip x", "tip y", "reach"} {
		graph := asciigraph.Plot(series[caption],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}
