// floratool is a CLI utility for inspecting generated plants.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/image/bmp"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/flora/internal/app"
	"github.com/Faultbox/flora/internal/config"
	"github.com/Faultbox/flora/internal/engine/mesh"
	"github.com/Faultbox/flora/internal/logger"
	"github.com/Faultbox/flora/internal/plant"
	"github.com/Faultbox/flora/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "dump":
		err = cmdDump(args, os.Stdout)
	case "gradient":
		err = cmdGradient(args)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "stats":
		err = cmdStats(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`floratool - procedural plant inspection utility

Usage:
  floratool <command> [options]

Commands:
  dump      Print the generated structure as YAML
  gradient  Write a petal gradient texture as PNG or BMP
  config    Print the effective configuration, or save it
  stats     Show organ, draw item and triangle counts

Examples:
  floratool dump -seed 42 -time 3
  floratool gradient -from "#ff69b4" -to "#ffffff" -o petal.png
  floratool config -save ~/.config/flora/config.yaml
  floratool stats -seed 42 -stem-height 6`)
}

// grow loads the configuration for fs's flags, generates the plant and
// advances it by elapsed seconds in one frame.
func grow(name string, args []string) (*app.App, *config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := config.BindFlags(fs)
	elapsed := fs.Float64("time", 10, "Seconds of growth to simulate")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := logger.InitWithOptions(logger.Options{Level: cfg.Logging.Level, Console: os.Stderr}); err != nil {
		return nil, nil, err
	}
	opts, err := cfg.PlantOptions()
	if err != nil {
		return nil, nil, err
	}
	opts.Logger = logger.Named("plant")

	a := app.New(cfg.Plant, opts, logger.Named("app"))
	a.Frame(*elapsed, *elapsed)
	return a, cfg, nil
}

func cmdDump(args []string, w io.Writer) error {
	a, _, err := grow("dump", args)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a.Plant().Structure()); err != nil {
		return fmt.Errorf("encoding structure: %w", err)
	}
	return enc.Close()
}

func cmdGradient(args []string) error {
	fs := flag.NewFlagSet("gradient", flag.ContinueOnError)
	def := plant.DefaultConfig()
	from := fs.String("from", def.PetalGradientStart, "Base color")
	to := fs.String("to", def.PetalGradientEnd, "Tip color")
	size := fs.Int("size", plant.GradientSize, "Texture size in pixels")
	out := fs.String("o", "gradient.png", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	base, err := plant.ParseColor(*from)
	if err != nil {
		return fmt.Errorf("base color %q: %w", *from, err)
	}
	tip, err := plant.ParseColor(*to)
	if err != nil {
		return fmt.Errorf("tip color %q: %w", *to, err)
	}
	if *size < 1 {
		return fmt.Errorf("size must be positive, got %d", *size)
	}

	img := plant.BuildGradient(base, tip, *size, *size)
	if err := writeImage(*out, img); err != nil {
		return err
	}
	fmt.Printf("Wrote %dx%d gradient to %s\n", *size, *size, *out)
	return nil
}

// writeImage encodes img by the extension of path: .bmp or PNG otherwise.
func writeImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	encode := png.Encode
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		encode = bmp.Encode
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func cmdConfig(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	flags := config.BindFlags(fs)
	save := fs.String("save", "", "Write the configuration to this path instead of printing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if *save != "" {
		if err := cfg.SaveTo(*save); err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved config to %s\n", *save)
		return nil
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func cmdStats(args []string, w io.Writer) error {
	a, _, err := grow("stats", args)
	if err != nil {
		return err
	}
	p := a.Plant()
	items := p.Graph().DrawList()

	meshes := mesh.NewCache()
	kinds := make(map[scene.Kind]int)
	triangles := 0
	for i := range items {
		kinds[items[i].Kind]++
		triangles += meshes.Get(items[i].Primitive).Triangles()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Plant:\t%s\n", p.Config().ID)
	fmt.Fprintf(tw, "Growth:\t%.2f\n", p.Growth())
	fmt.Fprintf(tw, "Branches:\t%d\n", len(p.Branches()))
	fmt.Fprintf(tw, "Leaves:\t%d\n", len(p.Leaves()))
	fmt.Fprintf(tw, "Flowers:\t%d\n", len(p.Flowers()))
	fmt.Fprintf(tw, "Nodes:\t%d\n", p.Graph().Len())
	fmt.Fprintf(tw, "Draw items:\t%d\n", len(items))
	fmt.Fprintf(tw, "Unique meshes:\t%d\n", meshes.Len())
	fmt.Fprintf(tw, "Triangles:\t%d\n", triangles)

	sorted := make([]scene.Kind, 0, len(kinds))
	for k := range kinds {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, k := range sorted {
		fmt.Fprintf(tw, "  %s:\t%d\n", k, kinds[k])
	}
	return tw.Flush()
}
