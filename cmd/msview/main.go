// Command msview loads a microseismic event catalog and wellbore surveys
// and writes the combined 3D scene as HTML and/or PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/banshee-data/msview/internal/catalog"
	"github.com/banshee-data/msview/internal/config"
	"github.com/banshee-data/msview/internal/render"
	"github.com/banshee-data/msview/internal/scene"
	"github.com/banshee-data/msview/internal/version"
	"github.com/banshee-data/msview/internal/viewer"
)

// wellFlags collects repeated -well path[:header|fixed] values.
type wellFlags []config.WellSource

func (w *wellFlags) String() string {
	parts := make([]string, len(*w))
	for i, s := range *w {
		parts[i] = s.Path
	}
	return strings.Join(parts, ",")
}

func (w *wellFlags) Set(v string) error {
	src, err := parseWellFlag(v)
	if err != nil {
		return err
	}
	*w = append(*w, src)
	return nil
}

// parseWellFlag splits "path[:format]". A suffix that is not a known format
// is kept as part of the path.
func parseWellFlag(v string) (config.WellSource, error) {
	if v == "" {
		return config.WellSource{}, fmt.Errorf("empty well path")
	}
	if i := strings.LastIndex(v, ":"); i > 0 {
		if _, err := catalog.ParseSurveyFormat(v[i+1:]); err == nil && v[i+1:] != "" {
			return config.WellSource{Path: v[:i], Format: v[i+1:]}, nil
		}
	}
	return config.WellSource{Path: v}, nil
}

var (
	configPath  = flag.String("config", "", "Path to a view config file (.json, .yaml)")
	catalogPath = flag.String("catalog", "", "Event catalog CSV (overrides catalog_path)")
	htmlOut     = flag.String("html", "", "Write the interactive 3D scene to this HTML file")
	pngOut      = flag.String("png", "", "Write a plan-view PNG to this file")
	showVersion = flag.Bool("version", false, "Print version and exit")
	wells       wellFlags
)

func main() {
	flag.Var(&wells, "well", "Well survey path[:header|fixed] (repeatable, overrides wells)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.DefaultViewConfig()
	if *configPath != "" {
		loaded, err := config.LoadViewConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *catalogPath != "" {
		cfg.SetCatalogPath(*catalogPath)
	}
	if len(wells) > 0 {
		cfg.Wells = wells
	}

	v, err := viewer.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create viewer: %v", err)
	}
	if err := v.LoadConfigured(); err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}

	if *htmlOut == "" && *pngOut == "" {
		s, err := v.Scene()
		if err != nil {
			log.Fatalf("Failed to build scene: %v", err)
		}
		log.Printf("scene %q: %d drawables, %d skipped (no -html or -png given)", s.Title, len(s.Drawables), len(s.Diagnostics))
		return
	}

	units := cfg.GetDisplayUnits()
	if *htmlOut != "" {
		if err := writeScene(v, *htmlOut, func(f *os.File) scene.Renderer {
			return &render.ECharts{W: f, Units: units}
		}); err != nil {
			log.Fatalf("Failed to write HTML: %v", err)
		}
	}
	if *pngOut != "" {
		if err := writeScene(v, *pngOut, func(f *os.File) scene.Renderer {
			return &render.PlotPNG{W: f, Units: units}
		}); err != nil {
			log.Fatalf("Failed to write PNG: %v", err)
		}
	}
}

func writeScene(v *viewer.Viewer, path string, newRenderer func(*os.File) scene.Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	s, err := v.Show(newRenderer(f))
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s: %d drawables, %d skipped", path, len(s.Drawables), len(s.Diagnostics))
	return nil
}
