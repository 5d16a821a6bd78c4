package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mogaika/dreamfast/config"
	"github.com/mogaika/dreamfast/extract"
	"github.com/mogaika/dreamfast/pipeline"
	"github.com/mogaika/dreamfast/planner"
	"github.com/mogaika/dreamfast/sketch"
	"github.com/mogaika/dreamfast/sketchfile"
	"github.com/mogaika/dreamfast/utils"
	"github.com/mogaika/dreamfast/web"
)

type session struct {
	cfg       config.Config
	extractor extract.Extractor
	names     utils.RandomNameGenerator
	serving   bool
}

func main() {
	var addr, prompt, sketchesDir, presetsDir, envFile string
	var reality float64
	var maxParts int
	var mock, verbose bool
	flag.StringVar(&addr, "i", "", "Address of viewer server, e.g. :8000 (empty = no server)")
	flag.StringVar(&prompt, "prompt", "", "Compile one prompt and exit instead of starting the REPL")
	flag.StringVar(&sketchesDir, "sketches", "", "Sketches output directory override")
	flag.StringVar(&presetsDir, "presets", "", "Extra part preset directory override")
	flag.StringVar(&envFile, "env", ".env", "Path to KEY=VALUE env file")
	flag.Float64Var(&reality, "reality", -1, "Reality factor 0..100 (-1 = from environment)")
	flag.IntVar(&maxParts, "maxparts", 0, "Hard part cap override (0 = derive from reality factor)")
	flag.BoolVar(&mock, "mock", false, "Use the offline mock extractor instead of the LLM")
	flag.BoolVar(&verbose, "verbose", false, "Dump planned assemblies")
	flag.Parse()

	if err := config.LoadDotEnv(envFile); err != nil {
		log.Printf("[main] Cannot load env file %q: %v", envFile, err)
	}

	cfg := config.FromEnv()
	if reality >= 0 {
		cfg.RealityFactor = reality
	}
	if maxParts > 0 {
		cfg.MaxPartsOverride = maxParts
	}
	if sketchesDir != "" {
		cfg.SketchesDir = sketchesDir
	}
	if presetsDir != "" {
		cfg.PresetsDir = presetsDir
	}
	cfg.Verbose = verbose
	cfg.Mock = mock || cfg.APIKey == ""

	if err := planner.LoadPresetsDir(cfg.PresetsDir); err != nil {
		log.Printf("[main] Cannot load presets from %q: %v", cfg.PresetsDir, err)
	}

	s := &session{cfg: cfg, extractor: newExtractor(cfg)}

	if addr != "" {
		s.serving = true
		go func() {
			if err := web.StartServer(addr, cfg.SketchesDir, "web"); err != nil {
				log.Fatal(err)
			}
		}()
	}

	if prompt != "" {
		if err := s.compilePrompt(context.Background(), prompt); err != nil {
			log.Fatal(err)
		}
		return
	}

	s.repl()
}

func newExtractor(cfg config.Config) extract.Extractor {
	if cfg.Mock {
		log.Printf("[main] Using mock extractor (no API key or -mock)")
		return &extract.Mock{}
	}

	o := extract.NewOpenAI(cfg.APIKey)
	if cfg.Model != "" {
		o.Model = cfg.Model
	}
	o.Verbose = cfg.Verbose

	prompts, err := config.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		log.Printf("[main] %v", err)
	}
	budget := previewBudget(cfg)
	text, selected, warning := prompts.Select(cfg.PromptVariant, int(cfg.RealityFactor), budget.MaxParts)
	if warning != "" {
		log.Printf("[main] %s", warning)
	}
	if text != "" {
		log.Printf("[main] Using kitbash prompt variant %q", selected)
		o.KitbashPrompt = text
	}
	return o
}

// previewBudget resolves the budget for prompt formatting; allocation errors
// fall back to defaults here and surface properly at compile time.
func previewBudget(cfg config.Config) sketch.Budget {
	b, err := sketch.Allocate(cfg.RealityFactor, cfg.MaxPartsOverride)
	if err != nil {
		b, _ = sketch.Allocate(config.DefaultRealityFactor, 0)
	}
	return b
}

func (s *session) repl() {
	fmt.Println("dreamfast: describe a scene, get kitbash sketches")
	fmt.Println("commands: reality [0..100], verbose [on|off], help, exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("prompt> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "exit", "quit":
			return
		case "help":
			fmt.Println("reality [0..100]  - show or set reality factor")
			fmt.Println("verbose [on|off]  - show or toggle assembly dumps")
			fmt.Println("exit              - quit")
			fmt.Println("anything else is compiled as a scene prompt")
		case "reality":
			s.cmdReality(fields[1:])
		case "verbose":
			s.cmdVerbose(fields[1:])
		default:
			if err := s.compilePrompt(context.Background(), line); err != nil {
				log.Printf("[main] %v", err)
			}
		}
	}
}

func (s *session) cmdReality(args []string) {
	if len(args) == 0 {
		fmt.Printf("reality factor: %v\n", s.cfg.RealityFactor)
		return
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || v < 0 || v > 100 {
		fmt.Println("reality factor must be a number in 0..100")
		return
	}
	s.cfg.RealityFactor = v
	fmt.Printf("reality factor: %v\n", v)
}

func (s *session) cmdVerbose(args []string) {
	if len(args) != 0 {
		s.cfg.Verbose = strings.EqualFold(args[0], "on")
	}
	fmt.Printf("verbose: %v\n", s.cfg.Verbose)
}

func (s *session) compilePrompt(ctx context.Context, prompt string) error {
	budget, err := sketch.Allocate(s.cfg.RealityFactor, s.cfg.MaxPartsOverride)
	if err != nil {
		return err
	}

	objects, err := s.extractor.ExtractObjects(ctx, prompt)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		log.Printf("[main] No objects found in prompt")
		return nil
	}

	descs := make([]planner.ObjectDescription, 0, len(objects))
	for _, obj := range objects {
		if strings.TrimSpace(obj.Name) == "" {
			obj.Name = s.names.RandomName()
		}
		desc := planner.ObjectDescription{
			Name:     obj.Name,
			Category: obj.Category,
			Color:    obj.Color,
		}
		parts, err := s.extractor.SynthesizeParts(ctx, obj, int(s.cfg.RealityFactor), budget.MaxParts)
		if err != nil {
			log.Printf("[main] Part synthesis failed for %q, using presets: %v", obj.Name, err)
		} else {
			desc.Parts = parts
		}
		descs = append(descs, desc)
	}

	for _, res := range pipeline.CompileAll(descs, budget) {
		if res.Err != nil {
			log.Printf("[main] %q: %v", res.Desc.Name, res.Err)
			continue
		}
		if s.cfg.Verbose {
			utils.Dump(res.Flat)
		}
		path, err := sketchfile.Save(s.cfg.SketchesDir, res.Flat)
		if err != nil {
			log.Printf("[main] %q: %v", res.Desc.Name, err)
			continue
		}
		log.Printf("[main] %q: %d parts, truncation %v -> %v",
			res.Flat.Name, len(res.Flat.Parts), res.Flat.Budget.Truncation, path)
		if s.serving {
			web.NotifySketch(filepath.Base(path))
		}
	}
	return nil
}
