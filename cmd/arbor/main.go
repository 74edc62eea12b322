// Command arbor generates fractal tree geometry. It either evaluates a
// Lisp script (see pkg/engine) or grows a single tree from flags, then
// writes the result as colored meshes (JSON) or a combined solid (STL).
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phloem/arbor/pkg/engine"
	"github.com/phloem/arbor/pkg/kernel"
	"github.com/phloem/arbor/pkg/kernel/sdfx"
	"github.com/phloem/arbor/pkg/scene"
	"github.com/phloem/arbor/pkg/tessellate"
	"github.com/phloem/arbor/pkg/tree"
)

// options collects all CLI flags.
type options struct {
	out     string
	seed    int64
	cells   int
	markers float64 // marker size; 0 disables point visualization

	attract []string
	repel   []string

	params tree.Params
}

func mainCmd() *cobra.Command {
	opts := &options{params: tree.DefaultParams()}

	cmd := &cobra.Command{
		Use:   "arbor [script.arb]",
		Short: "procedurally grow a fractal tree steered by attract/repel points",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "tree.stl", "output file (.stl or .json)")
	f.Int64Var(&opts.seed, "seed", 0, "random seed (0 = time-based)")
	f.IntVar(&opts.cells, "cells", 0, "marching cubes resolution override")
	f.Float64Var(&opts.markers, "show-points", 0, "emit point markers of this size")
	f.StringArrayVar(&opts.attract, "attract", nil, "attract point as x,y,z (repeatable)")
	f.StringArrayVar(&opts.repel, "repel", nil, "repel point as x,y,z (repeatable)")

	p := &opts.params
	f.IntVar(&p.Depth, "depth", p.Depth, "recursion depth")
	f.Float64Var(&p.R, "r", p.R, "base radius passthrough")
	f.Float64Var(&p.CurX, "cur-x", p.CurX, "initial x accumulator")
	f.Float64Var(&p.CurY, "cur-y", p.CurY, "initial y accumulator")
	f.IntVar(&p.NBranches, "branches", p.NBranches, "fan-out count per node")
	f.Float64Var(&p.BranchLen, "length", p.BranchLen, "root branch length")
	f.Float64Var(&p.BranchD, "diameter", p.BranchD, "root branch diameter")
	f.Float64Var(&p.Ang, "ang", p.Ang, "initial branch angle (degrees)")
	f.Float64Var(&p.AngDec, "ang-dec", p.AngDec, "per-branch angle decrement")
	f.Float64Var(&p.AngRandVar, "ang-rand-var", p.AngRandVar, "random angle variance (enables random angle mode)")
	f.Float64Var(&p.BranchXOffset, "x-offset", p.BranchXOffset, "x offset magnitude per branch slot")
	f.Float64Var(&p.BranchYOffset, "y-offset", p.BranchYOffset, "y offset magnitude per branch slot")
	f.BoolVar(&p.FixedXOffset, "fixed-x-offset", p.FixedXOffset, "use the constant x offset instead of a random draw")
	f.BoolVar(&p.FixedYOffset, "fixed-y-offset", p.FixedYOffset, "use the constant y offset instead of a random draw")
	f.IntVar(&p.MaxBranchVariation, "max-branch-variation", p.MaxBranchVariation, "random extra fan-out per node")
	f.Float64Var(&p.DFactor, "d-factor", p.DFactor, "per-level diameter decay")
	f.Float64Var(&p.LenFactor, "len-factor", p.LenFactor, "per-level length decay")
	f.IntVar(&p.PaletteIndex, "palette", p.PaletteIndex, "color palette index")
	f.Float64Var(&p.SpatialBound, "bound", p.SpatialBound, "spatial bound on the planar accumulators")
	f.IntVar(&p.Segments, "segments", p.Segments, "tessellation resolution hint")

	return cmd
}

func run(opts *options, args []string) error {
	var g *scene.Graph
	var err error

	if len(args) == 1 {
		g, err = evalScript(args[0])
	} else {
		g, err = growFromFlags(opts)
	}
	if err != nil {
		return err
	}

	k := sdfx.New()
	if opts.cells > 0 {
		k.MeshCells = opts.cells
	}

	switch {
	case strings.HasSuffix(opts.out, ".json"):
		return writeJSON(g, k, opts.out)
	case strings.HasSuffix(opts.out, ".stl"):
		return writeSTL(g, k, opts.out)
	default:
		return fmt.Errorf("unsupported output format %q (want .stl or .json)", opts.out)
	}
}

// evalScript evaluates a Lisp script into a scene graph.
func evalScript(path string) (*scene.Graph, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	g, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("%s: %s", path, e.Error())
		}
		return nil, fmt.Errorf("%s: %d evaluation error(s)", path, len(evalErrs))
	}
	return g, nil
}

// growFromFlags grows a single tree from the CLI flags.
func growFromFlags(opts *options) (*scene.Graph, error) {
	var err error
	opts.params.Attract, err = parsePoints(opts.attract)
	if err != nil {
		return nil, fmt.Errorf("--attract: %w", err)
	}
	opts.params.Repel, err = parsePoints(opts.repel)
	if err != nil {
		return nil, fmt.Errorf("--repel: %w", err)
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := tree.Grow(opts.params, rng)
	if opts.markers > 0 {
		tree.ShowPoints(g, opts.params.Attract, opts.params.Repel, opts.markers)
	}
	return g, nil
}

// parsePoints parses "x,y,z" flag values.
func parsePoints(raw []string) ([]scene.Vec3, error) {
	var pts []scene.Vec3
	for _, s := range raw {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("point %q: want x,y,z", s)
		}
		var coords [3]float64
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("point %q: %w", s, err)
			}
			coords[i] = v
		}
		pts = append(pts, scene.Vec3{X: coords[0], Y: coords[1], Z: coords[2]})
	}
	return pts, nil
}

// meshFile is the JSON output document.
type meshFile struct {
	Meshes []*kernel.Mesh `json:"meshes"`
}

// writeJSON tessellates the scene into per-part colored meshes.
func writeJSON(g *scene.Graph, k kernel.Kernel, path string) error {
	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		return fmt.Errorf("tessellate: %w", err)
	}
	if len(meshes) == 0 {
		log.Printf("scene is empty; writing no meshes")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(meshFile{Meshes: meshes}); err != nil {
		return fmt.Errorf("encode meshes: %w", err)
	}
	log.Printf("wrote %d meshes to %s", len(meshes), path)
	return nil
}

// writeSTL unions the scene into one solid and writes it as STL.
func writeSTL(g *scene.Graph, k kernel.Kernel, path string) error {
	solid, ok, err := tessellate.Combine(g, k)
	if err != nil {
		return fmt.Errorf("combine: %w", err)
	}
	if !ok {
		return fmt.Errorf("scene is empty; nothing to write")
	}
	if err := k.SaveSTL(solid, path); err != nil {
		return fmt.Errorf("save stl: %w", err)
	}
	log.Printf("wrote %s", path)
	return nil
}

func main() {
	if err := mainCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
