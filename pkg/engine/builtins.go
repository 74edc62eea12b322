package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/phloem/arbor/pkg/scene"
	"github.com/phloem/arbor/pkg/tree"
)

// registerBuiltins installs the growth builtins into a zygomys
// environment, bound to the shared evaluation state.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	env.AddFunction("seed", seedBuiltin(st))
	env.AddFunction("attract", pointBuiltin(&st.attract))
	env.AddFunction("repel", pointBuiltin(&st.repel))
	env.AddFunction("tree", treeBuiltin(st))
	env.AddFunction("show_points", showPointsBuiltin(st))
}

// seedBuiltin reseeds the evaluation's random source: (seed 42).
func seedBuiltin(st *evalState) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("seed expects 1 argument, got %d", len(args))
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("seed: %w", err)
		}
		st.reseed(int64(n))
		return zygo.SexpNull, nil
	}
}

// pointBuiltin appends an environment point: (attract 0 0 100).
func pointBuiltin(dst *[]scene.Vec3) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("%s expects 3 coordinates, got %d", name, len(args))
		}
		var coords [3]float64
		for i, a := range args {
			v, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			coords[i] = v
		}
		*dst = append(*dst, scene.Vec3{X: coords[0], Y: coords[1], Z: coords[2]})
		return zygo.SexpNull, nil
	}
}

// treeBuiltin grows a tree into the evaluation's scene graph. All
// parameters are keyword arguments with the same defaults as
// tree.DefaultParams; the accumulated attract/repel points are used.
func treeBuiltin(st *evalState) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ka := parseArgs(args)
		if len(ka.positional) != 0 {
			return zygo.SexpNull, fmt.Errorf("tree takes keyword arguments only")
		}

		p := tree.DefaultParams()
		p.Attract = st.attract
		p.Repel = st.repel

		for kw, val := range ka.kw {
			var err error
			switch kw {
			case "depth":
				p.Depth, err = toInt(val)
			case "r":
				p.R, err = toFloat64(val)
			case "cur-x":
				p.CurX, err = toFloat64(val)
			case "cur-y":
				p.CurY, err = toFloat64(val)
			case "branches":
				p.NBranches, err = toInt(val)
			case "length":
				p.BranchLen, err = toFloat64(val)
			case "diameter":
				p.BranchD, err = toFloat64(val)
			case "ang":
				p.Ang, err = toFloat64(val)
			case "ang-dec":
				p.AngDec, err = toFloat64(val)
			case "ang-rand-var":
				p.AngRandVar, err = toFloat64(val)
			case "x-offset":
				p.BranchXOffset, err = toFloat64(val)
			case "y-offset":
				p.BranchYOffset, err = toFloat64(val)
			case "fixed-x-offset":
				p.FixedXOffset, err = toBool(val)
			case "fixed-y-offset":
				p.FixedYOffset, err = toBool(val)
			case "max-branch-variation":
				p.MaxBranchVariation, err = toInt(val)
			case "d-factor":
				p.DFactor, err = toFloat64(val)
			case "len-factor":
				p.LenFactor, err = toFloat64(val)
			case "palette":
				p.PaletteIndex, err = toInt(val)
			case "bound":
				p.SpatialBound, err = toFloat64(val)
			case "segments":
				p.Segments, err = toInt(val)
			default:
				return zygo.SexpNull, fmt.Errorf("tree: unknown keyword :%s", kw)
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tree :%s: %w", kw, err)
			}
		}

		if id, ok := tree.GrowInto(st.graph, p, st.rng); ok {
			st.graph.AddRoot(id)
		}
		return zygo.SexpNull, nil
	}
}

// showPointsBuiltin emits markers for the accumulated environment
// points: (show-points :size 2).
func showPointsBuiltin(st *evalState) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ka := parseArgs(args)
		size := 2.0
		if val, ok := ka.kw["size"]; ok {
			v, err := toFloat64(val)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("show-points :size: %w", err)
			}
			size = v
		}
		tree.ShowPoints(st.graph, st.attract, st.repel, size)
		return zygo.SexpNull, nil
	}
}

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms arbor Lisp source before handing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding the need to register keyword symbols as globals.
//
//  2. Kebab-case to underscore: show-points -> show_points. zygomys
//     treats a hyphen in an identifier as subtraction.
//
//  3. ; line comments become // comments, the zygomys form.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Copy backtick-quoted string literals untouched.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters, so a
		// minus operator survives.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during
// preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}
