package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/spf13/cobra"

	"github.com/chazu/twisty/pkg/assemble"
	"github.com/chazu/twisty/pkg/cubelet"
	"github.com/chazu/twisty/pkg/hull"
	"github.com/chazu/twisty/pkg/kernel/sdfx"
	"github.com/chazu/twisty/pkg/mjcf"
)

// errCheckFailed is returned when a document fails any check.
var errCheckFailed = errors.New("check failed")

func newCheckCmd(a *app) *cobra.Command {
	var textures bool
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a document's structure, mass and size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := mjcf.Unmarshal(data)
			if err != nil {
				return err
			}
			r := checkDocument(doc)
			if textures {
				r.checkTextureFiles(doc, filepath.Dir(args[0]))
			}
			r.print(cmd.OutOrStdout())
			a.log.Info("checked document", "path", args[0], "errors", r.failures, "warnings", r.warnings)
			if r.failures > 0 {
				return fmt.Errorf("%s: %w with %d error(s)", args[0], errCheckFailed, r.failures)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&textures, "textures", false, "also require every texture file to exist")
	return cmd
}

// checkReport collects the outcome of the document checks.
type checkReport struct {
	lines    []string
	failures int
	warnings int
}

func (r *checkReport) fail(format string, args ...any) {
	r.failures++
	r.lines = append(r.lines, "FAIL "+fmt.Sprintf(format, args...))
}

func (r *checkReport) warn(format string, args ...any) {
	r.warnings++
	r.lines = append(r.lines, "WARN "+fmt.Sprintf(format, args...))
}

func (r *checkReport) ok(format string, args ...any) {
	r.lines = append(r.lines, "ok   "+fmt.Sprintf(format, args...))
}

func (r *checkReport) print(w io.Writer) {
	for _, l := range r.lines {
		fmt.Fprintln(w, l)
	}
}

func checkDocument(doc *mjcf.Document) *checkReport {
	r := &checkReport{}

	for _, f := range mjcf.Validate(doc) {
		if f.Severity == mjcf.SeverityWarning {
			r.warn("%s", f.Error())
		} else {
			r.fail("%s", f.Error())
		}
	}
	if r.failures == 0 {
		r.ok("structure: %d bodies", len(mjcf.Bodies(doc)))
	}

	total, err := doc.TotalMass()
	switch {
	case err != nil:
		r.fail("mass: %v", err)
	case math.Round(total*1e6) != math.Round(assemble.TotalMass*1e6):
		r.fail("mass: total %.6f, want %.6f", total, assemble.TotalMass)
	default:
		r.ok("mass: %.6f kg", total)
	}

	var centers []v3.Vec
	for _, p := range mjcf.Placements(doc) {
		if p.Class == cubelet.CubeletClass {
			centers = append(centers, p.World)
		}
	}
	lo, hi, err := hull.Envelope(sdfx.New(), centers, hull.Extent)
	if err != nil {
		r.fail("envelope: %v", err)
		return r
	}
	want := 3 * hull.Extent
	before := r.failures
	for i, axis := range []string{"x", "y", "z"} {
		size := hi[i] - lo[i]
		if math.Abs(size-want) > 1e-9 {
			r.fail("envelope: %s extent %.6f, want %.6f", axis, size, want)
		}
	}
	if r.failures == before {
		r.ok("envelope: %d cubelets within %.3f m", len(centers), want)
	}
	return r
}

// checkTextureFiles requires a file on disk for every file texture.
func (r *checkReport) checkTextureFiles(doc *mjcf.Document, base string) {
	if doc.Asset == nil || doc.Compiler == nil {
		return
	}
	dir := filepath.Join(base, doc.Compiler.TextureDir)
	missing := 0
	for _, t := range doc.Asset.Textures() {
		if t.File.IsZero() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, t.File.String())); err != nil {
			missing++
			r.fail("texture %s: %v", t.File, err)
		}
	}
	if missing == 0 {
		r.ok("textures: all files present in %s", dir)
	}
}
