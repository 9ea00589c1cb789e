package main

import (
	"fmt"
	"os"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/spf13/cobra"

	"github.com/chazu/twisty/pkg/cubelet"
	"github.com/chazu/twisty/pkg/hull"
	"github.com/chazu/twisty/pkg/mjcf"
)

func newHullCmd(a *app) *cobra.Command {
	var (
		chamfer bool
		inset   float64
		from    string
	)
	cmd := &cobra.Command{
		Use:   "hull",
		Short: "Print and verify the cubelet hull vertices",
		Long: "Hull prints the 24 cubelet hull vertices, one per line, after " +
			"checking them against the mesh contract: 6 significant digits, " +
			"centered at the origin and 0.019 m along every axis.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				vs  []v3.Vec
				err error
			)
			switch {
			case from != "":
				vs, err = meshFromFile(from)
				if err != nil {
					return err
				}
			case chamfer:
				for _, v := range hull.Chamfered(hull.Extent, inset) {
					vs = append(vs, v3.Vec{
						X: hull.RoundSignificant(v.X, hull.SignificantDigits),
						Y: hull.RoundSignificant(v.Y, hull.SignificantDigits),
						Z: hull.RoundSignificant(v.Z, hull.SignificantDigits),
					})
				}
			default:
				vs = hull.Vertices()
			}

			if err := hull.Validate(vs, hull.Extent); err != nil {
				return err
			}
			f := mjcf.Format{Precision: hull.SignificantDigits, ZeroThreshold: a.opts.ZeroThreshold}
			w := cmd.OutOrStdout()
			for _, v := range vs {
				fmt.Fprintln(w, f.Vec(v))
			}
			a.log.Info("hull verified", "vertices", len(vs), "extent", hull.Extent)
			return nil
		},
	}
	cmd.Flags().BoolVar(&chamfer, "chamfer", false, "generate the hull analytically instead of using the fixed table")
	cmd.Flags().Float64Var(&inset, "inset", hull.Inset, "half-width of a flat face for --chamfer")
	cmd.Flags().StringVar(&from, "from", "", "verify the cubelet mesh of an existing document")
	return cmd
}

// meshFromFile returns the vertices of the cubelet mesh declared in path.
func meshFromFile(path string) ([]v3.Vec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := mjcf.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if doc.Asset == nil {
		return nil, fmt.Errorf("%s: no asset section", path)
	}
	for _, m := range doc.Asset.Meshes() {
		if m.Name != cubelet.MeshName {
			continue
		}
		if len(m.Vertex)%3 != 0 {
			return nil, fmt.Errorf("%s: mesh %q has %d values, not a multiple of 3", path, m.Name, len(m.Vertex))
		}
		vs := make([]v3.Vec, 0, len(m.Vertex)/3)
		for i := 0; i < len(m.Vertex); i += 3 {
			vs = append(vs, v3.Vec{X: m.Vertex[i], Y: m.Vertex[i+1], Z: m.Vertex[i+2]})
		}
		return vs, nil
	}
	return nil, fmt.Errorf("%s: no %q mesh", path, cubelet.MeshName)
}
