package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chazu/twisty/pkg/assemble"
	"github.com/chazu/twisty/pkg/canon"
	"github.com/chazu/twisty/pkg/mjcf"
	"github.com/chazu/twisty/pkg/texture"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		stdout   bool
		textures bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the cube model and write its canonical document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := assemble.Build(a.opts.Assemble())
			if err != nil {
				return err
			}
			a.log.Info("generated document",
				"bodies", len(mjcf.Bodies(res.Document)),
				"resources", res.Catalog.Len(),
				"motors", len(res.Document.Actuator))

			co := a.opts.Canon()
			if stdout {
				data, err := canon.Render(res.Document, co)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := canon.WriteFile(a.opts.Output, res.Document, co); err != nil {
				return err
			}
			a.log.Info("wrote document", "path", a.opts.Output)

			if textures {
				dir := filepath.Join(filepath.Dir(a.opts.Output), a.opts.AssetsDir)
				paths, err := texture.WriteAll(cmd.Context(), dir, res.Catalog, a.opts.TextureResolution)
				if err != nil {
					return err
				}
				a.log.Info("wrote textures", "dir", dir, "count", len(paths))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the document instead of writing --output")
	cmd.Flags().BoolVar(&textures, "textures", false, "also render the sticker textures")
	cmd.MarkFlagsMutuallyExclusive("stdout", "textures")
	return cmd
}
