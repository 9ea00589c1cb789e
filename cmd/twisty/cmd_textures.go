package main

import (
	"github.com/spf13/cobra"

	"github.com/chazu/twisty/pkg/assemble"
	"github.com/chazu/twisty/pkg/texture"
)

func newTexturesCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "textures",
		Short: "Render one sticker texture per declared color combination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := assemble.Build(a.opts.Assemble())
			if err != nil {
				return err
			}
			if dir == "" {
				dir = a.opts.AssetsDir
			}
			paths, err := texture.WriteAll(cmd.Context(), dir, res.Catalog, a.opts.TextureResolution)
			if err != nil {
				return err
			}
			a.log.Info("wrote textures", "dir", dir, "count", len(paths), "resolution", a.opts.TextureResolution)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default --assets)")
	return cmd
}
