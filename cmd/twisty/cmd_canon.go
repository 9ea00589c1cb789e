package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/twisty/pkg/canon"
	"github.com/chazu/twisty/pkg/mjcf"
)

func newCanonCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "canon FILE",
		Short: "Canonicalize an existing MJCF document",
		Long: "Canonicalize reads a raw cube document, strips generated names, " +
			"restores canonical texture file names, removes the synthetic default " +
			"class and orders the assets. Canonical input is returned unchanged.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := mjcf.Unmarshal(data)
			if err != nil {
				return err
			}

			co := a.opts.Canon()
			if !cmd.Flags().Changed("assets") && doc.Compiler != nil && doc.Compiler.TextureDir != "" {
				co.AssetsDir = doc.Compiler.TextureDir
			}
			a.log.Debug("texture directory", "dir", co.AssetsDir)

			switch {
			case write:
				target := args[0]
				if cmd.Flags().Changed("output") {
					target = a.opts.Output
				}
				if err := canon.WriteFile(target, doc, co); err != nil {
					return err
				}
				a.log.Info("canonicalized", "in", args[0], "out", target)
				return nil
			default:
				out, err := canon.Render(doc, co)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result to FILE (or --output) instead of stdout")
	return cmd
}
