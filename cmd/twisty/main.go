// Command twisty generates the 3x3x3 twisty cube MJCF model, its sticker
// textures and checks existing model files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
