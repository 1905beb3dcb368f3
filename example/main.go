package main

import (
	"fmt"
	"os"

	"github.com/mgenware/esb"
	"github.com/mgenware/esb/io2"
)

// Resolves binding-generation inputs for the ESP HomeKit SDK and prints
// the propagated metadata. Expects $PROFILE, $TARGET and $OUT_DIR from the
// enclosing build, e.g.:
//
//	PROFILE=debug TARGET=xtensa-esp32-espidf OUT_DIR=./target go run ./example
func main() {
	cfg, err := esb.LoadConfig(io2.ResolvePath("."), esb.OSEnviron())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	outputs, err := esb.NewPipeline(cfg).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := outputs.WriteMetadata(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
