package esb

import (
	"flag"
	"fmt"
	"os"

	"github.com/mgenware/esb/io2"
)

type CLIArgs struct {
	WorkspaceDir string
	// Metadata output file; "" writes to stdout.
	MetaOut string
	// Overrides the $PROFILE environment variable.
	Profile string
	Verbose bool
}

func ParseCLIArgs() *CLIArgs {
	workspacePtr := flag.String("workspace", ".", "Workspace root directory.")
	metaPtr := flag.String("meta", "", "Write propagated build metadata to this file instead of stdout.")
	profilePtr := flag.String("profile", "", "Build profile. Supported profiles: release, debug. Overrides $PROFILE.")
	verbosePtr := flag.Bool("verbose", false, "Verbose logging.")

	flag.Parse()

	// Validate profile if specified.
	if *profilePtr != "" {
		if !SupportedProfiles[ProfileEnum(*profilePtr)] {
			fmt.Printf("Unsupported profile: %v\n", *profilePtr)
			os.Exit(1)
		}
	}
	workspaceDir := io2.ResolvePath(*workspacePtr)
	if !io2.DirectoryExists(workspaceDir) {
		fmt.Printf("Workspace directory does not exist: %v\n", workspaceDir)
		os.Exit(1)
	}

	return &CLIArgs{
		WorkspaceDir: workspaceDir,
		MetaOut:      *metaPtr,
		Profile:      *profilePtr,
		Verbose:      *verbosePtr,
	}
}
