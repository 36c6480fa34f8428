// Package main provides a small driver for go-scene frame trees.
//
// Usage:
//
//	scenectl layout [-w width] [-h height] [-v]   Lay out the demo scene
//	scenectl hit [-w width] [-h height] x y       Touch test a point
//	scenectl help                                 Show help
//
// Examples:
//
//	scenectl layout -w 120 -h 40   Print frame rects for a 120x40 window
//	scenectl hit 10 2              Print the targets hit at (10, 2)
package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/go-scene/internal/debug"
)

const version = "0.1.0"

const usage = `scenectl - drive go-scene frame trees from the command line

Usage:
  scenectl <command> [options] [args...]

Commands:
  layout      Measure and lay out the demo scene, print every frame rect
  hit         Touch test a point against the demo scene
  version     Print version information
  help        Show this help message

Options:
  -w N        Window width (default 80)
  -h N        Window height (default 24)
  -v          Verbose output

Environment:
  SCENE_DEBUG=<path>      Write debug logs to path
  SCENE_LAYOUT_DETECT=1   Panic when a child proxy is reset while in use

Examples:
  scenectl layout                 Lay out an 80x24 window
  scenectl layout -w 120 -h 40    Lay out a larger window
  scenectl hit 10 2               Print the targets hit at (10, 2)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	if err := debug.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer debug.Close()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "layout":
		if err := runLayout(os.Stdout, args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "hit":
		if err := runHit(os.Stdout, args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("scenectl version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
