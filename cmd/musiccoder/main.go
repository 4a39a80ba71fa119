package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"

	musiccoder "github.com/cbegin/musiccoder-go"
	"github.com/cbegin/musiccoder-go/internal/executor"
)

var (
	dim    = color.New(color.Faint).SprintfFunc()
	cyan   = color.New(color.FgCyan).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
)

func main() {
	var (
		path     = flag.String("file", "", "path to a MusicCoder source file")
		inline   = flag.String("src", "", "inline MusicCoder source")
		tapeSize = flag.Int("tape-size", musiccoder.DefaultTapeSize, "initial tape length")
		debug    = flag.Bool("debug", false, "print every step as it executes")
		step     = flag.Bool("step", false, "like -debug, but pause for a keypress between steps")
	)
	flag.Parse()
	if *path == "" && flag.NArg() > 0 {
		*path = flag.Arg(0)
	}

	source, err := resolveSource(*path, *inline)
	if err != nil {
		log.Fatal(err)
	}

	prog, err := musiccoder.Compile(source)
	if err != nil {
		log.Fatal(diagnose(err))
	}

	opts := []musiccoder.Option{musiccoder.WithTapeSize(*tapeSize)}
	switch {
	case *step:
		opts = append(opts, musiccoder.WithTracer(executor.TracerFunc(stepTracer)))
	case *debug:
		opts = append(opts, musiccoder.WithTracer(executor.TracerFunc(debugTracer)))
	}

	in := musiccoder.New(opts...)
	if _, err := in.Run(prog); err != nil {
		log.Fatal(diagnose(err))
	}
}

func resolveSource(path, inline string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("a source path (positional or -file) or -src is required")
}

// diagnose renders a musiccoder.RuntimeError with its kind and token
// index; any other error (a staccato write failure) is returned unchanged.
func diagnose(err error) error {
	var rerr *musiccoder.RuntimeError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%s at token %d", rerr.Kind, rerr.TokenIndex)
	}
	return err
}

func debugTracer(s executor.Snapshot) {
	fmt.Fprintln(os.Stderr, cyan("pc=%-4d %-10s ptr=%-3d cell=%-3d prev=%-3d", s.PC, s.Kind, s.Ptr, s.Cell, s.PrevVal))
}

// stepTracer prints the same line as debugTracer, then blocks on a
// keypress before letting the executor advance. Ctrl-C or Escape exits
// the process immediately, matching the reference player's interactive
// debug convention.
func stepTracer(s executor.Snapshot) {
	fmt.Fprintln(os.Stderr, yellow("pc=%-4d %-10s ptr=%-3d cell=%-3d prev=%-3d", s.PC, s.Kind, s.Ptr, s.Cell, s.PrevVal))
	fmt.Fprint(os.Stderr, dim("  (press any key to continue, Ctrl-C to quit)\n"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		keyboard.Listen(func(key keys.Key) (stop bool, err error) {
			if key.Code == keys.CtrlC || key.Code == keys.Escape {
				os.Exit(0)
			}
			return true, nil
		})
	}()
	<-done
}
