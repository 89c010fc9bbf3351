// Command beflux is the reference host for the Beflux interpreter: it
// loads a .bfx program into program 0, runs it to completion, and
// exits with its status.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Dodecaplex/beflux/bank"
	"github.com/Dodecaplex/beflux/debugger"
	"github.com/Dodecaplex/beflux/hostcfg"
	"github.com/Dodecaplex/beflux/interp"
)

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

func main() {
	os.Exit(run())
}

func run() int {
	debug := flag.Bool("debug", false, "launch the interactive single-step debugger instead of running to completion")
	sessionPath := flag.String("session", "", "path to a YAML session file (timeout, wrap offset, stdio bindings)")
	flag.Parse()

	if flag.NArg() < 1 && *sessionPath == "" {
		fmt.Fprintln(os.Stderr, ":: BEFLUX ::\nUsage: beflux [-debug] [-session file.yaml] [program-without-extension]")
		return 1
	}

	p := interp.New()
	provider := bank.FileProvider{}
	p.Provider = provider

	programName := ""
	if flag.NArg() >= 1 {
		programName = flag.Arg(0)
	}

	if *sessionPath != "" {
		sess, err := hostcfg.Load(*sessionPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "beflux: cannot load session: %v\n", err)
			return 0xFF
		}
		if sess.TimeoutSeconds > 0 {
			p.Timeout = secondsToDuration(sess.TimeoutSeconds)
		}
		p.IP.WrapOffset = sess.WrapOffset
		if sess.Program != "" {
			programName = sess.Program
		}
		if sess.InputFile != "" && sess.InputFile != "-" {
			if err := p.Streams.BindInputFile(sess.InputFile); err != nil {
				fmt.Fprintf(os.Stderr, "beflux: cannot bind input: %v\n", err)
				return 0xFF
			}
		}
		if sess.OutputFile != "" && sess.OutputFile != "-" {
			if err := p.Streams.BindOutputFile(sess.OutputFile); err != nil {
				fmt.Fprintf(os.Stderr, "beflux: cannot bind output: %v\n", err)
				return 0xFF
			}
		}
	}

	if programName == "" {
		fmt.Fprintln(os.Stderr, "beflux: no program given")
		return 1
	}
	if err := p.Load(0, programName); err != nil {
		fmt.Fprintf(os.Stderr, "beflux: cannot load %s.bfx: %v\n", programName, err)
		return 0xFF
	}

	if *debug {
		if err := debugger.Run(p); err != nil {
			fmt.Fprintf(os.Stderr, "beflux: %v\n", err)
			return 0xFF
		}
		return int(p.Status)
	}

	status, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "beflux: %v\n", err)
		return 0xFF
	}
	p.Free()
	return int(status)
}
