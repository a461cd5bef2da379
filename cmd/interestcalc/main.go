// Command interestcalc computes interest for a period, or a running
// sequence of periods, read as JSON and prints the result as JSON.
//
//	interestcalc -input period.json
//	interestcalc -running -events -input - < mortgage.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/warp/interest-engine/factory"
	"github.com/warp/interest-engine/interest"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("interestcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "request JSON path (\"-\" for stdin)")
	running := fs.Bool("running", false, "input is a running sequence of periods")
	events := fs.Bool("events", false, "include accrual events in the output")
	verbose := fs.Bool("v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := strings.TrimSpace(*input)
	if path == "" {
		fmt.Fprintf(stderr, "usage: interestcalc -input <path|-> [-running] [-events]\n")
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	raw, err := readInput(path, stdin)
	if err != nil {
		log.WithError(err).Error("read input")
		return 1
	}
	log.WithFields(logrus.Fields{"path": path, "bytes": len(raw), "running": *running}).Debug("input loaded")

	out, err := calculate(string(raw), *running, *events)
	if err != nil {
		log.WithError(err).Error("calculate")
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.WithError(err).Error("write output")
		return 1
	}
	return 0
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func calculate(raw string, running, withEvents bool) (any, error) {
	f := factory.NewPeriodFactory()

	if running {
		periods, opts, err := f.ParseRunning(raw)
		if err != nil {
			return nil, err
		}
		res, err := interest.Running(periods, opts)
		if err != nil {
			return nil, err
		}
		return factory.RunningResultToJSON(res, withEvents), nil
	}

	p, err := f.ParsePeriod(raw)
	if err != nil {
		return nil, err
	}
	res, err := interest.Compute(p)
	if err != nil {
		return nil, err
	}
	return factory.ResultToJSON(res, withEvents), nil
}
