package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-arraytransformer/pkg/collection"
	"github.com/askiada/go-arraytransformer/pkg/pipeline"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/drawer"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/logging"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/measure"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

func main() {
	os.Exit(runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type config struct {
	definition string
	input      string
	dot        string
	logLevel   string
	measure    bool
	indent     bool
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("arraytransform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := config{}
	fs.StringVar(&cfg.definition, "definition", "", "path to the YAML pipeline definition")
	fs.StringVar(&cfg.input, "input", "-", "path to the JSON input, - for stdin")
	fs.StringVar(&cfg.dot, "dot", "", "write the pipeline graph in DOT format to this file")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	fs.BoolVar(&cfg.measure, "measure", false, "print the duration of every step to stderr")
	fs.BoolVar(&cfg.indent, "indent", false, "indent the JSON output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: arraytransform -definition <pipeline.yaml> [-input <input.json>]\n\n")
		fmt.Fprintln(stderr, "Applies a pipeline of array transformations to a JSON array or object.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if cfg.definition == "" {
		fmt.Fprintln(stderr, "error: -definition is required")
		fs.Usage()
		return 2
	}

	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: invalid -log-level %q\n", cfg.logLevel)
		return 2
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Str("run", uuid.NewString()).Logger()

	err = run(cfg, logger, stdin, stdout, stderr)
	if err != nil {
		logger.Error().Err(err).Msg("arraytransform failed")
		return 1
	}
	return 0
}

func run(cfg config, logger zerolog.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	msr := measure.NewDefaultMeasure()
	opts := []model.PipelineOption{logging.PipelineLogger(logger)}
	if cfg.measure || cfg.dot != "" {
		opts = append(opts, measure.PipelineMeasure(msr))
	}
	if cfg.dot != "" {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(cfg.dot), msr))
	}

	defFile, err := os.Open(cfg.definition)
	if err != nil {
		return errors.Wrap(err, "unable to open definition")
	}
	defer defFile.Close()

	pipe, err := pipeline.LoadDefinition(defFile, opts...)
	if err != nil {
		return err
	}

	in := stdin
	if cfg.input != "-" {
		inFile, err := os.Open(cfg.input)
		if err != nil {
			return errors.Wrap(err, "unable to open input")
		}
		defer inFile.Close()
		in = inFile
	}
	input, err := collection.DecodeJSON(in)
	if err != nil {
		return errors.Wrap(err, "unable to read input")
	}

	output, err := pipe.Apply(input)
	if err != nil {
		return err
	}

	err = pipe.Finish()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if cfg.indent {
		enc.SetIndent("", "  ")
	}
	err = enc.Encode(output)
	if err != nil {
		return errors.Wrap(err, "unable to write output")
	}

	if cfg.measure {
		printMeasure(stderr, msr)
	}
	return nil
}

func printMeasure(wrt io.Writer, msr measure.Measure) {
	all := msr.AllMetrics()
	names := make([]string, 0, len(all))
	for name, mt := range all {
		if name == model.StartStep.Name || name == model.EndStep.Name || mt.Runs() == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return stepIndex(names[i]) < stepIndex(names[j]) })
	for _, name := range names {
		inputLen, outputLen := all[name].Sizes()
		fmt.Fprintf(wrt, "%-24s %10s %6d -> %d\n", name, all[name].AVGDuration(), inputLen, outputLen)
	}
	if end := all[model.EndStep.Name]; end != nil {
		fmt.Fprintf(wrt, "%-24s %10s\n", "total", end.GetTotalDuration())
	}
}

// stepIndex extracts the position from a step name such as "12. slice".
func stepIndex(name string) int {
	prefix, _, _ := strings.Cut(name, ".")
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return -1
	}
	return n
}
