package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomithril/sentenceembed"
	"github.com/gomithril/sentenceembed/config"
	applog "github.com/gomithril/sentenceembed/internal/log"
	"github.com/gomithril/sentenceembed/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := "embed"
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	flags := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn or error")
	showVersion := flags.Bool("version", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <sentence>\n", prog)
		flags.PrintDefaults()
	}

	flags.SetInterspersed(false)

	var sentence string
	if len(args) == 1 && !isFlag(flags, args[0]) {
		sentence = args[0]
	} else {
		if err := flags.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return 0
			}
			fmt.Fprintln(stderr, err)
			flags.Usage()
			return 1
		}
		if *showVersion {
			fmt.Fprintln(stdout, sentenceembed.Version)
			return 0
		}
		if flags.NArg() != 1 {
			flags.Usage()
			return 1
		}
		sentence = flags.Arg(0)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error loading .env file: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	applog.Init(stderr, cfg.Log.Level)

	embedder, err := sentenceembed.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to load model")
		return 1
	}
	defer embedder.Close()

	vec, err := embedder.Embed(sentence)
	if err != nil {
		log.Error().Err(err).Msg("failed to embed sentence")
		return 1
	}

	st := report.Summary(vec)
	log.Debug().Int("dims", st.Dims).Float64("norm", st.Norm).Msg("embedding")

	if err := report.Print(stdout, sentence, vec, cfg.Report.Dims); err != nil {
		log.Error().Err(err).Msg("failed to write output")
		return 1
	}
	return 0
}

// isFlag reports whether arg names a defined flag, help, or the "--"
// terminator. A lone argument that is none of these is the sentence, even
// when it starts with a dash.
func isFlag(flags *pflag.FlagSet, arg string) bool {
	if arg == "--" {
		return true
	}
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	long := strings.HasPrefix(arg, "--")
	name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	if name == "help" || (!long && name == "h") {
		return true
	}
	if long {
		return flags.Lookup(name) != nil
	}
	return len(name) == 1 && flags.ShorthandLookup(name) != nil
}
