// Command formkit renders, validates and interactively fills form schemas,
// and serves them over HTTP.
//
//	formkit render   [-schema file] [-renderer table|json] [-hidden id=value] [-output file]
//	formkit validate [-schema file] key=value...
//	formkit fill     [-schema file] [-format json|form|pretty] [-hidden id=value] [-attempts n]
//	formkit serve    [-config file] [-addr host:port] [-schema file] [-watch]
//
// Without -schema the built-in product form is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/internal/demo"
	"github.com/goliatone/go-formkit/internal/server"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/schemafile"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// errInvalid reports a submission that failed validation; the report has
// already been written.
var errInvalid = errors.New("submission is invalid")

// promptDriver replaces the survey driver in tests.
var promptDriver tui.PromptDriver

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintf(os.Stderr, "formkit: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}

	switch args[0] {
	case "render":
		return runRender(args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "fill":
		return runFill(ctx, args[1:], stdout, stderr)
	case "serve":
		return runServe(ctx, args[1:], stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: formkit <render|validate|fill|serve> [flags]")
}

type commonFlags struct {
	schema   string
	logLevel string
}

func newFlagSet(name string, stderr io.Writer, common *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&common.schema, "schema", "", "schema file (built-in product form if empty)")
	fs.StringVar(&common.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return fs
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger(), nil
}

func loadSchema(path string) (*model.Schema, error) {
	if strings.TrimSpace(path) == "" {
		return demo.Product(), nil
	}
	return schemafile.LoadFile(path)
}

func runRender(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	hidden := keyValues{}
	fs := newFlagSet("render", stderr, &common)
	rendererName := fs.String("renderer", "table", "renderer name: table or json")
	output := fs.String("output", "", "output file (stdout if empty)")
	allowMarkup := fs.Bool("allow-markup", false, "do not sanitise values")
	fs.Var(hidden, "hidden", "hidden field value as id=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	schema, err := loadSchema(common.schema)
	if err != nil {
		return err
	}
	if common.schema == "" && len(hidden) == 0 {
		hidden["id"] = demo.NewID
	}

	var opts []render.Option
	if !*allowMarkup {
		opts = append(opts, render.StrictValues())
	}
	registry := render.NewDefaultRegistry(render.FormOptions{HiddenValues: hidden}, opts...)
	renderer, err := registry.Get(*rendererName)
	if err != nil {
		return err
	}
	out, err := renderer.Render(context.Background(), schema, nil)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(stderr, "Form written to %s\n", *output)
		return nil
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func runValidate(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := newFlagSet("validate", stderr, &common)
	if err := fs.Parse(args); err != nil {
		return err
	}

	schema, err := loadSchema(common.schema)
	if err != nil {
		return err
	}
	raw := keyValues{}
	for _, arg := range fs.Args() {
		if err := raw.Set(arg); err != nil {
			return err
		}
	}

	result := validation.Validate(raw, schema)
	payload, err := json.MarshalIndent(result.Report(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if _, err := fmt.Fprintln(stdout, string(payload)); err != nil {
		return err
	}
	if !result.IsValid() {
		return errInvalid
	}
	return nil
}

func runFill(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	hidden := keyValues{}
	fs := newFlagSet("fill", stderr, &common)
	formatName := fs.String("format", "json", "output format: json, form or pretty")
	attempts := fs.Int("attempts", 3, "validation rounds before giving up")
	fs.Var(hidden, "hidden", "hidden field value as id=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, ok := tui.ParseOutputFormat(*formatName)
	if !ok {
		return fmt.Errorf("unknown output format %q", *formatName)
	}
	schema, err := loadSchema(common.schema)
	if err != nil {
		return err
	}
	if common.schema == "" && len(hidden) == 0 {
		hidden["id"] = demo.NewID
	}

	opts := []tui.Option{tui.WithHiddenValues(hidden), tui.WithMaxAttempts(*attempts)}
	if promptDriver != nil {
		opts = append(opts, tui.WithPromptDriver(promptDriver))
	} else {
		opts = append(opts, tui.WithPromptDriver(tui.NewSurveyDriver(stderr)))
	}

	sub, err := tui.New(opts...).Collect(ctx, schema)
	if sub == nil {
		return err
	}
	payload, encErr := sub.Encode(format)
	if encErr != nil {
		return encErr
	}
	if _, werr := fmt.Fprintln(stdout, string(payload)); werr != nil {
		return werr
	}
	if errors.Is(err, tui.ErrInvalidSubmission) {
		fmt.Fprintln(stderr, err)
		return errInvalid
	}
	return err
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	var common commonFlags
	fs := newFlagSet("serve", stderr, &common)
	configPath := fs.String("config", "", "server configuration file")
	addr := fs.String("addr", "", "listen address (overrides config)")
	watch := fs.Bool("watch", false, "reload the schema file when it changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	if *configPath != "" {
		loaded, err := server.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if common.schema != "" {
		cfg.SchemaPath = common.schema
		if *configPath == "" {
			cfg.HiddenValues = nil
		}
	}
	if *watch {
		cfg.WatchSchema = true
	}

	level := common.logLevel
	if *configPath != "" && !flagPassed(fs, "log-level") {
		level = cfg.LogLevel
	}
	logger, err := newLogger(stderr, level)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, server.Deps{Logger: logger})
	if err != nil {
		return err
	}
	defer srv.Close()
	return srv.ListenAndServe(ctx)
}

func flagPassed(fs *flag.FlagSet, name string) bool {
	passed := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

// keyValues collects repeated key=value arguments.
type keyValues map[string]string

func (kv keyValues) String() string {
	keys := make([]string, 0, len(kv))
	for key := range kv {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+kv[key])
	}
	return strings.Join(pairs, ",")
}

func (kv keyValues) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	kv[key] = value
	return nil
}
