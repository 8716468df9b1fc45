package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goccy/go-json"

	ts "github.com/reoring/tableschema"
	"github.com/reoring/tableschema/i18n"
	"github.com/reoring/tableschema/internal/config"
	"github.com/reoring/tableschema/internal/logger"
	"github.com/reoring/tableschema/internal/table"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "cast":
		castCmd(os.Args[2:])
	case "jsonschema":
		jsonSchemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "tableschema CLI\n\nUsage:\n  tableschema validate -schema s.json\n  tableschema cast -schema s.json -data d.csv [-workers N] [-missing \",NA\"] [-no-header]\n  tableschema jsonschema -schema s.json\n\nEnvironment:\n  TABLESCHEMA_SCHEMA, TABLESCHEMA_DATA, TABLESCHEMA_MISSING_VALUES,\n  TABLESCHEMA_WORKERS, TABLESCHEMA_LOG_LEVEL, TABLESCHEMA_LANG, TABLESCHEMA_NO_HEADER")
}

// setup loads the configuration and returns a logger for the subcommand.
func setup(name string, args []string) (*config.Config, *logger.Logger) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		fatalf("config: %v", err)
	}
	if cfg.Schema == "" {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(cfg.Lang)
	return cfg, logger.NewConsoleLogger(name, cfg.LogLevel).With("schema", cfg.Schema)
}

func loadSchema(cfg *config.Config) (*ts.Schema, error) {
	var opts []ts.FieldOption
	if cfg.MissingValues != nil {
		opts = append(opts, ts.WithMissingValues(cfg.MissingValues...))
	}
	return ts.LoadSchemaFile(cfg.Schema, opts...)
}

func validateCmd(args []string) {
	cfg, log := setup("validate", args)
	_, err := loadSchema(cfg)
	if err == nil {
		fmt.Println("valid")
		return
	}
	iss, ok := ts.AsIssues(err)
	if !ok {
		fatalf("load schema: %v", err)
	}
	for _, is := range iss {
		fmt.Printf("%s\t%s\t%s\n", is.Path, is.Code, is.Message)
	}
	log.Debug().Int("issues", len(iss)).Msg("schema invalid")
	os.Exit(1)
}

func castCmd(args []string) {
	cfg, log := setup("cast", args)
	if cfg.Data == "" {
		fatalf("cast: -data is required")
	}
	s, err := loadSchema(cfg)
	if err != nil {
		fatalf("load schema: %v", err)
	}

	in, closeIn, err := openData(cfg.Data)
	if err != nil {
		fatalf("open data: %v", err)
	}
	defer closeIn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rn := &table.Runner{Schema: s, Workers: cfg.Workers, Logger: log.With("data", cfg.Data)}
	res, err := rn.Run(ctx, in, !cfg.NoHeader)
	if err != nil {
		fatalf("cast: %v", err)
	}

	out := bufio.NewWriter(os.Stdout)
	enc := json.NewEncoder(out)
	for _, row := range res.Rows {
		if row == nil {
			continue
		}
		if err := enc.Encode(s.RowObject(row)); err != nil {
			fatalf("encode: %v", err)
		}
	}
	if err := out.Flush(); err != nil {
		fatalf("write: %v", err)
	}

	for _, is := range res.Issues {
		log.Warn().Str("path", is.Path).Str("code", is.Code).Msg(is.Message)
	}
	if !res.Valid() {
		stop()
		closeIn()
		os.Exit(1)
	}
}

func jsonSchemaCmd(args []string) {
	cfg, _ := setup("jsonschema", args)
	s, err := loadSchema(cfg)
	if err != nil {
		fatalf("load schema: %v", err)
	}
	js, err := s.JSONSchema()
	if err != nil {
		fatalf("jsonschema: %v", err)
	}
	b, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		fatalf("marshal: %v", err)
	}
	fmt.Println(string(b))
}

func openData(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
