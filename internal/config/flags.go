package config

import (
	"flag"
	"strings"
)

// listValue is a comma separated flag.Value.
type listValue struct {
	set  bool
	vals []string
}

func (l *listValue) String() string { return strings.Join(l.vals, ",") }

func (l *listValue) Set(s string) error {
	l.set = true
	l.vals = strings.Split(s, ",")
	return nil
}

// ParseFlags registers the shared flags on fs and parses args.
//
// Flags:
//
//	-schema   schema document path (.json, .yaml, .yml)
//	-data     CSV data path, "-" for stdin
//	-missing  comma separated missing values, e.g. ",NA"
//	-workers  row casting workers
//	-log-level zerolog level
//	-lang     message language
//	-no-header first record is data
func ParseFlags(fs *flag.FlagSet, args []string) (*Config, error) {
	var (
		cfg     Config
		missing listValue
	)
	fs.StringVar(&cfg.Schema, "schema", "", "schema document path (.json, .yaml, .yml)")
	fs.StringVar(&cfg.Data, "data", "", "CSV data path, - for stdin")
	fs.Var(&missing, "missing", "comma separated missing values")
	fs.IntVar(&cfg.Workers, "workers", 0, "row casting workers")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Lang, "lang", "", "message language (en, ja)")
	fs.BoolVar(&cfg.NoHeader, "no-header", false, "treat the first record as data")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if missing.set {
		cfg.MissingValues = missing.vals
	}
	return &cfg, nil
}
