// Command sideload generates JSON-Schema documents for the request and
// response payloads of a JSON:API-style HTTP API from a YAML manifest of
// resource definitions.
//
// Usage:
//
//	sideload gen   [flags]    generate documents from the manifest
//	sideload init  [flags]    scaffold a starter manifest and Go definitions
//	sideload watch [flags]    regenerate whenever the manifest changes
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	// Introspection backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/davrux/sideload/compiler/gen"
	"github.com/davrux/sideload/compiler/load"
	"github.com/davrux/sideload/introspect"
)

// settings are read from the environment first and can be overridden per
// invocation with flags.
type settings struct {
	Manifest string `env:"SIDELOAD_MANIFEST, default=sideload.yaml"`
	Out      string `env:"SIDELOAD_OUT, default=schemas"`
	Backend  string `env:"SIDELOAD_BACKEND, default=static"`
	DSN      string `env:"SIDELOAD_DSN"`
	KeyCase  string `env:"SIDELOAD_CASE, default=camel"`
}

func main() {
	ctx := context.Background()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var cfg settings
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "reading environment: %v", err)
	}

	var err error
	switch os.Args[1] {
	case "gen":
		err = runGen(ctx, cfg, os.Args[2:], false)
	case "watch":
		err = runGen(ctx, cfg, os.Args[2:], true)
	case "init":
		err = runInit(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		clog.FatalContextf(ctx, "%v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sideload <gen|init|watch> [flags]")
}

func runGen(ctx context.Context, cfg settings, args []string, watch bool) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	manifest := fs.String("manifest", cfg.Manifest, "path to the resource manifest")
	out := fs.String("out", cfg.Out, "output directory for generated documents")
	backend := fs.String("backend", cfg.Backend, "introspection backend: static, mysql, postgres, sqlite")
	dsn := fs.String("dsn", cfg.DSN, "database DSN for SQL backends")
	keyCase := fs.String("case", cfg.KeyCase, "document key casing: camel, snake, none")
	expand := fs.Bool("expand", true, "render expanded relationship pointers and the included fragment")
	nested := fs.Bool("nested", false, "expand the included fragment one further hop")
	exclude := fs.String("exclude", "", "comma-separated relationship names to not traverse")
	workers := fs.Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var db *sql.DB
	if *backend != introspect.BackendStatic && *backend != "" {
		var err error
		db, err = sql.Open(driverName(*backend), *dsn)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
	}
	// An unsupported backend is fatal: no sensible partial schema can be
	// produced without a working one.
	intro, err := introspect.New(*backend, db)
	if err != nil {
		return err
	}

	genCfg, err := gen.NewConfig(
		gen.WithIntrospector(intro),
		gen.WithKeyCase(*keyCase),
		gen.WithTarget(*out),
	)
	if err != nil {
		return err
	}
	policy := gen.ExpansionPolicy{
		Expand:       *expand,
		ExpandNested: *nested,
	}
	if *exclude != "" {
		policy.Exclude = strings.Split(*exclude, ",")
	}

	generate := func(ctx context.Context) error {
		defs, err := load.Load(*manifest)
		if err != nil {
			return err
		}
		w := gen.NewWriter(gen.NewBuilder(genCfg), *out).WithWorkers(*workers)
		if err := w.Generate(ctx, defs, policy); err != nil {
			return err
		}
		clog.InfoContextf(ctx, "generated %d document sets under %s", len(defs), *out)
		return nil
	}

	if err := generate(ctx); err != nil {
		return err
	}
	if watch {
		return watchManifest(ctx, *manifest, generate)
	}
	return nil
}

// driverName maps a backend name to its registered database/sql driver.
func driverName(backend string) string {
	switch backend {
	case introspect.BackendSQLite:
		return "sqlite"
	case introspect.BackendPostgres:
		return "postgres"
	}
	return backend
}
