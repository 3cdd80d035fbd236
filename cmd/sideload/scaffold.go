package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
	"github.com/dave/jennifer/jen"
)

const resourcePkg = "github.com/davrux/sideload/resource"

const starterManifest = `resources:
  - name: user
    attributes: [id, name, email]
    kinds:
      id: uuid
      name: string
      email: string
    nullable: [email]
    optional_create: [email]
    has_many:
      orders: order
  - name: order
    attributes: [id, total, status]
    kinds:
      id: uuid
      total: decimal
    enums:
      status: [pending, paid, shipped]
    belongs_to:
      customer: user
`

// runInit scaffolds a starter manifest plus an equivalent Go definitions
// file, for projects that prefer building the graph in code.
func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory to scaffold into")
	if err := fs.Parse(args); err != nil {
		return err
	}

	manifestPath := filepath.Join(*dir, "sideload.yaml")
	if err := writeIfAbsent(manifestPath, []byte(starterManifest)); err != nil {
		return err
	}

	goPath := filepath.Join(*dir, "schema", "resources.go")
	if err := os.MkdirAll(filepath.Dir(goPath), 0o755); err != nil {
		return err
	}
	buf, err := renderFile(starterDefinitions())
	if err != nil {
		return err
	}
	if err := writeIfAbsent(goPath, buf); err != nil {
		return err
	}

	clog.InfoContextf(ctx, "scaffolded %s and %s", manifestPath, goPath)
	return nil
}

// starterDefinitions builds the Go source mirroring the starter manifest.
func starterDefinitions() *jen.File {
	f := jen.NewFile("schema")
	f.HeaderComment("Code generated by sideload init. Edit freely.")

	f.Comment("User is the user resource definition.")
	f.Var().Id("User").Op("=").Qual(resourcePkg, "New").Call(jen.Lit("user")).
		Dot("Attributes").Call(jen.Lit("id"), jen.Lit("name"), jen.Lit("email")).
		Dot("Kind").Call(jen.Lit("id"), jen.Lit("uuid")).
		Dot("Kind").Call(jen.Lit("name"), jen.Lit("string")).
		Dot("Kind").Call(jen.Lit("email"), jen.Lit("string")).
		Dot("Nullable").Call(jen.Lit("email")).
		Dot("OptionalCreateRequestAttributes").Call(jen.Lit("email"))

	f.Comment("Order is the order resource definition.")
	f.Var().Id("Order").Op("=").Qual(resourcePkg, "New").Call(jen.Lit("order")).
		Dot("Attributes").Call(jen.Lit("id"), jen.Lit("total"), jen.Lit("status")).
		Dot("Kind").Call(jen.Lit("id"), jen.Lit("uuid")).
		Dot("Kind").Call(jen.Lit("total"), jen.Lit("decimal")).
		Dot("Enum").Call(jen.Lit("status"), jen.Lit("pending"), jen.Lit("paid"), jen.Lit("shipped"))

	f.Comment("The relationship graph is wired after construction so the")
	f.Comment("two definitions can reference each other.")
	f.Func().Id("init").Params().Block(
		jen.Id("User").Dot("HasMany").Call(jen.Lit("orders"), jen.Id("Order")),
		jen.Id("Order").Dot("BelongsTo").Call(jen.Lit("customer"), jen.Id("User")),
	)
	return f
}

func renderFile(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeIfAbsent(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing %s", path)
	}
	return os.WriteFile(path, data, 0o644)
}
