package gen

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

// Writer generates the document set for resource definitions with
// parallel execution and streaming writes. Each definition yields four
// documents: a single response, a collection response, a create request
// and an update request.
type Writer struct {
	builder *Builder
	outDir  string
	workers int
}

// NewWriter returns a writer emitting documents under outDir.
func NewWriter(b *Builder, outDir string) *Writer {
	return &Writer{
		builder: b,
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Generate builds and writes every document for the given definitions.
// Definitions are processed in parallel; generation itself is pure, so no
// synchronization beyond the worker limit is needed.
func (w *Writer) Generate(ctx context.Context, defs []*resource.Definition, policy ExpansionPolicy) error {
	if w.outDir == "" {
		return NewConfigError("Target", nil, "missing output directory")
	}
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return err
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(w.workers)

	for _, def := range defs {
		def := def
		errg.Go(func() error {
			doc := w.builder.Response(ctx, def, policy, ResponseOptions{})
			return w.writeDoc(def.Name(), def.Name()+"_response.json", doc)
		})
		errg.Go(func() error {
			doc := w.builder.Response(ctx, def, policy, ResponseOptions{Collection: true})
			return w.writeDoc(def.Name(), def.Name()+"_collection_response.json", doc)
		})
		errg.Go(func() error {
			doc := w.builder.Request(ctx, def, Create)
			return w.writeDoc(def.Name(), def.Name()+"_create_request.json", doc)
		})
		errg.Go(func() error {
			doc := w.builder.Request(ctx, def, Update)
			return w.writeDoc(def.Name(), def.Name()+"_update_request.json", doc)
		})
	}

	return errg.Wait()
}

// writeDoc writes one document directly to disk.
func (w *Writer) writeDoc(res, filename string, doc tree.Node) error {
	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &WriteError{Resource: res, Path: filename, Cause: err}
	}
	buf = append(buf, '\n')
	path := filepath.Join(w.outDir, filename)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return &WriteError{Resource: res, Path: path, Cause: err}
	}
	return nil
}
