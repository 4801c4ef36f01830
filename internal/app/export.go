package app

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/specialistvlad/colengine/internal/arrowexport"
	"github.com/specialistvlad/colengine/internal/colid"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Export materializes ids and writes them to w as one Arrow record batch.
// It returns the number of bytes written.
func (a *App) Export(ctx context.Context, w io.Writer, ids []colid.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("no columns to export")
	}
	results, err := a.Eval(ctx, ids, -1)
	if err != nil {
		return 0, err
	}

	cols := make([]arrowexport.Column, len(results))
	for i, r := range results {
		cols[i] = arrowexport.Column{ID: r.ID, Version: r.Version, Arity: r.Arity, Values: r.Values}
	}

	mem := memory.NewGoAllocator()
	rec, err := arrowexport.Record(mem, cols)
	if err != nil {
		return 0, err
	}
	defer rec.Release()

	cw := &countingWriter{w: w}
	if err := arrowexport.WriteIPC(cw, mem, rec); err != nil {
		return cw.n, err
	}
	a.logger.Debug("Exported columns.", "columns", len(cols), "rows", rec.NumRows(), "bytes", cw.n)
	return cw.n, nil
}
