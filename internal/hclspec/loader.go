package hclspec

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/ctxlog"
)

// RawColumn is one raw dataframe column declared in a dataset block.
type RawColumn struct {
	ID     colid.ID
	Arity  int
	Values column.Array
}

// Dataset is the decoded dataset block.
type Dataset struct {
	Vertices int
	Edges    int
	Raw      []RawColumn
}

// Definitions is everything decoded from a set of files.
type Definitions struct {
	Columns []*Column
	Dataset *Dataset
	Files   []string
}

// Load parses and decodes every .hcl file under paths.
func Load(ctx context.Context, paths ...string) (*Definitions, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL definition loader started.", "path_count", len(paths))

	files, err := ResolvePaths(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No .hcl files found at the specified paths.", "paths", paths)
	}

	parser := hclparse.NewParser()
	defs := newDefinitions()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := defs.decode(ctx, hclFile, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "files", len(defs.Files), "columns", len(defs.Columns), "dataset", defs.Dataset != nil)
	return defs, nil
}

// Parse decodes a single in-memory file.
func Parse(ctx context.Context, filename string, src []byte) (*Definitions, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	defs := newDefinitions()
	if err := defs.decode(ctx, hclFile, filename); err != nil {
		return nil, err
	}
	return defs, nil
}

func newDefinitions() *Definitions {
	return &Definitions{}
}

func (d *Definitions) decode(ctx context.Context, file *hcl.File, filename string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding definition file.", "path", filename)

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	for _, b := range root.Columns {
		col, err := translateColumn(b)
		if err != nil {
			return err
		}
		if prev := d.column(col.ID); prev != nil {
			return &column.ConfigurationError{
				ID:     col.ID,
				Reason: fmt.Sprintf("%s: already defined at %s", col.Range, prev.Range),
			}
		}
		d.Columns = append(d.Columns, col)
	}

	for _, b := range root.Datasets {
		if d.Dataset != nil {
			return fmt.Errorf("%s: only one dataset block is allowed", b.DefRange)
		}
		ds, err := translateDataset(b)
		if err != nil {
			return err
		}
		d.Dataset = ds
	}

	d.Files = append(d.Files, filename)
	logger.Debug("Successfully decoded definition file.", "path", filename, "columns_found", len(root.Columns), "datasets_found", len(root.Datasets))
	return nil
}

func (d *Definitions) column(id colid.ID) *Column {
	for _, c := range d.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func translateDataset(b *datasetBlock) (*Dataset, error) {
	ds := &Dataset{}
	if b.Vertices != nil {
		ds.Vertices = *b.Vertices
	}
	if b.Edges != nil {
		ds.Edges = *b.Edges
	}
	if ds.Vertices < 0 || ds.Edges < 0 {
		return nil, fmt.Errorf("%s: vertex and edge counts cannot be negative", b.DefRange)
	}

	seen := make(map[colid.ID]struct{}, len(b.Raw))
	for _, r := range b.Raw {
		id := colid.New(colid.ComponentClass(r.Class), r.Name)
		if err := id.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", r.DefRange, err)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s: raw column '%s' is declared twice", r.DefRange, id)
		}
		seen[id] = struct{}{}

		et, err := column.ParseElementType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: raw column '%s': %w", r.DefRange, id, err)
		}
		arity := 1
		if r.Arity != nil {
			arity = *r.Arity
		}
		elems, err := valueElements(r.Values)
		if err != nil {
			return nil, fmt.Errorf("%s: raw column '%s': %w", r.DefRange, id, err)
		}
		values, err := elementsToArray(elems, et)
		if err != nil {
			return nil, fmt.Errorf("%s: raw column '%s': %w", r.DefRange, id, err)
		}
		ds.Raw = append(ds.Raw, RawColumn{ID: id, Arity: arity, Values: values})
	}
	return ds, nil
}
