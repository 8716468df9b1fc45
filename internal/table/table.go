// Package table casts CSV streams through a tableschema.Schema.
package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	ts "github.com/reoring/tableschema"
	"github.com/reoring/tableschema/internal/logger"
)

// ErrHeader is returned when the CSV header does not name the schema fields.
var ErrHeader = errors.New("table: header does not match schema")

// Runner casts every record of a CSV stream with a bounded worker pool.
type Runner struct {
	Schema  *ts.Schema
	Workers int
	Logger  *logger.Logger
}

// Result holds one entry per data record, in input order. Rejected records
// are nil in Rows and described in Issues with paths of the form
// /<row>/<field>, where row is the zero-based index into Rows.
type Result struct {
	Rows   [][]any
	Issues ts.Issues
}

// Valid reports whether every record was cast.
func (r Result) Valid() bool { return len(r.Issues) == 0 }

type rowResult struct {
	values []any
	issues ts.Issues
}

// Run reads r to EOF. When header is true the first record must contain
// every schema field name exactly once; columns are reordered to match the
// schema. Read errors and cancellation abort the run.
func (rn *Runner) Run(ctx context.Context, r io.Reader, header bool) (Result, error) {
	if rn.Schema == nil {
		return Result{}, errors.New("table: nil schema")
	}
	log := rn.Logger
	if log == nil {
		log = logger.Nop()
	}
	workers := rn.Workers
	if workers < 1 {
		workers = 1
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var order []int
	if header {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Result{}, fmt.Errorf("%w: empty input", ErrHeader)
			}
			return Result{}, fmt.Errorf("table: read header: %w", err)
		}
		order, err = columnOrder(rec, rn.Schema.FieldNames())
		if err != nil {
			return Result{}, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var rows []*rowResult
	var readErr error
	for {
		if err := gctx.Err(); err != nil {
			break
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr = fmt.Errorf("table: read record %d: %w", len(rows), err)
			break
		}
		res := &rowResult{}
		idx := len(rows)
		rows = append(rows, res)
		cells := reorder(rec, order)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := rn.Schema.CastRow(cells)
			if err != nil {
				res.issues = rowIssues(idx, err)
				return nil
			}
			res.values = v
			return nil
		})
	}
	waitErr := g.Wait()
	if readErr != nil {
		return Result{}, readErr
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if waitErr != nil {
		return Result{}, waitErr
	}

	out := Result{Rows: make([][]any, len(rows))}
	for i, res := range rows {
		out.Rows[i] = res.values
		if len(res.issues) > 0 {
			out.Issues = ts.AppendIssues(out.Issues, res.issues...)
			log.Debug().Int("row", i).Str("issues", res.issues.Error()).Msg("row rejected")
		}
	}
	log.Info().Int("rows", len(rows)).Int("issues", len(out.Issues)).Msg("table cast")
	return out, nil
}

// columnOrder maps schema field i to its header column. A nil result means
// the header already matches the schema order.
func columnOrder(header, names []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := pos[h]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrHeader, h)
		}
		pos[h] = i
	}
	if len(header) != len(names) {
		return nil, fmt.Errorf("%w: %d columns, %d fields", ErrHeader, len(header), len(names))
	}
	order := make([]int, len(names))
	identity := true
	for i, n := range names {
		j, ok := pos[n]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrHeader, n)
		}
		order[i] = j
		identity = identity && i == j
	}
	if identity {
		return nil, nil
	}
	return order, nil
}

// reorder converts rec to cells in schema order. Records of the wrong width
// are passed through so that CastRow reports their length.
func reorder(rec []string, order []int) []any {
	cells := make([]any, len(rec))
	if order == nil || len(rec) != len(order) {
		for i, s := range rec {
			cells[i] = s
		}
		return cells
	}
	for i, j := range order {
		cells[i] = rec[j]
	}
	return cells
}

func rowIssues(row int, err error) ts.Issues {
	prefix := "/" + strconv.Itoa(row)
	iss, ok := ts.AsIssues(err)
	if !ok {
		iss = ts.Issues{ts.IssueOf(err)}
	}
	out := make(ts.Issues, len(iss))
	for i, is := range iss {
		if is.Path == "" || is.Path == "/" {
			is.Path = prefix
		} else {
			is.Path = prefix + is.Path
		}
		out[i] = is
	}
	return out
}
