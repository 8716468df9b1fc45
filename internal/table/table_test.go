package table

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ts "github.com/reoring/tableschema"
	"github.com/reoring/tableschema/internal/logger"
)

const peopleSchema = `{
  "fields": [
    {"name": "id", "type": "integer", "constraints": {"required": true}},
    {"name": "name", "type": "string", "constraints": {"minLength": 2}},
    {"name": "born", "type": "date"}
  ],
  "missingValues": ["", "NA"]
}`

func newRunner(t *testing.T, workers int) *Runner {
	t.Helper()
	s, err := ts.LoadSchema(strings.NewReader(peopleSchema))
	require.NoError(t, err)
	return &Runner{Schema: s, Workers: workers}
}

func TestRun_CastsRowsInOrder(t *testing.T) {
	in := "id,name,born\n1,ann,2001-02-03\n2,bob,NA\n"
	res, err := newRunner(t, 2).Run(context.Background(), strings.NewReader(in), true)
	require.NoError(t, err)
	require.True(t, res.Valid())
	require.Len(t, res.Rows, 2)

	assert.Equal(t, []any{int64(1), "ann", time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)}, res.Rows[0])
	assert.Equal(t, []any{int64(2), "bob", nil}, res.Rows[1])
}

func TestRun_ReordersColumns(t *testing.T) {
	in := "born,name,id\n2001-02-03,ann,7\n"
	res, err := newRunner(t, 1).Run(context.Background(), strings.NewReader(in), true)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(7), res.Rows[0][0])
	assert.Equal(t, "ann", res.Rows[0][1])
}

func TestRun_NoHeader(t *testing.T) {
	in := "1,ann,2001-02-03\n"
	res, err := newRunner(t, 1).Run(context.Background(), strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(1), res.Rows[0][0])
}

func TestRun_ReportsIssuesPerRow(t *testing.T) {
	in := "id,name,born\n1,ann,2001-02-03\nx,b,2001-02-03\n3,carl\n,dan,2001-13-01\n"
	res, err := newRunner(t, 3).Run(context.Background(), strings.NewReader(in), true)
	require.NoError(t, err)
	require.Len(t, res.Rows, 4)
	assert.NotNil(t, res.Rows[0])
	assert.Nil(t, res.Rows[1])
	assert.Nil(t, res.Rows[2])
	assert.Nil(t, res.Rows[3])

	got := make([]string, len(res.Issues))
	for i, is := range res.Issues {
		got[i] = is.Path + " " + is.Code
	}
	assert.Equal(t, []string{
		"/1/id " + ts.CodeCast,
		"/1/name " + ts.CodeTooShort,
		"/2 " + ts.CodeRowLength,
		"/3/id " + ts.CodeRequired,
		"/3/born " + ts.CodeCast,
	}, got)
}

func TestRun_HeaderMismatch(t *testing.T) {
	cases := []string{
		"",
		"id,name\n",
		"id,name,birth\n",
		"id,id,born\n",
	}
	for _, in := range cases {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, err := newRunner(t, 1).Run(context.Background(), strings.NewReader(in), true)
			assert.ErrorIs(t, err, ErrHeader)
		})
	}
}

func TestRun_HeaderWithBOM(t *testing.T) {
	in := "\ufeffid,name,born\n1,ann,2001-02-03\n"
	res, err := newRunner(t, 1).Run(context.Background(), strings.NewReader(in), true)
	require.NoError(t, err)
	assert.True(t, res.Valid())
}

func TestRun_ReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("id,name,born\n1,ann,2001-02-03\n"), iotest.ErrReader(boom))
	_, err := newRunner(t, 1).Run(context.Background(), r, true)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrHeader)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRunner(t, 1).Run(ctx, strings.NewReader("1,ann,2001-02-03\n"), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ManyRowsManyWorkers(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,name,born\n")
	const n = 500
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,row%d,2020-01-01\n", i, i)
	}
	res, err := newRunner(t, 8).Run(context.Background(), strings.NewReader(b.String()), true)
	require.NoError(t, err)
	require.Len(t, res.Rows, n)
	for i, row := range res.Rows {
		assert.Equal(t, int64(i), row[0])
	}
}

func TestRun_LogsSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	rn := newRunner(t, 1)
	rn.Logger = logger.NewLogger(buf, "test", "info")
	_, err := rn.Run(context.Background(), strings.NewReader("1,ann,2001-02-03\n"), false)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "table cast", entry["message"])
	assert.Equal(t, 1.0, entry["rows"])
}

func TestRun_NilSchema(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background(), strings.NewReader(""), false)
	require.Error(t, err)
}
