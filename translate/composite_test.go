package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amplet/amplet/expr"
)

func TestParseCompositeGroupsConnections(t *testing.T) {
	assert := require.New(t)

	connections := []string{
		"y_total = sum_1.y",
		"v1 = sum_1.x[1]",
		"v2 = sum_1.x[2]",
		"other = max_1.x[1]",
	}

	c, err := parseComposite("sum_1 = sum(2)", connections)
	assert.NoError(err)
	assert.Equal("sum_1", c.name)
	assert.Equal(CompositeSum, c.kind)
	assert.Equal([]string{"y_total"}, c.params["y"])
	assert.Equal([]string{"v1", "v2"}, c.params["x"])
}

func TestParseCompositeUnknownKind(t *testing.T) {
	assert := require.New(t)

	_, err := parseComposite("f_1 = foo(1)", nil)
	assert.ErrorIs(err, ErrUnsupportedOperation)
}

func TestParseCompositeMalformed(t *testing.T) {
	assert := require.New(t)

	for _, decl := range []string{"sum_1", "sum_1 = sum"} {
		_, err := parseComposite(decl, nil)
		assert.ErrorIs(err, expr.ErrMalformedExpression, decl)
	}
}

func TestParseCompositeObjectOnLeftOfConnection(t *testing.T) {
	assert := require.New(t)

	// the object name appearing only left of "=" binds nothing
	for _, connection := range []string{
		"sum_1.x = y",
		"sum_1.y = v",
	} {
		_, err := parseComposite("sum_1 = sum(1)", []string{connection})
		assert.ErrorIs(err, expr.ErrMalformedExpression, connection)
	}
}

func writeTable(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pwl_1.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadPWLTable(t *testing.T) {
	assert := require.New(t)

	xs, ys, err := readPWLTable(writeTable(t, "1,1\n2,4\n3,9\n"))
	assert.NoError(err)
	assert.Equal([]float64{1, 2, 3}, xs)
	assert.Equal([]float64{1, 4, 9}, ys)
}

func TestReadPWLTableTooFewPoints(t *testing.T) {
	assert := require.New(t)

	_, _, err := readPWLTable(writeTable(t, "1,1\n2,4\n"))
	assert.ErrorIs(err, ErrInvalidTable)
}

func TestReadPWLTableMismatchedCounts(t *testing.T) {
	assert := require.New(t)

	_, _, err := readPWLTable(writeTable(t, "1,1\n2\n3,9\n"))
	assert.ErrorIs(err, ErrInvalidTable)

	_, _, err = readPWLTable(writeTable(t, "1,1,5\n2,4\n3,9\n"))
	assert.ErrorIs(err, ErrInvalidTable)
}

func TestReadPWLTableNonNumeric(t *testing.T) {
	assert := require.New(t)

	_, _, err := readPWLTable(writeTable(t, "1,1\ntwo,4\n3,9\n"))
	assert.ErrorIs(err, ErrInvalidTable)
}
