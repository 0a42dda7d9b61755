package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/mcncl/xon/internal/errors"
	"github.com/mcncl/xon/internal/models"
	"github.com/mcncl/xon/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string, opts ...Option) (models.Node, error) {
	t.Helper()
	toks, err := scanner.Scan(src)
	require.NoError(t, err, "scan %q", src)
	return Parse(toks, opts...)
}

func mustParse(t *testing.T, src string) models.Node {
	t.Helper()
	node, err := parseSource(t, src)
	require.NoError(t, err)
	return node
}

func str(s string) *models.String { return &models.String{Value: s} }
func num(f float64) *models.Number { return &models.Number{Value: f} }
func pair(k string, v models.Node) models.Pair {
	return models.Pair{Key: k, Value: v}
}

func TestParse_EndToEnd(t *testing.T) {
	node := mustParse(t, `{ name: "Test App", count: 0x10, active: true, tags: ["fast", "simple",] }`)

	expected := &models.Object{Pairs: []models.Pair{
		pair("name", str("Test App")),
		pair("count", num(16)),
		pair("active", &models.Bool{Value: true}),
		pair("tags", &models.List{Items: []models.Node{str("fast"), str("simple")}}),
	}}
	assert.Equal(t, expected, node)
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Node
	}{
		{name: "string", input: `"x"`, expected: str("x")},
		{name: "bare word", input: `hello`, expected: str("hello")},
		{name: "number", input: `1.5`, expected: num(1.5)},
		{name: "negative number", input: `-42`, expected: num(-42)},
		{name: "hex", input: `0x1A`, expected: num(26)},
		{name: "bool", input: `false`, expected: &models.Bool{Value: false}},
		{name: "null", input: `null`, expected: &models.Null{}},
		{name: "empty object", input: `{}`, expected: &models.Object{}},
		{name: "empty list", input: `[]`, expected: &models.List{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustParse(t, tt.input))
		})
	}
}

func TestParse_TrailingCommas(t *testing.T) {
	assert.True(t, models.Equal(mustParse(t, `{a:1,b:2,}`), mustParse(t, `{a:1,b:2}`)))
	assert.True(t, models.Equal(mustParse(t, `[1,2,]`), mustParse(t, `[1,2]`)))
}

func TestParse_UnquotedKeys(t *testing.T) {
	assert.Equal(t, mustParse(t, `{"name": "x"}`), mustParse(t, `{name: "x"}`))
}

func TestParse_CommentsIgnored(t *testing.T) {
	assert.Equal(t, mustParse(t, "{ a: 1 }"), mustParse(t, "{ // note\n a: 1 }"))
}

func TestParse_DuplicateKeysPreserved(t *testing.T) {
	node := mustParse(t, `{a:1,a:2}`)

	obj, ok := node.(*models.Object)
	require.True(t, ok)
	require.Len(t, obj.Pairs, 2)
	assert.Equal(t, pair("a", num(1)), obj.Pairs[0])
	assert.Equal(t, pair("a", num(2)), obj.Pairs[1])
}

func TestParse_Nesting(t *testing.T) {
	node := mustParse(t, `[{ inner: [1, { deep: [true] }] }, []]`)

	expected := &models.List{Items: []models.Node{
		&models.Object{Pairs: []models.Pair{
			pair("inner", &models.List{Items: []models.Node{
				num(1),
				&models.Object{Pairs: []models.Pair{
					pair("deep", &models.List{Items: []models.Node{&models.Bool{Value: true}}}),
				}},
			}}),
		}},
		&models.List{},
	}}
	assert.Equal(t, expected, node)
}

func TestParse_BareWordValues(t *testing.T) {
	node := mustParse(t, `{ mode: production, levels: [debug, info] }`)

	obj := node.(*models.Object)
	mode, _ := obj.Get("mode")
	assert.Equal(t, str("production"), mode)
	levels, _ := obj.Get("levels")
	assert.Equal(t, &models.List{Items: []models.Node{str("debug"), str("info")}}, levels)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     int
		expected []string
		found    string
	}{
		{
			name:     "missing closing brace",
			input:    `{a:1`,
			line:     1,
			expected: []string{"','", "'}'"},
			found:    "end of input",
		},
		{
			name:     "missing closing bracket",
			input:    "[\n\"item1\",\n\"item2\",",
			line:     3,
			expected: nil,
			found:    "end of input",
		},
		{
			name:     "empty input",
			input:    "   ",
			line:     1,
			expected: nil,
			found:    "end of input",
		},
		{
			name:     "missing colon",
			input:    `{a 1}`,
			line:     1,
			expected: []string{"':'"},
			found:    "number 1",
		},
		{
			name:     "missing comma",
			input:    "{a:1\n b:2}",
			line:     2,
			expected: []string{"','", "'}'"},
			found:    `identifier "b"`,
		},
		{
			name:     "number key",
			input:    `{1: "x"}`,
			line:     1,
			expected: []string{"string", "identifier", "'}'"},
			found:    "number 1",
		},
		{
			name:     "keyword key",
			input:    `{true: 1}`,
			line:     1,
			expected: []string{"string", "identifier", "'}'"},
			found:    "boolean true",
		},
		{
			name:     "double comma",
			input:    `[1,,2]`,
			line:     1,
			expected: nil,
			found:    "','",
		},
		{
			name:     "leading comma in object",
			input:    `{,}`,
			line:     1,
			expected: []string{"string", "identifier", "'}'"},
			found:    "','",
		},
		{
			name:     "stray closer",
			input:    `]`,
			line:     1,
			expected: nil,
			found:    "']'",
		},
		{
			name:     "trailing tokens",
			input:    "{}\n{}",
			line:     2,
			expected: []string{"end of input"},
			found:    "'{'",
		},
		{
			name:     "negative hex",
			input:    `-0x10`,
			line:     1,
			expected: []string{"end of input"},
			found:    `identifier "x10"`,
		},
		{
			name:     "mismatched closer",
			input:    `[1}`,
			line:     1,
			expected: []string{"','", "']'"},
			found:    "'}'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parseSource(t, tt.input)
			require.Error(t, err)
			assert.Nil(t, node)

			var parseErr *errors.ParseError
			require.True(t, stderrors.As(err, &parseErr), "got %T: %v", err, err)
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, tt.found, parseErr.Found)
			if tt.expected == nil {
				assert.Empty(t, parseErr.Expected)
			} else {
				assert.Equal(t, tt.expected, parseErr.Expected)
			}
		})
	}
}

func TestParse_MissingBraceMentionsEndOfInput(t *testing.T) {
	_, err := parseSource(t, `{a:1`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end of input")
}

func TestParse_DepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 5) + strings.Repeat("]", 5)

	_, err := parseSource(t, deep, WithMaxDepth(5))
	require.NoError(t, err)

	_, err = parseSource(t, deep, WithMaxDepth(4))
	require.Error(t, err)
	var depthErr *errors.DepthError
	require.True(t, stderrors.As(err, &depthErr))
	assert.Equal(t, 4, depthErr.Limit)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)

	mixed := "{a:\n{b:\n[1]}}"
	_, err = parseSource(t, mixed, WithMaxDepth(2))
	require.True(t, stderrors.As(err, &depthErr))
	assert.Equal(t, 3, depthErr.Line)
}

func TestParse_DefaultDepthLimit(t *testing.T) {
	tooDeep := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
	_, err := parseSource(t, tooDeep)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)

	deep := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
	_, err = parseSource(t, deep, WithMaxDepth(0))
	assert.NoError(t, err, "a non-positive limit disables the check")
}

func TestParse_ConfigFile(t *testing.T) {
	src := `{
  // Application settings
  app_name: "Xon Demo",
  version: "1.0.0",
  debug: true,

  server: {
    host: "localhost",
    port: 8080,
    ssl: false,
  },

  database: {
    type: "postgres",
    name: "app_db",
    pool_size: 0x14,
  },

  features: ["comments", "unquoted_keys", "hex", "trailing_commas",],
}`
	node := mustParse(t, src)
	obj := node.(*models.Object)
	assert.Equal(t, []string{"app_name", "version", "debug", "server", "database", "features"}, obj.Keys())

	db, _ := obj.Get("database")
	pool, ok := db.(*models.Object).Get("pool_size")
	require.True(t, ok)
	assert.Equal(t, num(20), pool)

	features, _ := obj.Get("features")
	assert.Equal(t, 4, features.(*models.List).Len())
}
