package e2e_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/mcncl/xon/pkg/xon"
	"github.com/stretchr/testify/require"
)

// generateNested creates a deeply nested object for benchmarking
func generateNested(rng *rand.Rand, depth int, width int) map[string]any {
	if depth <= 0 {
		return map[string]any{
			"leaf_value": "data",
			"count":      rng.Intn(100),
			"enabled":    rng.Intn(2) == 1,
			"ratio":      rng.Float64(),
		}
	}

	result := make(map[string]any)
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNested(rng, depth-1, width)
	}
	return result
}

// generateWide creates an object with many fields at the same level
func generateWide(fieldCount int) map[string]any {
	result := make(map[string]any)
	for i := 0; i < fieldCount; i++ {
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]any{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"value": i * 10,
			}
		}
	}
	return result
}

// generateList creates a list of records with comments and hex literals mixed
// in, the way hand-written files look.
func generateList(rng *rand.Rand, size int) string {
	var b strings.Builder
	b.WriteString("// generated records\n[\n")
	for i := 0; i < size; i++ {
		fmt.Fprintf(&b, "  { id: 0x%X, name: \"Item %d\", value: %.3f, active: %t, tags: [\"a\", \"b\",], }, // record %d\n",
			i, i, rng.Float64()*100, i%2 == 0, i)
	}
	b.WriteString("]\n")
	return b.String()
}

func mustFormat(b *testing.B, v any) string {
	b.Helper()
	src, err := xon.Format(v)
	require.NoError(b, err)
	return src
}

func benchmarkParse(b *testing.B, src string) {
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xon.XonifyString(src); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDeepNesting benchmarks parsing deeply nested documents
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},
		{"Depth5Width2", 5, 2},
		{"Depth2Width10", 2, 10},
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			rng := rand.New(rand.NewSource(42))
			benchmarkParse(b, mustFormat(b, generateNested(rng, depth.depth, depth.width)))
		})
	}
}

// BenchmarkWideStructures benchmarks parsing objects with many fields
func BenchmarkWideStructures(b *testing.B) {
	for _, count := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("Fields%d", count), func(b *testing.B) {
			benchmarkParse(b, mustFormat(b, generateWide(count)))
		})
	}
}

// BenchmarkListProcessing benchmarks parsing long lists of records
func BenchmarkListProcessing(b *testing.B) {
	for _, size := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("List%d", size), func(b *testing.B) {
			rng := rand.New(rand.NewSource(42))
			benchmarkParse(b, generateList(rng, size))
		})
	}
}

// BenchmarkFormat benchmarks rendering a parsed document back to text
func BenchmarkFormat(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	v, err := xon.XonifyString(generateList(rng, 1000))
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xon.Format(v); err != nil {
			b.Fatal(err)
		}
	}
}

func TestGeneratedDocumentsParse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	src, err := xon.Format(generateNested(rng, 3, 2))
	require.NoError(t, err)
	_, err = xon.XonifyString(src)
	require.NoError(t, err)

	v, err := xon.XonifyString(generateList(rng, 10))
	require.NoError(t, err)
	require.Len(t, v, 10)
}
