// Package printer renders XON trees as canonical text.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/xon/internal/models"
)

const indentUnit = "  "

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// Format renders node at indent level zero.
func Format(node models.Node) string {
	return FormatIndent(node, 0)
}

// FormatIndent renders node as if it started at the given indent level.
// Containers always span multiple lines and close at the level's indent.
func FormatIndent(node models.Node, level int) string {
	var b strings.Builder
	write(&b, node, level)
	return b.String()
}

// FormatValue renders a runtime value. It only fails for Go values that have
// no XON equivalent.
func FormatValue(v models.XONValue) (string, error) {
	node, err := models.FromValue(v)
	if err != nil {
		return "", err
	}
	return Format(node), nil
}

func write(b *strings.Builder, node models.Node, level int) {
	pad := strings.Repeat(indentUnit, level)

	switch n := node.(type) {
	case *models.Object:
		b.WriteString("{\n")
		for i, p := range n.Pairs {
			b.WriteString(pad)
			b.WriteString(indentUnit)
			writeString(b, p.Key)
			b.WriteString(": ")
			write(b, p.Value, level+1)
			if i < len(n.Pairs)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(pad)
		b.WriteByte('}')
	case *models.List:
		b.WriteString("[\n")
		for i, item := range n.Items {
			b.WriteString(pad)
			b.WriteString(indentUnit)
			write(b, item, level+1)
			if i < len(n.Items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(pad)
		b.WriteByte(']')
	case *models.String:
		writeString(b, n.Value)
	case *models.Number:
		b.WriteString(FormatNumber(n.Value))
	case *models.Bool:
		b.WriteString(strconv.FormatBool(n.Value))
	case *models.Null, nil:
		b.WriteString("null")
	default:
		panic(fmt.Sprintf("printer: unknown node type %T", node))
	}
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(stringEscaper.Replace(s))
	b.WriteByte('"')
}

// FormatNumber renders v in plain decimal notation, never with an exponent,
// so the result always scans back as a number literal.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
