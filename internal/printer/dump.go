package printer

import (
	"fmt"
	"strings"

	"github.com/mcncl/xon/internal/models"
)

// Dump renders the tree structure for debugging, one node per line:
//
//	OBJECT
//	  Key: port
//	    NUMBER: 8080.000000
func Dump(node models.Node) string {
	var b strings.Builder
	dump(&b, node, 0)
	return b.String()
}

func dump(b *strings.Builder, node models.Node, depth int) {
	b.WriteString(strings.Repeat(indentUnit, depth))

	switch n := node.(type) {
	case *models.Object:
		b.WriteString("OBJECT\n")
		for _, p := range n.Pairs {
			fmt.Fprintf(b, "%sKey: %s\n", strings.Repeat(indentUnit, depth+1), p.Key)
			dump(b, p.Value, depth+2)
		}
	case *models.List:
		b.WriteString("LIST\n")
		for _, item := range n.Items {
			dump(b, item, depth+1)
		}
	case *models.String:
		fmt.Fprintf(b, "STRING: %q\n", n.Value)
	case *models.Number:
		fmt.Fprintf(b, "NUMBER: %f\n", n.Value)
	case *models.Bool:
		fmt.Fprintf(b, "BOOL: %t\n", n.Value)
	case *models.Null, nil:
		b.WriteString("NULL\n")
	default:
		panic(fmt.Sprintf("printer: unknown node type %T", node))
	}
}
