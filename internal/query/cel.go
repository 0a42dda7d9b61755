package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	"github.com/mcncl/xon/internal/models"
)

// DocumentVariable is the name a document is bound to inside expressions.
const DocumentVariable = "doc"

// Env encapsulates a CEL environment for evaluating expressions against
// documents.
type Env struct {
	cel *cel.Env
}

// NewEnv builds the CEL environment.
func NewEnv() (*Env, error) {
	ce, err := cel.NewEnv(cel.Variable(DocumentVariable, cel.DynType))
	if err != nil {
		return nil, err
	}
	return &Env{cel: ce}, nil
}

// Expression is a compiled, reusable CEL program.
type Expression struct {
	Source  string
	program cel.Program
}

// Compile parses and checks expr.
func (e *Env) Compile(expr string) (*Expression, error) {
	ast, iss := e.cel.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	prgm, err := e.cel.Program(ast, cel.InterruptCheckFrequency(100))
	if err != nil {
		return nil, err
	}
	return &Expression{Source: expr, program: prgm}, nil
}

// Eval runs the expression with doc bound to the document and converts the
// result back into a runtime value.
func (x *Expression) Eval(ctx context.Context, doc models.XONValue) (models.XONValue, error) {
	val, _, err := x.program.ContextEval(ctx, map[string]any{DocumentVariable: models.Native(doc)})
	if err != nil {
		return nil, err
	}
	logr.FromContextOrDiscard(ctx).V(1).Info("evaluated expression", "expression", x.Source, "resultType", val.Type().TypeName())
	return fromCEL(val)
}

func fromCEL(val ref.Val) (models.XONValue, error) {
	switch v := val.(type) {
	case types.Null:
		return nil, nil
	case types.Bool:
		return bool(v), nil
	case types.Int:
		return float64(v), nil
	case types.Uint:
		return float64(v), nil
	case types.Double:
		return float64(v), nil
	case types.String:
		return string(v), nil
	case traits.Mapper:
		return mapFromCEL(v)
	case traits.Lister:
		size, ok := v.Size().(types.Int)
		if !ok {
			return nil, fmt.Errorf("list has no size")
		}
		arr := make(models.XONArray, 0, int(size))
		for i := types.Int(0); i < size; i++ {
			item, err := fromCEL(v.Get(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, item)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("expression result of type %s has no XON equivalent", val.Type().TypeName())
	}
}

func mapFromCEL(m traits.Mapper) (models.XONValue, error) {
	entries := make(map[string]models.XONValue)
	it := m.Iterator()
	for it.HasNext() == types.True {
		key := it.Next()
		k, ok := key.(types.String)
		if !ok {
			return nil, fmt.Errorf("map key of type %s has no XON equivalent", key.Type().TypeName())
		}
		v, err := fromCEL(m.Get(key))
		if err != nil {
			return nil, err
		}
		entries[string(k)] = v
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := models.NewXONObject()
	for _, k := range keys {
		obj.Set(k, entries[k])
	}
	return obj, nil
}
