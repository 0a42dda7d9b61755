// Package query looks up values inside parsed XON documents, either by a
// dotted path or with a CEL expression.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/xon/internal/errors"
	"github.com/mcncl/xon/internal/models"
)

// PathOptions controls Resolve
type PathOptions struct {
	// NormalizeKeys lets a segment match keys written in another case style,
	// so appName, app-name and AppName all find app_name.
	NormalizeKeys bool
}

// Resolve walks a dotted path such as "server.port" or "features.0" from
// root. An empty path returns root itself.
func Resolve(root models.XONValue, path string, opts PathOptions) (models.XONValue, error) {
	if path == "" || path == "." {
		return root, nil
	}

	current := root
	walked := make([]string, 0, strings.Count(path, ".")+1)
	for _, segment := range strings.Split(path, ".") {
		walked = append(walked, segment)

		switch v := current.(type) {
		case *models.XONObject:
			next, ok := lookupKey(v, segment, opts)
			if !ok {
				return nil, fmt.Errorf("%w: no key '%s'", errors.ErrPathNotFound, strings.Join(walked, "."))
			}
			current = next
		case models.XONArray:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("%w: '%s' is a list, index '%s' is not a number", errors.ErrPathNotFound, strings.Join(walked[:len(walked)-1], "."), segment)
			}
			if idx < 0 || idx >= len(v) {
				return nil, fmt.Errorf("%w: index %d out of range at '%s' (length %d)", errors.ErrPathNotFound, idx, strings.Join(walked, "."), len(v))
			}
			current = v[idx]
		default:
			return nil, fmt.Errorf("%w: cannot descend into %s at '%s'", errors.ErrPathNotFound, describe(current), strings.Join(walked, "."))
		}
	}
	return current, nil
}

func lookupKey(obj *models.XONObject, segment string, opts PathOptions) (models.XONValue, bool) {
	if v, ok := obj.Get(segment); ok {
		return v, true
	}
	if !opts.NormalizeKeys {
		return nil, false
	}
	want := strcase.ToSnake(segment)
	for _, key := range obj.Keys() {
		if strcase.ToSnake(key) == want {
			return obj.Get(key)
		}
	}
	return nil, false
}

func describe(v models.XONValue) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
