package tools

import (
	"context"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/schema"
)

// FuncTool adapts a typed function into a Tool, reflecting the parameters
// definition from the input type.
type FuncTool[I any, O any] struct {
	name        string
	description string
	funcParams  any
	fn          func(context.Context, *I) (*O, error)
}

var _ Tool[struct{}, struct{}] = (*FuncTool[struct{}, struct{}])(nil)

func NewFunc[I any, O any](name, description string, fn func(context.Context, *I) (*O, error)) (*FuncTool[I, O], error) {
	var def I
	sc, err := schema.New(reflect.TypeOf(def))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &FuncTool[I, O]{
		name:        name,
		description: description,
		funcParams:  sc.Parameters,
		fn:          fn,
	}, nil
}

func (t *FuncTool[I, O]) Name() string {
	return t.name
}

func (t *FuncTool[I, O]) Description() string {
	return t.description
}

func (t *FuncTool[I, O]) Parameters() any {
	return t.funcParams
}

func (t *FuncTool[I, O]) Run(ctx context.Context, in *I) (*O, error) {
	return t.fn(ctx, in)
}

func (t *FuncTool[I, O]) Call(ctx context.Context, input string) (string, error) {
	return Call[I, O](ctx, t, input)
}
