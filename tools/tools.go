// Package tools defines the agent-facing tool contract: named, described
// operations with JSON schema parameters, called with raw JSON input and
// returning JSON output. Failures are converted to structured error results
// at this boundary rather than propagating across it.
package tools

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/corecraft/worldkit/jsonutil"
)

// ErrFailedUnmarshalInput is returned by Call when the raw input cannot be
// parsed into the tool's input type.
var ErrFailedUnmarshalInput = errors.New("failed to unmarshal input")

// ITool is a tool for the llm agent to interact with the entity store.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	// Should not exceed LLM model limit.
	Description() string
	// Parameters returns the parameters definition of the function, to be used in the prompt.
	Parameters() any

	// Call executes the tool with the given input and returns the result.
	// If the tool fails to parse the input, it should return ErrFailedUnmarshalInput error.
	Call(context.Context, string) (string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// ResultProvider is implemented by errors that carry structured context for
// the calling agent, such as valid enum values or conflicting ids.
type ResultProvider interface {
	ErrorResult() map[string]any
}

// Call is the shared dispatch path for typed tools: it parses the raw JSON
// input and runs the tool, rendering any run error as an {"error": ...}
// result so the agent can self-correct instead of crashing the loop.
func Call[I any, O any](ctx context.Context, t Tool[I, O], input string) (string, error) {
	var in I
	if err := json.Unmarshal(jsonutil.Clean([]byte(input)), &in); err != nil {
		return "", errors.WithStack(ErrFailedUnmarshalInput)
	}
	out, err := t.Run(ctx, &in)
	if err != nil {
		return ErrorJSON(err), nil
	}
	return jsonutil.ToJSON(out), nil
}

// ErrorJSON renders an error as a JSON error result, preferring the
// structured form when the error provides one.
func ErrorJSON(err error) string {
	var rp ResultProvider
	if errors.As(err, &rp) {
		return jsonutil.ToJSON(rp.ErrorResult())
	}
	return jsonutil.ToJSON(map[string]any{"error": err.Error()})
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return jsonutil.BackticksJSON(jsonutil.ToJSONIndent(d))
}
