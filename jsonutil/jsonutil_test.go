package jsonutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corecraft/worldkit/jsonutil"
)

func Test_Clean(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, string(jsonutil.Clean([]byte(`Sure, here you go: {"a": 1} hope that helps`))))
	assert.Equal(t, `[1, 2]`, string(jsonutil.Clean([]byte(`result: [1, 2].`))))
	assert.Equal(t, `{"a": 1}`, string(jsonutil.Clean([]byte(`{"a": 1}`))))
	assert.Equal(t, `no json here`, string(jsonutil.Clean([]byte(`no json here`))))
}

func Test_TrimBackticks(t *testing.T) {
	fenced := "```json\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, string(jsonutil.TrimBackticks([]byte(fenced))))

	plainFence := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, string(jsonutil.TrimBackticks([]byte(plainFence))))

	bare := `{"a": 1}`
	assert.Equal(t, bare, string(jsonutil.TrimBackticks([]byte(bare))))
}

func Test_ToJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, jsonutil.ToJSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\n\t\"a\": 1\n}", jsonutil.ToJSONIndent(map[string]int{"a": 1}))
	assert.Equal(t, "{\n\t\"a\": 1\n}", jsonutil.JSONIndent(`{"a":1}`))
}

func Test_ToYAML(t *testing.T) {
	assert.Equal(t, "a: 1\n", jsonutil.ToYAML(map[string]int{"a": 1}))
}

func Test_BackticksJSON(t *testing.T) {
	assert.Equal(t, "\n```json\n{}\n```\n", jsonutil.BackticksJSON(" {} "))
}
