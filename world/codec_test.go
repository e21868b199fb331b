package world_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corecraft/worldkit/world"
)

const fixtureJSON = `{
  "__now": "2025-06-01T12:00:00Z",
  "customer": {
    "cust_2": {"id": "cust_2", "name": "Bob"},
    "cust_1": {"id": "cust_1", "name": "Jane"}
  },
  "order": {
    "order_1": {"id": "order_1", "total": 150, "status": "paid"}
  }
}`

func Test_FromJSON(t *testing.T) {
	w, err := world.FromJSON([]byte(fixtureJSON))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01T12:00:00Z", w.NowString())
	assert.Equal(t, []string{"customer", "order"}, w.TableNames())

	// Document order survives decoding.
	var ids []string
	w.Table("customer").Range(func(id string, _ world.Entity) bool {
		ids = append(ids, id)
		return true
	})
	assert.Equal(t, []string{"cust_2", "cust_1"}, ids)

	e, ok := w.Get("order", "order_1")
	require.True(t, ok)
	assert.Equal(t, float64(150), e["total"])
}

func Test_FromJSON_Invalid(t *testing.T) {
	_, err := world.FromJSON([]byte(`{"broken":`))
	require.Error(t, err)

	_, err = world.FromJSON([]byte(`[1, 2, 3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a JSON object")
}

func Test_MarshalJSON_RoundTrip(t *testing.T) {
	w, err := world.FromJSON([]byte(fixtureJSON))
	require.NoError(t, err)

	out, err := json.Marshal(w)
	require.NoError(t, err)

	again, err := world.FromJSON(out)
	require.NoError(t, err)
	assert.Equal(t, w.TableNames(), again.TableNames())

	var ids []string
	again.Table("customer").Range(func(id string, _ world.Entity) bool {
		ids = append(ids, id)
		return true
	})
	assert.Equal(t, []string{"cust_2", "cust_1"}, ids)
	assert.Equal(t, "2025-06-01T12:00:00Z", again.NowString())
}

func Test_FromYAML(t *testing.T) {
	doc := []byte(`
__now: "2025-06-01T12:00:00Z"
customer:
  cust_1:
    id: cust_1
    name: Jane
`)
	w, err := world.FromYAML(doc)
	require.NoError(t, err)

	e, ok := w.Get("customer", "cust_1")
	require.True(t, ok)
	assert.Equal(t, "Jane", e["name"])
}

func Test_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0600))

	w, err := world.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Table("customer").Len())

	_, err = world.LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
