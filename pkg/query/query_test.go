package query

import (
	"testing"

	"github.com/restdata/restdata/pkg/logging"
	"github.com/restdata/restdata/pkg/restdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexes = `<feed>
  <entry><name>main</name><content><dict>
    <key name="totalEventCount">42</key>
    <key name="disabled">0</key>
    <key name="homePath">$SPLUNK_DB/defaultdb/db</key>
    <key name="eai:acl"><dict><key name="owner">nobody</key></dict></key>
  </dict></content></entry>
  <entry><name>history</name><content><dict>
    <key name="totalEventCount">0</key>
    <key name="disabled">1</key>
    <key name="homePath">$SPLUNK_DB/historydb/db</key>
  </dict></content></entry>
</feed>`

func loadEntries(t *testing.T) []restdata.Value {
	t.Helper()
	values, err := restdata.LoadAll(indexes, "entry")
	require.NoError(t, err)
	require.Len(t, values, 2)
	return values
}

func TestSelect(t *testing.T) {
	t.Parallel()

	v, err := restdata.LoadMatch(indexes, "entry")
	require.NoError(t, err)

	got, err := Select(v, "$[*].entry.name")
	require.NoError(t, err)
	assert.Equal(t, []any{"main", "history"}, got)

	got, err = Select(v, "$[0].entry.content['eai:acl'].owner")
	require.NoError(t, err)
	assert.Equal(t, []any{"nobody"}, got)

	got, err = Select(v, "$.nothing")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Select(v, "$[")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	values := loadEntries(t)

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{"empty keeps all", "", []string{"main", "history"}},
		{"equality", `entry.name == "main"`, []string{"main"}},
		{"nested field", `entry.content.disabled == "1"`, []string{"history"}},
		{"conversion", `int(entry.content.totalEventCount) > 10`, []string{"main"}},
		{"string operator", `entry.content.homePath contains "history"`, []string{"history"}},
		{"missing field is nil", `entry.content["eai:acl"] == nil`, []string{"history"}},
		{"no match", `entry.name == "x"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kept, err := Filter(values, tt.expression)
			require.NoError(t, err)

			var names []string
			for _, v := range kept {
				entry, err := v.Record().Field("entry")
				require.NoError(t, err)
				names = append(names, entry.Record().Text("name"))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilter_Errors(t *testing.T) {
	t.Parallel()

	values := loadEntries(t)

	_, err := Filter(values, "entry.name ==")
	assert.ErrorContains(t, err, "compile")

	kept, err := Filter(values, `int(entry.name) > 1`)
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestFilter_MissingNestedField(t *testing.T) {
	t.Parallel()

	values, err := restdata.LoadAll(`<feed>
  <entry><title>main</title><content><dict><key name="disabled">0</key></dict></content></entry>
  <entry><title>summary</title></entry>
  <entry><title>history</title><content><dict><key name="disabled">1</key></dict></content></entry>
</feed>`, "entry")
	require.NoError(t, err)
	require.Len(t, values, 3)

	titles := func(kept []restdata.Value) []string {
		var out []string
		for _, v := range kept {
			entry, err := v.Record().Field("entry")
			require.NoError(t, err)
			out = append(out, entry.Record().Text("title"))
		}
		return out
	}

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{"entry without content is dropped", `entry.content.disabled == "0"`, []string{"main"}},
		{"negation does not keep it either", `entry.content.disabled != "0"`, []string{"history"}},
		{"optional chaining reaches it", `entry.content?.disabled == nil`, []string{"summary"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kept, err := NewMatcher(WithLogger(logging.Nop())).Filter(values, tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(kept))
		})
	}
}

func TestFilter_NonMapping(t *testing.T) {
	t.Parallel()

	values := []restdata.Value{restdata.Scalar("a"), restdata.Scalar("b")}
	kept, err := Filter(values, `value == "b"`)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "b", kept[0].String())
}

func TestMatcher_CachesPrograms(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	values := loadEntries(t)

	_, err := m.Filter(values, `entry.name == "main"`)
	require.NoError(t, err)
	_, err = m.Filter(values, `entry.name == "main"`)
	require.NoError(t, err)
	assert.Len(t, m.programs, 1)
}

func TestSlice(t *testing.T) {
	t.Parallel()

	v, err := restdata.LoadMatch(indexes, "entry[1]/content/dict")
	require.NoError(t, err)
	r := v.Record()

	got, err := Slice(r, "total*", "eai:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"totalEventCount", "eai:acl"}, got.Keys())

	got, err = Slice(r, "homePath", "disabled")
	require.NoError(t, err)
	assert.Equal(t, []string{"disabled", "homePath"}, got.Keys(), "record order wins")

	all, err := Slice(r)
	require.NoError(t, err)
	assert.Equal(t, r.Keys(), all.Keys())

	_, err = Slice(r, "[")
	assert.Error(t, err)
}
