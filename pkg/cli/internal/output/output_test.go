package output

import (
	"bytes"
	"testing"

	"github.com/restdata/restdata/pkg/restdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	v, err := restdata.Load(`<dict>
  <key name="name">main</key>
  <key name="paths"><list><item>/a</item><item/></list></key>
  <key name="acl"><dict><key name="owner">nobody</key><key name="perms"/></dict></key>
</dict>`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, v))
	assert.Equal(t, `name: main
paths:
  - /a
  -
acl:
  owner: nobody
  perms:
`, buf.String())
}

func TestText_SequenceOfMappings(t *testing.T) {
	v, err := restdata.LoadMatch(`<feed><entry><title>a</title></entry><entry><title>b</title></entry></feed>`, "entry")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, v))
	assert.Equal(t, "-\n  entry:\n    title: a\n-\n  entry:\n    title: b\n", buf.String())
}

func TestJSON_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, restdata.Mapping(restdata.FromKV("search", restdata.Scalar("a<b")))))
	assert.Equal(t, "{\n  \"search\": \"a<b\"\n}\n", buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	v := restdata.Sequence(restdata.Scalar("1"), restdata.Mapping(restdata.FromKV("k", restdata.Absent())))
	require.NoError(t, YAML(&buf, v))
	assert.Equal(t, "- \"1\"\n- k: null\n", buf.String())
}
