package restclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/restdata/restdata/pkg/restdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func xmlHandler(t *testing.T, statusCode int, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}
}

func mockServer(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, opts...)
}

const infoFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:s="http://dev.splunk.com/ns/rest">
  <title>server-info</title>
  <entry>
    <title>server-info</title>
    <content type="text/xml">
      <s:dict>
        <s:key name="version">4.2</s:key>
        <s:key name="licenseKeys"><s:list><s:item>A</s:item><s:item>B</s:item></s:list></s:key>
      </s:dict>
    </content>
  </entry>
</feed>`

const errorBody = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <messages>
    <msg type="ERROR">Object id=foo cannot be found</msg>
  </messages>
</response>`

// --- New / Options Tests ---

func TestNew(t *testing.T) {
	c := New("https://localhost:8089/")
	assert.Equal(t, "https://localhost:8089", c.baseURL)
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)

	c = New("https://localhost:8089", WithTimeout(5*time.Second), WithToken("abc"))
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "abc", c.Token())
}

func TestAbspath(t *testing.T) {
	tests := []struct {
		name       string
		owner, app string
		path       string
		want       string
	}{
		{"absolute path kept", "admin", "search", "/services/server/info", "/services/server/info"},
		{"no namespace", "", "", "data/indexes", "/services/data/indexes"},
		{"owner and app", "admin", "search", "saved/searches", "/servicesNS/admin/search/saved/searches"},
		{"app only", "", "search", "saved/searches", "/servicesNS/-/search/saved/searches"},
		{"owner escaped", "a b", "", "x", "/servicesNS/a%20b/-/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("http://x", WithNamespace(tt.owner, tt.app))
			assert.Equal(t, tt.want, c.abspath(tt.path))
		})
	}
}

// --- Request Tests ---

func TestFetch(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	c := mockServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("<ok/>"))
	}), WithToken("key123"))

	body, err := c.Fetch(context.Background(), "data/indexes", url.Values{"count": {"0"}})
	require.NoError(t, err)
	assert.Equal(t, "<ok/>", body)
	assert.Equal(t, "/services/data/indexes", gotPath)
	assert.Equal(t, "count=0", gotQuery)
	assert.Equal(t, "Splunk key123", gotAuth)
}

func TestFetch_BasicAuth(t *testing.T) {
	c := mockServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "changeme" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("<ok/>"))
	}), WithBasicAuth("admin", "changeme"))

	_, err := c.Fetch(context.Background(), "/services", nil)
	require.NoError(t, err)
}

func TestFetch_ErrorResponse(t *testing.T) {
	c := mockServer(t, xmlHandler(t, http.StatusNotFound, errorBody))

	_, err := c.Fetch(context.Background(), "data/indexes/foo", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusNotFound, respErr.StatusCode)
	assert.Equal(t, []Message{{Type: "ERROR", Text: "Object id=foo cannot be found"}}, respErr.Messages)
	assert.Contains(t, err.Error(), "Object id=foo cannot be found")
}

func TestFetch_ErrorWithoutMessages(t *testing.T) {
	c := mockServer(t, xmlHandler(t, http.StatusInternalServerError, "oops"))

	_, err := c.Fetch(context.Background(), "x", nil)
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Empty(t, respErr.Messages)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestFetch_ContextCanceled(t *testing.T) {
	c := mockServer(t, xmlHandler(t, http.StatusOK, "<ok/>"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, "x", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet(t *testing.T) {
	c := mockServer(t, xmlHandler(t, http.StatusOK, infoFeed))

	v, err := c.Get(context.Background(), "/services/server/info", "entry/title", nil)
	require.NoError(t, err)
	assert.Equal(t, "server-info", v.Record().Text("title"))

	v, err = c.Get(context.Background(), "/services/server/info", "missing", nil)
	require.NoError(t, err)
	assert.True(t, v.IsAbsent())
}

func TestGet_MalformedBody(t *testing.T) {
	c := mockServer(t, xmlHandler(t, http.StatusOK, "<feed>"))

	_, err := c.Get(context.Background(), "x", "", nil)
	assert.ErrorIs(t, err, restdata.ErrMalformedXML)
}

func TestEntities(t *testing.T) {
	feed := `<feed>
  <entry><title>main</title></entry>
  <entry><title>history</title><content><dict><key name="disabled">1</key></dict></content></entry>
  <entry/>
</feed>`
	c := mockServer(t, xmlHandler(t, http.StatusOK, feed))

	entries, err := c.Entities(context.Background(), "data/indexes", nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "main", entries[0].Text("title"))

	content, err := entries[1].Field("content")
	require.NoError(t, err)
	assert.Equal(t, "1", content.Record().Text("disabled"))

	assert.Equal(t, 0, entries[2].Len())
}

func TestInfo(t *testing.T) {
	c := mockServer(t, xmlHandler(t, http.StatusOK, infoFeed))

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"version", "licenseKeys", "type"}, info.Keys())
	assert.Equal(t, "4.2", info.Text("version"))

	keys, err := info.Field("licenseKeys")
	require.NoError(t, err)
	assert.Equal(t, 2, keys.Len())
}

func TestInfo_EmptyFeed(t *testing.T) {
	c := mockServer(t, xmlHandler(t, http.StatusOK, "<feed><title>x</title></feed>"))

	_, err := c.Info(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /services/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("username") != "admin" || r.FormValue("password") != "changeme" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`<response><messages><msg type="WARN">Login failed</msg></messages></response>`))
			return
		}
		_, _ = w.Write([]byte("<response>\n  <sessionKey>sess42</sessionKey>\n</response>"))
	})
	mux.HandleFunc("GET /services/server/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Splunk sess42" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(infoFeed))
	})

	c := mockServer(t, mux, WithCredentials("admin", "changeme"))
	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, "sess42", c.Token())

	_, err := c.Info(context.Background())
	require.NoError(t, err)

	bad := mockServer(t, mux, WithCredentials("admin", "wrong"))
	err = bad.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Login failed")

	assert.Error(t, New("http://x").Login(context.Background()))
}
