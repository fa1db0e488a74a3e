package cmd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	uri    string
	user   string
	pass   string
	body   string
}

// fakeStore answers every request with status and reply, remembering the
// requests it saw.
func fakeStore(t *testing.T, status int, reply string) (*httptest.Server, *[]recorded) {
	var seen []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ := r.BasicAuth()
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, recorded{r.Method, r.URL.RequestURI(), user, pass, string(body)})
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func writeConfig(t *testing.T, base string) string {
	cfg := fmt.Sprintf(`
api:
  documents: %[1]s/api/v1/documents
  transfers: %[1]s/api/v1/transfers
  socket: %[1]s/api/v1
credentials:
  user: u0abc
  password: hunter2
transfer:
  from: dest-a
  to: dest-b
`, base)
	path := filepath.Join(t.TempDir(), "docstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

// Flag values live in package globals, so put them back between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, cfgPath string, args ...string) (string, error) {
	resetFlags(rootCmd)
	dsManager = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--config", cfgPath, "--log-level", "panic"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSamplesRequestShape(t *testing.T) {
	cases := []struct {
		args   []string
		method string
		uri    string
		body   string
	}{
		{[]string{"hash", "all"}, http.MethodPost, "/api/v1/sync_hashes?reset=true", ""},
		{[]string{"hash", "document"}, http.MethodPatch, "/api/v1/documents/images/kaleido-logo.png", ""},
		{[]string{"document", "metadata"}, http.MethodGet, "/api/v1/documents/images/kaleido-logo.png?details_only=true", ""},
		{[]string{"document", "metadata", "-p", "docs/a.pdf"}, http.MethodGet, "/api/v1/documents/docs/a.pdf?details_only=true", ""},
		{[]string{"search"}, http.MethodGet, "/api/v1/search?query=kaleido", ""},
		{[]string{"search", "-q", "0xabc", "--by-hash"}, http.MethodGet, "/api/v1/search?query=0xabc&by_hash=true", ""},
		{[]string{"transfer", "list"}, http.MethodGet, "/api/v1/transfers", ""},
		{[]string{"transfer", "send"}, http.MethodPost, "/api/v1/transfers",
			`{"from":"dest-a","to":"dest-b","document":"/images/kaleido-logo.png"}`},
		{[]string{"preferences", "set"}, http.MethodPut, "/api/v1/preferences",
			`{"key":"receivedDocumentsPath","value":"/transfers/to/${recipient_destination}/from/${sender_org}-${sender_destination}"}`},
	}

	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			srv, seen := fakeStore(t, http.StatusOK, `{"result":"ok"}`)
			out, err := runCLI(t, writeConfig(t, srv.URL), tc.args...)
			require.NoError(t, err)

			assert.Equal(t, "{\"result\":\"ok\"}\n", out)
			require.Len(t, *seen, 1)
			req := (*seen)[0]
			assert.Equal(t, tc.method, req.method)
			assert.Equal(t, tc.uri, req.uri)
			assert.Equal(t, "u0abc", req.user)
			assert.Equal(t, "hunter2", req.pass)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, req.body)
			}
		})
	}
}

func TestSampleFailureIsOneLine(t *testing.T) {
	cases := map[string][]string{
		"Failed to calculate all hashes": {"hash", "all"},
		"Failed to calculate hash":       {"hash", "document"},
		"Failed to browse documents":     {"document", "metadata"},
		"Failed to delete document":      {"document", "delete"},
		"Failed to download document":    {"document", "download", "-o", "ignored.png"},
		"Failed to search for document":  {"search"},
		"Failed to set preference":       {"preferences", "set"},
		"Failed to transfer document":    {"transfer", "send"},
		"Failed to list transfers":       {"transfer", "list"},
		"Failed to upload document":      {"document", "upload", "-s", "kaleido.png"},
	}

	for prefix, args := range cases {
		t.Run(prefix, func(t *testing.T) {
			srv, _ := fakeStore(t, http.StatusInternalServerError, "internal error")
			wd, _ := os.Getwd()
			require.NoError(t, os.Chdir(t.TempDir()))
			defer os.Chdir(wd)
			require.NoError(t, os.WriteFile("kaleido.png", []byte("PNGDATA"), 0644))

			out, err := runCLI(t, writeConfig(t, srv.URL), args...)
			require.NoError(t, err, "remote failures must not fail the command")

			assert.Equal(t, 1, strings.Count(out, "\n"))
			assert.True(t, strings.HasPrefix(out, prefix+": "), out)
			assert.Contains(t, out, "500")
		})
	}
}

func TestMultiLineErrorPageIsOneLine(t *testing.T) {
	srv, _ := fakeStore(t, http.StatusBadGateway, "<html>\n<body>\nBad gateway\n</body>\n</html>")
	out, err := runCLI(t, writeConfig(t, srv.URL), "transfer", "list")
	require.NoError(t, err)

	assert.Equal(t, "Failed to list transfers: request failed with status code 502: <html> <body> Bad gateway </body> </html>\n", out)
}

func TestDeletePrintsNothing(t *testing.T) {
	srv, seen := fakeStore(t, http.StatusNoContent, "")
	out, err := runCLI(t, writeConfig(t, srv.URL), "document", "delete")
	require.NoError(t, err)

	assert.Empty(t, out)
	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodDelete, (*seen)[0].method)
	assert.Equal(t, "/api/v1/documents/images/kaleido-logo.png", (*seen)[0].uri)
}

func TestUploadAndDownload(t *testing.T) {
	payload := []byte("\x89PNG\r\n\x1a\nfake image bytes")
	var uploaded []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			file, _, err := r.FormFile("document")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			uploaded, _ = io.ReadAll(file)
			io.WriteString(w, `{"uploaded":true}`)
		case http.MethodGet:
			w.Write(payload)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "kaleido.png")
	dst := filepath.Join(dir, "out", "kaleido_downloaded.png")
	require.NoError(t, os.WriteFile(src, payload, 0644))
	cfg := writeConfig(t, srv.URL)

	out, err := runCLI(t, cfg, "document", "upload", "-s", src)
	require.NoError(t, err)
	assert.Equal(t, "{\"uploaded\":true}\n", out)
	assert.Equal(t, payload, uploaded)

	out, err = runCLI(t, cfg, "document", "download", "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	onDisk, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, onDisk)
}

func TestUploadMissingSource(t *testing.T) {
	srv, seen := fakeStore(t, http.StatusOK, "")
	out, err := runCLI(t, writeConfig(t, srv.URL), "document", "upload", "-s", filepath.Join(t.TempDir(), "missing.png"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Failed to upload document: "))
	assert.Empty(t, *seen)
}

func TestMissingConfigValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  documents: http://localhost/documents\n"), 0644))

	_, err := runCLI(t, path, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials.user")
}

func TestEventsCommand(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"s1"}`))
		conn.ReadMessage()
		conn.WriteMessage(websocket.TextMessage, []byte(`40`))
		conn.WriteMessage(websocket.TextMessage, []byte(`42["document_received",{"id":"42"}]`))
		conn.WriteMessage(websocket.TextMessage, []byte(`41`))
	}))
	defer srv.Close()

	out, err := runCLI(t, writeConfig(t, srv.URL), "events")
	require.NoError(t, err)
	assert.Equal(t, "Listening to events\n"+
		"Document received (document_received): {\"id\":\"42\"}\n"+
		"Socket disconnected (disconnect): io server disconnect\n", out)
}
