package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mDuo13/txsplain/internal/config"
	"github.com/mDuo13/txsplain/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const gateway = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// testConfig points the identity service at a stub that knows gateway and
// keeps the alias cache in a temporary bbolt store.
func testConfig(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/user/" + gateway, "/v1/user/bitstamp":
			_, _ = io.WriteString(w, `{"username":"bitstamp","address":"`+gateway+`"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "txsplain.toml")
	content := `
[identity]
url = "` + srv.URL + `"
max_retries = 0

[alias_cache]
backend = "bbolt"
path = "` + filepath.Join(dir, "aliases") + `"

[log]
level = "error"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// =============================================================================
// Commands
// =============================================================================

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "txsplain version "+rootCmd.Version)
}

func TestAliasesLifecycle(t *testing.T) {
	conf := testConfig(t)

	out, err := runCLI(t, "--conf", conf, "--no-color", "aliases", "lookup", gateway, "~bitstamp")
	require.NoError(t, err)
	assert.Equal(t, gateway+": ~bitstamp\n~bitstamp: "+gateway+"\n", out)

	// A later run reads the persisted entry.
	out, err = runCLI(t, "--conf", conf, "--no-color", "aliases", "list")
	require.NoError(t, err)
	assert.Contains(t, out, gateway)
	assert.Contains(t, out, "~bitstamp")

	_, err = runCLI(t, "--conf", conf, "--no-color", "aliases", "forget", gateway)
	require.NoError(t, err)

	out, err = runCLI(t, "--conf", conf, "--no-color", "aliases", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, gateway)
}

func TestExplainRejectsUnrecognizedInput(t *testing.T) {
	conf := testConfig(t)
	_, err := runCLI(t, "--conf", conf, "explain", "rNotAnAddress")
	assert.ErrorIs(t, err, query.ErrUnrecognized)
}

func TestBotRequiresToken(t *testing.T) {
	conf := testConfig(t)
	_, err := runCLI(t, "--conf", conf, "bot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot.token")
}

// =============================================================================
// Output
// =============================================================================

func TestWriteNarrativePlain(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })
	color.NoColor = true

	var out bytes.Buffer
	text := "Parties involved:\n  r1: ~alice\n\nThis is the account ~alice.\n"
	require.NoError(t, writeNarrative(&out, text))
	assert.Equal(t, text, out.String())
}

func TestWriteNarrativeHighlightsNames(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })
	color.NoColor = false

	var out bytes.Buffer
	require.NoError(t, writeNarrative(&out, "Parties involved:\n  r1: ~alice\n\nThis is ~alice's Offer #5.\n"))
	assert.Contains(t, out.String(), "\x1b[36m~alice\x1b[0m's Offer")
	assert.Contains(t, out.String(), "\x1b[1mParties involved:\x1b[0m")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.LogConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = newLogger(config.LogConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger(config.LogConfig{Level: "chatty"}, false)
	assert.Error(t, err)
}
