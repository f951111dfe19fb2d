package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/sheet-scorer/internal/engine"
	"github.com/jonathan/sheet-scorer/internal/sheettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv serves one response sheet and one answer key, and writes a config
// file whose registry points at the key.
type testEnv struct {
	server     *httptest.Server
	configPath string
	sheetPath  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sheet := sheettest.Sheet{
		Date: "29/01/2025",
		Time: "9:00 AM - 12:00 PM",
		Questions: []sheettest.Question{
			sheettest.MCQ("101", "1011"),
			sheettest.MCQ("102", "1022"),
			sheettest.MCQ("103", "--"),
			sheettest.Numeric("104", "7"),
		},
	}
	html := sheet.HTML()
	key := `{"101": "1011", "102": "1021", "103": "1031", "104": "7"}`

	mux := http.NewServeMux()
	mux.HandleFunc("GET /sheet", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	})
	mux.HandleFunc("GET /key", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(key))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cfg := map[string]any{
		"registry":    map[string]string{"29s1": server.URL + "/key"},
		"band_size":   2,
		"band_labels": []string{"Part A", "Part B"},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	env := &testEnv{
		server:     server,
		configPath: filepath.Join(dir, "config.json"),
		sheetPath:  filepath.Join(dir, "sheet.html"),
	}
	require.NoError(t, os.WriteFile(env.configPath, data, 0o600))
	require.NoError(t, os.WriteFile(env.sheetPath, []byte(html), 0o600))
	return env
}

// execute runs the root command in-process with fresh flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath, verbose = "", false
	scoreFile, scoreJSON, scoreDetails = "", false, false
	resolveFile = ""
	servePort = 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestScoreCommand_URL(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "score", "--config", env.configPath, env.server.URL+"/sheet")
	require.NoError(t, err)

	assert.Contains(t, out, "Administration: 29s1")
	assert.Contains(t, out, "TOTAL: 7/16")
	assert.Contains(t, out, "Correct: 2")
	assert.Contains(t, out, "Incorrect: 1")
	assert.Contains(t, out, "Unattempted: 1")
	assert.Contains(t, out, "Part A: 3/8")
	assert.Contains(t, out, "Part B: 4/8")
}

func TestScoreCommand_File(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "score", "--config", env.configPath, "--file", env.sheetPath, "--details")
	require.NoError(t, err)

	assert.Contains(t, out, "TOTAL: 7/16")
	assert.Contains(t, out, "Part A")
}

func TestScoreCommand_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "score", "--config", env.configPath, "--file", env.sheetPath, "--json")
	require.NoError(t, err)

	var decoded struct {
		Administration string `json:"administration"`
		Report         struct {
			Total int `json:"total"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "29s1", decoded.Administration)
	assert.Equal(t, 7, decoded.Report.Total)
}

func TestScoreCommand_ArgumentErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no input",
			args:    []string{"score", "--config", env.configPath},
			wantErr: "either a URL argument or --file must be provided",
		},
		{
			name:    "both inputs",
			args:    []string{"score", "--config", env.configPath, "--file", env.sheetPath, env.server.URL + "/sheet"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing config",
			args:    []string{"score", "--config", filepath.Join(t.TempDir(), "nope.json"), env.server.URL + "/sheet"},
			wantErr: "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScoreCommand_InvalidURL(t *testing.T) {
	env := newTestEnv(t)

	_, err := execute(t, "score", "--config", env.configPath, "ftp://example.com/sheet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http")
}

func TestResolveCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "resolve", "--config", env.configPath, "--file", env.sheetPath)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("29s1\tshift=%s\tregistered=true\n", "first"), out)

	out, err = execute(t, "resolve", "--config", env.configPath, env.server.URL+"/sheet")
	require.NoError(t, err)
	assert.Contains(t, out, "29s1")
}

func TestResolveCommand_UsesConfiguredFetcher(t *testing.T) {
	html := sheettest.Sheet{
		Date:      "05/04/2025",
		Time:      "3:00 PM - 6:00 PM",
		Questions: []sheettest.Question{sheettest.MCQ("101", "1011")},
	}.HTML()

	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(map[string]any{
		"registry":   map[string]string{"05s2": server.URL + "/key"},
		"user_agent": "sheet-scorer-test/1.0",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := execute(t, "resolve", "--config", path, server.URL+"/sheet")
	require.NoError(t, err)
	assert.Equal(t, "05s2\tshift=second\tregistered=true\n", out)
	assert.Equal(t, "sheet-scorer-test/1.0", gotAgent)
}

func TestResolveCommand_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := execute(t, "resolve", "--config", env.configPath, "not a link")
	require.Error(t, err)
	assert.Equal(t, engine.KindInvalidURL, engine.KindOf(err))
	assert.Contains(t, err.Error(), "http:// or https://")

	_, err = execute(t, "resolve", "--config", env.configPath, env.server.URL+"/missing")
	require.Error(t, err)
	assert.Equal(t, engine.KindFetch, engine.KindOf(err))
}

func TestRegistryCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "registry", "--config", env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "29s1\t"+env.server.URL+"/key\n", out)
}

func TestLoadSettings_PortFromEnv(t *testing.T) {
	t.Setenv("SCORER_CONFIG", "")
	t.Setenv("SCORER_PORT", "9191")
	configPath = ""

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
	assert.Len(t, cfg.Registry, 20)

	t.Setenv("SCORER_PORT", "not-a-port")
	_, err = loadSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORER_PORT")
}
