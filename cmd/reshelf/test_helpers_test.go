package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"reshelf/internal/config"
)

type moveCall struct {
	FileID   string
	Folder   string
	Basename string
}

// stubCatalog is an httptest GraphQL endpoint serving a fixed scene and
// recording move mutations.
type stubCatalog struct {
	mu    sync.Mutex
	scene map[string]any
	moves []moveCall
}

func (s *stubCatalog) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch {
		case strings.Contains(req.Query, "FindScene"):
			s.mu.Lock()
			scene := s.scene
			s.mu.Unlock()
			writeGraphQL(w, map[string]any{"findScene": scene})
		case strings.Contains(req.Query, "FindStudio"):
			writeGraphQL(w, map[string]any{"findStudio": nil})
		case strings.Contains(req.Query, "MoveFiles"):
			input, _ := req.Variables["input"].(map[string]any)
			ids, _ := input["ids"].([]any)
			id := ""
			if len(ids) > 0 {
				id, _ = ids[0].(string)
			}
			folder, _ := input["destination_folder"].(string)
			basename, _ := input["destination_basename"].(string)
			s.mu.Lock()
			s.moves = append(s.moves, moveCall{FileID: id, Folder: folder, Basename: basename})
			s.mu.Unlock()
			writeGraphQL(w, map[string]any{"moveFiles": true})
		default:
			// Version query issued by preflight.
			writeGraphQL(w, map[string]any{"version": map[string]any{"version": "test"}})
		}
	}
}

func writeGraphQL(w http.ResponseWriter, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	libraryDir string
	catalog    *stubCatalog
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("STASH_API_KEY", "")

	stub := &stubCatalog{}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	library := filepath.Join(base, "library")
	if err := os.MkdirAll(library, 0o755); err != nil {
		t.Fatalf("create library dir: %v", err)
	}

	cfgVal := config.Default()
	cfgVal.Stash.URL = server.URL
	cfgVal.Templates.Directory = library + "/$studio_name$"
	cfgVal.Templates.Filename = "$title$.$ext$"
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfg := &cfgVal

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		libraryDir: library,
		catalog:    stub,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// setScene installs the scene payload served by the stub catalog. The file
// list is built from paths created on disk by the caller.
func (e *cliTestEnv) setScene(title, studio string, paths ...string) {
	files := make([]map[string]any, 0, len(paths))
	for i, p := range paths {
		files = append(files, map[string]any{
			"id":       fmt.Sprintf("file-%d", i+1),
			"path":     p,
			"basename": filepath.Base(p),
		})
	}
	e.catalog.mu.Lock()
	e.catalog.scene = map[string]any{
		"id":    "scene-1",
		"title": title,
		"studio": map[string]any{
			"id":   "studio-1",
			"name": studio,
		},
		"files": files,
	}
	e.catalog.mu.Unlock()
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}
