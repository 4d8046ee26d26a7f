package hooks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getlawrence/langreg/internal/languages"
	"github.com/getlawrence/langreg/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "init.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLua_SeesLanguageAndLogs(t *testing.T) {
	script := writeScript(t, `
log("init " .. language.name .. " " .. #language.extensions)
for i, ext in ipairs(language.extensions) do
  log(i .. ":" .. ext)
end
`)
	rec := &logger.Recorder{}
	hook := Lua(languages.Support{Name: "Go", Extensions: []string{"go", "mod"}}, script, rec)

	require.NoError(t, hook(context.Background()))
	assert.Equal(t, []string{"init Go 2", "1:go", "2:mod"}, rec.Lines())
}

func TestLua_ErrorWrapsScriptPath(t *testing.T) {
	script := writeScript(t, `error("boom")`)
	hook := Lua(languages.Support{Name: "Go"}, script, nil)

	err := hook(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), script)
	assert.Contains(t, err.Error(), "boom")
}

func TestLua_MissingScript(t *testing.T) {
	hook := Lua(languages.Support{Name: "Go"}, filepath.Join(t.TempDir(), "missing.lua"), nil)
	assert.Error(t, hook(context.Background()))
}

func TestLua_Sandboxed(t *testing.T) {
	for _, body := range []string{
		`os.exit(1)`,
		`io.write("x")`,
		`dofile("/etc/passwd")`,
	} {
		hook := Lua(languages.Support{Name: "Go"}, writeScript(t, body), nil)
		assert.Error(t, hook(context.Background()), body)
	}
}

func TestLua_CanceledContext(t *testing.T) {
	script := writeScript(t, `while true do end`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hook := Lua(languages.Support{Name: "Go"}, script, nil)
	assert.Error(t, hook(ctx))
}

func TestFactory_WiresManifest(t *testing.T) {
	script := writeScript(t, `log("ready " .. language.name)`)
	rec := &logger.Recorder{}

	reg := languages.NewRegistry()
	reg.Init()
	m := languages.NewManifest([]languages.ManifestEntry{{Name: "Go", Extensions: []string{"go"}, InitScript: script}}, "")
	require.NoError(t, m.Apply(reg, Factory(rec)))

	s, ok := reg.FindByExtension("go")
	require.True(t, ok)
	require.True(t, s.HasInit())
	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, []string{"ready Go"}, rec.Lines())
}
