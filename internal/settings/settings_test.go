package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "settings-test")
	if err == nil {
		logging.Configure(filepath.Join(dir, "settings.log"))
	}
	code := m.Run()
	if err == nil {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

const groupedModel = `
variables:
  plain: {default: "x"}
  orgdir: {group: AO_INI, rename: org_dir, default: "true", values: ["false", "true"]}
items:
  main:
    ui: message
    variables:
      countdown: {group: main, default: "15", values: ["15", "4"]}
`

type fakeUI struct {
	*engine.Store
	refreshes int
}

func newFakeUI(m *engine.Model) *fakeUI {
	return &fakeUI{Store: engine.NewStoreFromModel(m)}
}

func (f *fakeUI) RefreshScreen() {
	f.refreshes++
}

func loadGrouped(t *testing.T) *engine.Model {
	t.Helper()
	m, err := engine.LoadModel([]byte(groupedModel))
	require.NoError(t, err)
	return m
}

func TestDefaultValues(t *testing.T) {
	m := loadGrouped(t)
	values := DefaultValues(m)
	require.Len(t, values, 3)
	b, ok := values["orgdir"].Bool()
	require.True(t, ok)
	require.True(t, b)
	n, ok := values["countdown"].Int()
	require.True(t, ok)
	require.Equal(t, 15, n)
	require.Equal(t, "x", values["plain"].String())
}

func TestVariablesWithGroup(t *testing.T) {
	m := loadGrouped(t)
	require.Equal(t, map[string]string{"orgdir": "org_dir"}, VariablesWithGroup(m, "ao_ini"))
	require.Equal(t, map[string]string{"countdown": "countdown"}, VariablesWithGroup(m, "MAIN"))
	require.Empty(t, VariablesWithGroup(m, "missing"))
	require.Equal(t, []string{"ao_ini", "main"}, Groups(m))
}

func TestRepositoryRoundTrip(t *testing.T) {
	m := loadGrouped(t)
	path := filepath.Join(t.TempDir(), "nested", "update_all.ini")
	repo := NewRepository(path, m)
	ui := newFakeUI(m)

	require.False(t, repo.Exists())
	dirty, err := repo.NeedsSave(ui)
	require.NoError(t, err)
	require.False(t, dirty, "defaults match a missing file")

	ui.Set("orgdir", false)
	dirty, err = repo.NeedsSave(ui)
	require.NoError(t, err)
	require.True(t, dirty)

	require.NoError(t, repo.Save(ui))
	require.True(t, repo.Exists())

	f, err := ini.Load(path)
	require.NoError(t, err)
	require.Equal(t, "false", f.Section("ao_ini").Key("org_dir").String())
	require.Equal(t, "15", f.Section("main").Key("countdown").String())
	require.False(t, f.Section("ao_ini").HasKey("plain"))

	dirty, err = repo.NeedsSave(ui)
	require.NoError(t, err)
	require.False(t, dirty)

	fresh := newFakeUI(m)
	require.NoError(t, repo.Load(fresh))
	require.Equal(t, "false", fresh.Get("orgdir").String())

	require.NoError(t, repo.Remove())
	require.False(t, repo.Exists())
	require.NoError(t, repo.Remove())
}

func TestRepositoryKeepsUnmanagedKeys(t *testing.T) {
	m := loadGrouped(t)
	path := filepath.Join(t.TempDir(), "update_all.ini")
	require.NoError(t, os.WriteFile(path, []byte("[main]\ncountdown = 4\nextra = kept\n"), 0o644))

	repo := NewRepository(path, m)
	ui := newFakeUI(m)
	require.NoError(t, repo.Load(ui))
	require.Equal(t, "4", ui.Get("countdown").String())

	require.NoError(t, repo.Save(ui))
	f, err := ini.Load(path)
	require.NoError(t, err)
	require.Equal(t, "kept", f.Section("main").Key("extra").String())
}

func TestEffects(t *testing.T) {
	m := loadGrouped(t)
	dir := t.TempDir()
	repo := NewRepository(filepath.Join(dir, "update_all.ini"), m)
	fx := NewEffects(repo, m, dir)
	ui := newFakeUI(m)
	require.NoError(t, fx.InitializeUI(ui))

	registry := engine.EffectRegistry{}
	fx.InitializeEffects(ui, registry)
	require.Equal(t, []string{
		"calculate_file_exists",
		"calculate_needs_save",
		"remove_file",
		"restore_defaults",
		"save",
	}, registry.Names())

	run := func(name string, params map[string]any) {
		t.Helper()
		require.NoError(t, registry[name](engine.Custom{Name: name, Params: params}))
	}

	ui.Set("countdown", 4)
	run("calculate_needs_save", nil)
	require.Equal(t, "true", ui.Get(NeedsSaveVariable).String())
	run("save", nil)
	require.Equal(t, "false", ui.Get(NeedsSaveVariable).String())

	run("restore_defaults", nil)
	require.Equal(t, "15", ui.Get("countdown").String())
	require.Equal(t, 1, ui.refreshes)

	target := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(target, []byte("names"), 0o644))
	run("calculate_file_exists", map[string]any{"target": "names.txt"})
	require.Equal(t, "true", ui.Get(FileExistsVariable).String())
	run("remove_file", map[string]any{"target": "names.txt"})
	_, err := os.Stat(target)
	require.True(t, os.IsNotExist(err))
	run("calculate_file_exists", map[string]any{"target": "names.txt"})
	require.Equal(t, "false", ui.Get(FileExistsVariable).String())

	err = registry["calculate_file_exists"](engine.Custom{Name: "calculate_file_exists"})
	require.Error(t, err)
}

func TestDefaultModelIsConsistent(t *testing.T) {
	m, err := DefaultModel()
	require.NoError(t, err)
	require.Contains(t, m.Items, DefaultEntry)

	for path, target := range engine.NavigateTargets(m) {
		if engine.IsReservedTarget(target) {
			continue
		}
		require.Contains(t, m.Items, target, "navigate at %s", path)
	}

	ui := newFakeUI(m)
	registry := engine.EffectRegistry{}
	NewEffects(NewRepository(filepath.Join(t.TempDir(), "x.ini"), m), m, t.TempDir()).InitializeEffects(ui, registry)
	require.NoError(t, engine.Validate(m, engine.ValidateOptions{KnownEffects: registry.Names()}))

	for id, s := range m.Items {
		in := engine.NewInterpolator(mergedFormatters(m, s), ui)
		_, err := in.Interpolate(s.Header)
		require.NoError(t, err, "header of %s", id)
		for _, e := range s.Entries {
			_, err := in.Interpolate(e.Description)
			require.NoError(t, err, "entry %q of %s", e.Title, id)
		}
	}
}

func mergedFormatters(m *engine.Model, s *engine.Screen) map[string]engine.Formatter {
	out := map[string]engine.Formatter{}
	for k, f := range m.Formatters {
		out[k] = f
	}
	for k, f := range s.Formatters {
		out[k] = f
	}
	return out
}
