package filestore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{Title: "Buy milk", Description: "2%", DueDate: "2025-10-10", Category: model.CategoryErrands, Priority: model.PriorityLow},
		{Title: "Ship release", DueDate: "2025-13-99", Category: model.CategoryWork, Priority: model.PriorityHigh, Completed: true},
		{Title: "Dentist", Description: "line one\nline two: \"quoted\"", DueDate: "2026-01-02", Category: model.CategoryHealth, Priority: model.PriorityMedium},
		{Title: "Café ☕", Description: "日本語 \u00e9", DueDate: "2026-02-03", Category: model.CategoryShopping, Priority: model.PriorityLow},
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("todolist.json"))
	assert.Equal(t, FormatJSON, FormatFor("todolist"))
	assert.Equal(t, FormatJSON, FormatFor("todolist.txt"))
	assert.Equal(t, FormatYAML, FormatFor("tasks.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("tasks.YML"))
	assert.Equal(t, FormatTOML, FormatFor("dir/tasks.toml"))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"tasks.json", "tasks.yaml", "tasks.toml"} {
		t.Run(name, func(t *testing.T) {
			s := New(filepath.Join(t.TempDir(), name))

			t.Run("empty", func(t *testing.T) {
				require.NoError(t, s.Save([]model.Task{}))
				got, err := s.Load()
				require.NoError(t, err)
				assert.Equal(t, []model.Task{}, got)
			})

			t.Run("nil saves as empty", func(t *testing.T) {
				require.NoError(t, s.Save(nil))
				got, err := s.Load()
				require.NoError(t, err)
				assert.Equal(t, []model.Task{}, got)
			})

			t.Run("n tasks", func(t *testing.T) {
				want := sampleTasks()
				require.NoError(t, s.Save(want))
				got, err := s.Load()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})

			t.Run("overwrite replaces", func(t *testing.T) {
				require.NoError(t, s.Save(sampleTasks()))
				want := sampleTasks()[1:2]
				require.NoError(t, s.Save(want))
				got, err := s.Load()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})
		})
	}
}

func TestSaveJSONShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todolist.json")
	s := New(path)

	require.NoError(t, s.Save(nil))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))

	require.NoError(t, s.Save(sampleTasks()[:1]))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"title": "Buy milk",
		"description": "2%",
		"due_date": "2025-10-10",
		"category": "ERRANDS",
		"priority": "Low",
		"completed": false
	}]`, string(b))
}

func TestSaveRejectsInvalidUTF8(t *testing.T) {
	for _, name := range []string{"tasks.json", "tasks.yaml", "tasks.toml"} {
		t.Run(name, func(t *testing.T) {
			s := New(filepath.Join(t.TempDir(), name))
			require.NoError(t, s.Save(sampleTasks()))

			for _, bad := range []model.Task{
				{Title: "bad\xffbyte", DueDate: "2025-10-10", Category: model.CategoryWork, Priority: model.PriorityLow},
				{Title: "ok", Description: "bad\xffbyte", DueDate: "2025-10-10", Category: model.CategoryWork, Priority: model.PriorityLow},
			} {
				err := s.Save(append(sampleTasks(), bad))
				require.Error(t, err)
				var ve *ValidationError
				require.True(t, errors.As(err, &ve), err.Error())
				assert.True(t, strings.HasPrefix(ve.Path, "[4]."), ve.Path)
			}

			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, sampleTasks(), got)
		})
	}
}

func TestSaveKeepsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todolist.json")
	s := New(path)
	require.NoError(t, s.Save(sampleTasks()))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, s.Save(sampleTasks()[:1]))
	fi, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestSaveFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real", "tasks.json")
	require.NoError(t, os.Mkdir(filepath.Dir(target), 0o755))
	require.NoError(t, New(target).Save(sampleTasks()))

	link := filepath.Join(dir, "todolist.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	want := sampleTasks()[:2]
	require.NoError(t, New(link).Save(want))

	fi, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink, "link replaced by a regular file")

	got, err := New(target).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todolist.json")
	s := New(path)

	_, err := s.Backup()
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	content := []byte(`[{"title":"x","priority":"low"}]`)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	dst, err := s.Backup()
	require.NoError(t, err)
	assert.Equal(t, path+".bak", dst)
	assert.Equal(t, dst, s.BackupPath())

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "todolist.json"))
	require.NoError(t, s.Save(sampleTasks()))
	require.NoError(t, s.Save(sampleTasks()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "todolist.json", entries[0].Name())
}

func TestSaveMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", "todolist.json"))
	err := s.Save(sampleTasks())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write file")
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "todolist.json"))
	got, err := s.Load()
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrCorrupt))
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todolist.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	got, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Task{}, got)
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantPath string
	}{
		{"garbage json", "t.json", "not json", ""},
		{"object not array", "t.json", `{"title":"x"}`, ""},
		{"trailing data", "t.json", `[] []`, ""},
		{"unknown category", "t.json", `[{"title":"x","description":"","due_date":"2025-10-10","category":"CHORES","priority":"Low","completed":false}]`, ""},
		{"blank title", "t.json", `[{"title":"  ","description":"","due_date":"2025-10-10","category":"WORK","priority":"Low","completed":false}]`, "[0].title"},
		{"bad due date", "t.json", `[
			{"title":"ok","description":"","due_date":"2025-10-10","category":"WORK","priority":"Low","completed":false},
			{"title":"x","description":"","due_date":"20251010","category":"WORK","priority":"Low","completed":false}]`, "[1].due_date"},
		{"lower-case priority", "t.json", `[{"title":"x","description":"","due_date":"2025-10-10","category":"WORK","priority":"low","completed":false}]`, "[0].priority"},
		{"missing category", "t.json", `[{"title":"x","description":"","due_date":"2025-10-10","priority":"Low","completed":false}]`, "[0].category"},
		{"garbage yaml", "t.yaml", "- title: [unclosed", ""},
		{"bad yaml priority", "t.yaml", "- title: x\n  due_date: \"2025-10-10\"\n  category: WORK\n  priority: urgent\n", "[0].priority"},
		{"garbage toml", "t.toml", "[[tasks]\n", ""},
		{"vertical tab title", "t.json", `[{"title":"\u000b","description":"","due_date":"2025-10-10","category":"WORK","priority":"Low","completed":false}]`, "[0].title"},
		{"no-break space title", "t.json", `[{"title":"\u00a0","description":"","due_date":"2025-10-10","category":"WORK","priority":"Low","completed":false}]`, "[0].title"},
		{"em space title", "t.json", `[
			{"title":"ok","description":"","due_date":"2025-10-10","category":"WORK","priority":"Low","completed":false},
			{"title":"\u2003","description":"","due_date":"2025-10-10","category":"WORK","priority":"Low","completed":false}]`, "[1].title"},
		{"em space yaml title", "t.yaml", "- title: \"\\u2003\"\n  due_date: \"2025-10-10\"\n  category: WORK\n  priority: Low\n", "[0].title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := New(path).Load()
			assert.Nil(t, got)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorrupt)

			if tt.wantPath != "" {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve), err.Error())
				assert.Equal(t, tt.wantPath, ve.Path)
			}
		})
	}
}

func TestLoadHandEditedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yml")
	content := strings.Join([]string{
		"- title: Water plants",
		"  description: front porch",
		"  due_date: 2025-06-01",
		"  category: personal",
		"  priority: High",
		"  completed: true",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Task{{
		Title:       "Water plants",
		Description: "front porch",
		DueDate:     "2025-06-01",
		Category:    model.CategoryPersonal,
		Priority:    model.PriorityHigh,
		Completed:   true,
	}}, got)
}

func TestJSONPointerToPath(t *testing.T) {
	assert.Equal(t, "", jsonPointerToPath(""))
	assert.Equal(t, "", jsonPointerToPath("#"))
	assert.Equal(t, "[3]", jsonPointerToPath("/3"))
	assert.Equal(t, "[0].due_date", jsonPointerToPath("/0/due_date"))
	assert.Equal(t, "a/b", jsonPointerToPath("/a~1b"))
}
