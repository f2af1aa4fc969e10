package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestLoadEmbeddedRopePrefab(t *testing.T) {
	spec, err := LoadEntityBuildSpec("prefabs/rope.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "rope" {
		t.Fatalf("name = %q", spec.Name)
	}
	rc, err := DecodeComponentSpec[RopeComponentSpec](spec.Components["rope"])
	if err != nil {
		t.Fatalf("decode rope: %v", err)
	}
	if rc.Length != 1024 || rc.Segments != 8 || rc.Material != "cable/cable.vmt" {
		t.Fatalf("rope spec = %+v", rc)
	}
}

func TestDiskPrefabOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	body := []byte("name: rope\ncomponents:\n  rope:\n    length: 64\n    segments: 3\n")
	if err := os.WriteFile(filepath.Join(dir, "rope.yaml"), body, 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadEntityBuildSpec("rope.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rc, err := DecodeComponentSpec[RopeComponentSpec](spec.Components["rope"])
	if err != nil {
		t.Fatal(err)
	}
	if rc.Length != 64 || rc.Segments != 3 {
		t.Fatalf("disk copy not used: %+v", rc)
	}
	if _, ok := ModTime("rope.yaml"); !ok {
		t.Fatalf("expected a mod time for the disk copy")
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"breeze.tengo", "scripts/breeze.tengo", "prefabs/scripts/breeze.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("LoadScript(%q) returned an empty script", name)
		}
	}
}

func TestLoadMissingPrefab(t *testing.T) {
	if _, err := LoadEntityBuildSpec("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		event fsnotify.Event
		want  Change
		ok    bool
	}{
		{"yaml_write", fsnotify.Event{Name: "prefabs/rope.yaml", Op: fsnotify.Write}, Change{Name: "rope.yaml"}, true},
		{"yml_create", fsnotify.Event{Name: "/tmp/x/climber.YML", Op: fsnotify.Create}, Change{Name: "climber.YML"}, true},
		{"script", fsnotify.Event{Name: "prefabs/scripts/breeze.tengo", Op: fsnotify.Write}, Change{Name: "breeze.tengo", Script: true}, true},
		{"chmod_ignored", fsnotify.Event{Name: "rope.yaml", Op: fsnotify.Chmod}, Change{}, false},
		{"remove_ignored", fsnotify.Event{Name: "rope.yaml", Op: fsnotify.Remove}, Change{}, false},
		{"other_ext", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, Change{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := classify(c.event)
			if ok != c.ok || got != c.want {
				t.Fatalf("classify = %+v,%v want %+v,%v", got, ok, c.want, c.ok)
			}
		})
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "rope.yaml"), []byte("name: rope\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case c := <-w.Changes:
			if c.Name == "rope.yaml" && !c.Script {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-timeout:
			t.Fatalf("timed out waiting for change event")
		}
	}
}
