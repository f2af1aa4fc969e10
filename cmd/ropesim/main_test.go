package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestInspectPrintsEveryNode(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"inspect", "--rope", "rope.yaml", "--prefabs", t.TempDir()})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "material: cable/cable.vmt") {
		t.Fatalf("missing material line:\n%s", text)
	}
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		f := strings.Fields(line)
		if len(f) == 5 && f[0] != "node" {
			rows++
		}
	}
	if rows != 8 {
		t.Fatalf("printed %d node rows, want 8:\n%s", rows, text)
	}
}
