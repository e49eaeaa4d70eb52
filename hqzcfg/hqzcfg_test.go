// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package hqzcfg

import "testing"

func TestLoadKnownPresets(t *testing.T) {
	for _, name := range []string{"preview", "final"} {
		p, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if p.BatchSize <= 0 {
			t.Errorf("Load(%q).BatchSize = %d, want positive", name, p.BatchSize)
		}
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	if _, err := Load("nonexistent"); err == nil {
		t.Error("expected an error for an unknown preset name")
	}
}

func TestDefaultIsPreview(t *testing.T) {
	want, err := Load("preview")
	if err != nil {
		t.Fatalf("Load(preview) error: %v", err)
	}
	if got := Default(); got != want {
		t.Errorf("Default() = %+v, want %+v", got, want)
	}
}

func TestFinalHasLargerBatchThanPreview(t *testing.T) {
	preview, _ := Load("preview")
	final, _ := Load("final")
	if final.BatchSize <= preview.BatchSize {
		t.Errorf("final batch size (%d) should exceed preview (%d)", final.BatchSize, preview.BatchSize)
	}
}
