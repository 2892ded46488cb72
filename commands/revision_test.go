package commands

import (
	"path/filepath"
	"testing"
)

func TestRevisionFile(t *testing.T) {
	cmd := Export{
		command: command{
			workdir: "/var/lib/anki-sheets",
		},
	}

	expected := filepath.Join("/var/lib/anki-sheets", "1Bxi.revision")
	if file := cmd.revisionFile("1Bxi"); file != expected {
		t.Errorf("Incorrect revision file - expected:%v, got:%v", expected, file)
	}
}

func TestStoreRevision(t *testing.T) {
	file := filepath.Join(t.TempDir(), "workdir", "1Bxi.revision")

	if _, err := loadRevision(file); err == nil {
		t.Errorf("Expected error for missing revision file")
	}

	if err := storeRevision(file, "1523"); err != nil {
		t.Fatalf("Error storing revision (%v)", err)
	}

	if revision, err := loadRevision(file); err != nil {
		t.Fatalf("Error loading revision (%v)", err)
	} else if revision != "1523" {
		t.Errorf("Incorrect revision - expected:%v, got:%v", "1523", revision)
	}

	if err := storeRevision(file, ""); err != nil {
		t.Fatalf("Error storing revision (%v)", err)
	}

	if _, err := loadRevision(file); err == nil {
		t.Errorf("Expected error for empty revision file")
	}
}
