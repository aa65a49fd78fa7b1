package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDraftsAreIsolatedPerItem(t *testing.T) {
	s := New()

	s.Draft("evt_1").Text = "use postgres"
	s.Draft("evt_2").Text = "target arm64"

	if got := s.Draft("evt_1").Text; got != "use postgres" {
		t.Errorf("evt_1 draft = %q", got)
	}
	if got := s.Draft("evt_2").Text; got != "target arm64" {
		t.Errorf("evt_2 draft = %q", got)
	}

	s.ClearDraft("evt_1")
	if s.HasDraft("evt_1") {
		t.Error("evt_1 draft survived clear")
	}
	if !s.HasDraft("evt_2") {
		t.Error("clearing evt_1 also dropped evt_2's draft")
	}
}

func TestStageImageEncodesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("not-really-a-png"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New()
	if err := s.StageImage("evt_1", path); err != nil {
		t.Fatalf("stage image: %v", err)
	}

	d := s.Draft("evt_1")
	if len(d.Images) != 1 {
		t.Fatalf("staged %d images, want 1", len(d.Images))
	}
	img := d.Images[0]
	if img.ID == "" {
		t.Error("staged image has no id")
	}
	if img.Payload.Name != "shot.png" {
		t.Errorf("payload name = %q, want shot.png", img.Payload.Name)
	}
	if img.Payload.Data == "" {
		t.Error("payload data is empty")
	}

	s.UnstageImage("evt_1", img.ID)
	if len(s.Draft("evt_1").Images) != 0 {
		t.Error("unstage did not remove the image")
	}
}

func TestStageImageMissingFile(t *testing.T) {
	s := New()
	if err := s.StageImage("evt_1", "/no/such/file.png"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if len(s.Draft("evt_1").Images) != 0 {
		t.Error("failed staging still attached an image")
	}
}
