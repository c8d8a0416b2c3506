package dataset

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestEncodeImage(t *testing.T) {
	img, err := EncodeImage(pngHeader)
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	if img.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", img.MIME)
	}
	if img.Base64 != base64.StdEncoding.EncodeToString(pngHeader) {
		t.Error("Base64 does not match input")
	}
	if !strings.HasPrefix(img.DataURI(), "data:image/png;base64,") {
		t.Errorf("DataURI = %q", img.DataURI())
	}
}

func TestEncodeImageRejectsNonImages(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("hello, world"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := EncodeImage(data)
			if !werrors.Is(err, werrors.ErrCodeInvalidImage) {
				t.Errorf("err = %v, want INVALID_IMAGE", err)
			}
		})
	}
}

func TestLoadImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crm.png", string(pngHeader))
	writeFile(t, dir, "broken.png", "not really a png")
	mapping := writeFile(t, dir, "system_images.csv", `system_name,image_path
CRM,crm.png
ERP,broken.png
Nexus,missing.png
`)

	var logs bytes.Buffer
	logger := log.New(&logs)

	set := LoadImages(mapping, logger)
	if set.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (names: %v)", set.Len(), set.Names())
	}
	if _, ok := set.Get("CRM"); !ok {
		t.Error("CRM image missing")
	}
	if _, ok := set.Get("ERP"); ok {
		t.Error("malformed ERP image should be skipped")
	}
	if got := strings.Count(logs.String(), "skipping system image"); got != 2 {
		t.Errorf("logged %d warnings, want 2:\n%s", got, logs.String())
	}
}

func TestLoadImagesDegrades(t *testing.T) {
	tests := []struct {
		name    string
		mapping string // "" means the mapping file does not exist
		want    []string
		warning string
	}{
		{
			name:    "missing mapping file",
			warning: "skipping system images",
		},
		{
			name:    "wrong header",
			mapping: "system,path\nCRM,crm.png\n",
			warning: "skipping system images",
		},
		{
			name:    "blank system name",
			mapping: "system_name,image_path\n,crm.png\nCRM,crm.png\n",
			want:    []string{"CRM"},
			warning: "skipping image row",
		},
		{
			name:    "control character in name",
			mapping: "system_name,image_path\n\"E\x01RP\",crm.png\nCRM,crm.png\n",
			want:    []string{"CRM"},
			warning: "skipping image row",
		},
		{
			name:    "blank path",
			mapping: "system_name,image_path\nERP,\nCRM,crm.png\n",
			want:    []string{"CRM"},
			warning: "skipping image without path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "crm.png", string(pngHeader))
			path := filepath.Join(dir, "system_images.csv")
			if tt.mapping != "" {
				writeFile(t, dir, "system_images.csv", tt.mapping)
			}

			var logs bytes.Buffer
			set := LoadImages(path, log.New(&logs))

			if got := set.Names(); len(got) != len(tt.want) || (len(got) > 0 && got[0] != tt.want[0]) {
				t.Errorf("Names = %v, want %v", got, tt.want)
			}
			if !strings.Contains(logs.String(), tt.warning) {
				t.Errorf("expected warning %q, got:\n%s", tt.warning, logs.String())
			}
		})
	}
}

func TestImageSetIsACopy(t *testing.T) {
	m := map[string]Image{"A": {MIME: "image/png", Base64: "AA=="}}
	set := NewImageSet(m)
	delete(m, "A")
	if _, ok := set.Get("A"); !ok {
		t.Error("ImageSet should not observe changes to the source map")
	}

	var zero ImageSet
	if zero.Len() != 0 {
		t.Error("zero ImageSet should be empty")
	}
	if _, ok := zero.Get("A"); ok {
		t.Error("zero ImageSet should have no entries")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
