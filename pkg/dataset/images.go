package dataset

import (
	"encoding/base64"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
)

// Image is a raster image ready to be embedded in hover text.
type Image struct {
	MIME   string // e.g. "image/png"
	Base64 string // standard base64 encoding of the file contents
}

// DataURI returns the image as a data: URI.
func (img Image) DataURI() string {
	return "data:" + img.MIME + ";base64," + img.Base64
}

// ImageSet maps system names to images. The zero value is an empty set.
// An ImageSet is never modified after construction.
type ImageSet struct {
	byName map[string]Image
}

// NewImageSet builds an ImageSet from m. The map is copied.
func NewImageSet(m map[string]Image) ImageSet {
	return ImageSet{byName: maps.Clone(m)}
}

// Get returns the image for a system.
func (s ImageSet) Get(system string) (Image, bool) {
	img, ok := s.byName[system]
	return img, ok
}

// Len returns the number of systems with an image.
func (s ImageSet) Len() int { return len(s.byName) }

// Names returns the systems that have an image, sorted.
func (s ImageSet) Names() []string {
	return slices.Sorted(maps.Keys(s.byName))
}

// ImageRef is one row of the image mapping table.
type ImageRef struct {
	System string
	Path   string
}

// ReadImageMapping parses the system_name,image_path mapping table. Cells
// are returned as read; LoadImages decides which rows are usable.
func ReadImageMapping(r io.Reader) ([]ImageRef, error) {
	t, err := readTable(r, "system_images", ColSystemName, ColImagePath)
	if err != nil {
		return nil, err
	}
	out := make([]ImageRef, 0, len(t.rows))
	for i := range t.rows {
		out = append(out, ImageRef{System: t.cell(i, ColSystemName), Path: t.cell(i, ColImagePath)})
	}
	return out, nil
}

// EncodeImage sniffs the content type of data and base64-encodes it.
// Returns an ErrCodeInvalidImage error when data is not an image.
func EncodeImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, werrors.New(werrors.ErrCodeInvalidImage, "empty image")
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return Image{}, werrors.New(werrors.ErrCodeInvalidImage, "not an image (detected %s)", mime)
	}
	return Image{MIME: mime, Base64: base64.StdEncoding.EncodeToString(data)}, nil
}

// LoadImages reads the mapping table at path and every image it references.
// Relative image paths are resolved against the mapping file's directory.
//
// Images are decoration, so LoadImages never fails: a mapping file that is
// missing or malformed yields an empty set, and rows with a bad name, no
// path or an unreadable image are skipped. Each problem is logged as a
// warning.
func LoadImages(path string, logger *log.Logger) ImageSet {
	if logger == nil {
		logger = log.Default()
	}
	refs, err := readFile(path, ReadImageMapping)
	if err != nil {
		logger.Warn("skipping system images", "path", path, "err", err)
		return ImageSet{}
	}

	base := filepath.Dir(path)
	images := make(map[string]Image, len(refs))
	for _, ref := range refs {
		if err := werrors.ValidateName(ColSystemName, ref.System); err != nil {
			logger.Warn("skipping image row", "path", ref.Path, "err", werrors.UserMessage(err))
			continue
		}
		p := ref.Path
		if p == "" {
			logger.Warn("skipping image without path", "system", ref.System)
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		img, err := loadImage(p)
		if err != nil {
			logger.Warn("skipping system image", "system", ref.System, "path", p, "err", err)
			continue
		}
		images[ref.System] = img
	}
	return ImageSet{byName: images}
}

func loadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("read %s: %w", path, err)
	}
	return EncodeImage(data)
}

// DataURI returns the data: URI for a system's image, or "" when the system
// has none.
func (s ImageSet) DataURI(system string) string {
	img, ok := s.byName[system]
	if !ok {
		return ""
	}
	return img.DataURI()
}
