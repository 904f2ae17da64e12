// Package fonts keeps the font faces used for annotation text and chrome.
package fonts

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Built-in family names.
const (
	Proportional = "Proportional"
	Monospace    = "Monospace"
)

type faceKey struct {
	family string
	size   float64
}

// Registry maps family names to parsed fonts and caches sized faces.
type Registry struct {
	mu       sync.Mutex
	fonts    map[string]*opentype.Font
	families []string
	faces    map[faceKey]font.Face
}

// NewRegistry returns a registry holding the built-in Go fonts.
func NewRegistry() *Registry {
	r := &Registry{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	for _, b := range []struct {
		name string
		ttf  []byte
	}{
		{Proportional, goregular.TTF},
		{Monospace, gomono.TTF},
	} {
		f, err := opentype.Parse(b.ttf)
		if err != nil {
			log.Fatalf("parse font: %v", err)
		}
		r.add(b.name, f)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a shared registry with only the built-in fonts.
func Default() *Registry {
	defaultOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}

func (r *Registry) add(name string, f *opentype.Font) {
	key := strings.ToLower(name)
	if _, ok := r.fonts[key]; !ok {
		r.families = append(r.families, name)
	}
	r.fonts[key] = f
}

// Families lists the registered family names in registration order.
func (r *Registry) Families() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.families))
	copy(out, r.families)
	return out
}

// Has reports whether family is registered.
func (r *Registry) Has(family string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.fonts[strings.ToLower(family)]
	return ok
}

// Face returns a face for family at size pixels. Unknown families fall back
// to Proportional.
func (r *Registry) Face(family string, size float64) font.Face {
	if size < 1 {
		size = 1
	}
	size = math.Round(size*4) / 4
	r.mu.Lock()
	defer r.mu.Unlock()
	key := faceKey{strings.ToLower(family), size}
	if face, ok := r.faces[key]; ok {
		return face
	}
	f, ok := r.fonts[key.family]
	if !ok {
		f = r.fonts[strings.ToLower(Proportional)]
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face %s %.1f: %v", family, size, err)
		face, _ = opentype.NewFace(r.fonts[strings.ToLower(Proportional)], &opentype.FaceOptions{Size: size, DPI: 72})
	}
	r.faces[key] = face
	return face
}

// LoadFile registers the font stored at path under name. index selects the
// font inside a collection.
func (r *Registry) LoadFile(name, path string, index int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	if index < 0 || index >= coll.NumFonts() {
		index = 0
	}
	f, err := coll.Font(index)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	r.mu.Lock()
	r.add(name, f)
	r.mu.Unlock()
	return nil
}

// LoadSystem looks up each family in names among the installed system fonts
// and registers the regular face of every one found. Names that are not
// installed are logged and skipped; a font file that cannot be read is an
// error. cacheDir holds the fontscan index and may be empty.
func (r *Registry) LoadSystem(names []string, cacheDir string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if cacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cacheDir = dir
		}
	}
	footprints, err := fontscan.SystemFonts(nil, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("scan system fonts: %w", err)
	}
	var loaded []string
	for _, name := range names {
		fp, ok := pickFootprint(footprints, name)
		if !ok {
			log.Printf("font %q not found, skipping", name)
			continue
		}
		if err := r.LoadFile(fp.Family, fp.Location.File, int(fp.Location.Index)); err != nil {
			return loaded, err
		}
		loaded = append(loaded, fp.Family)
	}
	return loaded, nil
}

// pickFootprint prefers the upright regular member of the family.
func pickFootprint(fps []fontscan.Footprint, family string) (fontscan.Footprint, bool) {
	var matches []fontscan.Footprint
	for _, fp := range fps {
		if strings.EqualFold(fp.Family, family) {
			matches = append(matches, fp)
		}
	}
	if len(matches) == 0 {
		return fontscan.Footprint{}, false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return aspectScore(matches[i].Aspect) < aspectScore(matches[j].Aspect)
	})
	return matches[0], true
}

func aspectScore(a gtfont.Aspect) float64 {
	score := math.Abs(float64(a.Weight - gtfont.WeightNormal))
	if a.Style != gtfont.StyleNormal {
		score += 1000
	}
	return score
}
