package idcard

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts holds the parsed typefaces used on the card. Hindi is optional; when
// nil, Devanagari lines are left out of the rendering.
type Fonts struct {
	Regular *opentype.Font
	Bold    *opentype.Font
	Mono    *opentype.Font
	Hindi   *opentype.Font
}

// LoadFonts parses the bundled Go fonts and, when hindiPath is set, a TrueType
// or OpenType font covering Devanagari.
func LoadFonts(hindiPath string) (*Fonts, error) {
	var (
		fs  Fonts
		err error
	)
	if fs.Regular, err = opentype.Parse(goregular.TTF); err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	if fs.Bold, err = opentype.Parse(gobold.TTF); err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	if fs.Mono, err = opentype.Parse(gomonobold.TTF); err != nil {
		return nil, fmt.Errorf("parse mono font: %w", err)
	}
	if hindiPath == "" {
		return &fs, nil
	}
	data, err := os.ReadFile(hindiPath)
	if err != nil {
		return nil, fmt.Errorf("read hindi font: %w", err)
	}
	if fs.Hindi, err = opentype.Parse(data); err != nil {
		return nil, fmt.Errorf("parse hindi font %s: %w", hindiPath, err)
	}
	return &fs, nil
}

type faceKind int

const (
	faceRegular faceKind = iota
	faceBold
	faceMono
	faceHindi
)

type faceKey struct {
	kind faceKind
	size float64
}

// faceSet creates font faces on demand. Faces keep glyph buffers and are not
// safe for concurrent use, so each rendering owns its own set.
type faceSet struct {
	fonts *Fonts
	cache map[faceKey]font.Face
}

func newFaceSet(fonts *Fonts) *faceSet {
	return &faceSet{fonts: fonts, cache: make(map[faceKey]font.Face)}
}

func (s *faceSet) get(kind faceKind, size float64) font.Face {
	key := faceKey{kind, size}
	if f, ok := s.cache[key]; ok {
		return f
	}
	var src *opentype.Font
	switch kind {
	case faceBold:
		src = s.fonts.Bold
	case faceMono:
		src = s.fonts.Mono
	case faceHindi:
		src = s.fonts.Hindi
	default:
		src = s.fonts.Regular
	}
	var face font.Face = basicfont.Face7x13
	if src != nil {
		f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			face = f
		}
	}
	s.cache[key] = face
	return face
}

func (s *faceSet) close() {
	for _, f := range s.cache {
		_ = f.Close()
	}
}
