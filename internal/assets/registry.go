// Package assets loads glyph sprites, the color palette and synthesized sound
// effects described by a YAML manifest.
package assets

import (
	"fmt"
	"image/color"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/nibolas/internal/anim"
	"github.com/vovakirdan/nibolas/internal/core"
)

// Manifest is the on-disk description of every asset.
type Manifest struct {
	Sheets  map[string]SheetSpec  `yaml:"sheets"`
	Palette map[string]SwatchSpec `yaml:"palette"`
	Sprites map[string]SpriteSpec `yaml:"sprites"`
	Sounds  map[string]ToneSpec   `yaml:"sounds"`
}

// SheetSpec points at a text sprite sheet.
type SheetSpec struct {
	File        string `yaml:"file"` // relative to the manifest
	Transparent string `yaml:"transparent"`
}

// SwatchSpec is one palette entry.
type SwatchSpec struct {
	Term string `yaml:"term"` // terminal color name
	RGBA string `yaml:"rgba"` // #rrggbb or #rrggbbaa
}

// SpriteSpec cuts frames out of a sheet.
type SpriteSpec struct {
	Sheet         string  `yaml:"sheet"`
	X             int     `yaml:"x"`
	Y             int     `yaml:"y"`
	W             int     `yaml:"w"`
	H             int     `yaml:"h"`
	Frames        int     `yaml:"frames"`
	FrameDuration float64 `yaml:"frame_duration"`
	Mode          string  `yaml:"mode"`
	Color         string  `yaml:"color"` // palette entry
}

// Sprite is one frame of glyphs. A zero rune is transparent.
type Sprite struct {
	Name  string
	Cells [][]rune // rows top to bottom
	Color core.Color
	RGBA  color.RGBA
}

// Width returns the frame width in cells.
func (s Sprite) Width() int {
	if len(s.Cells) == 0 {
		return 0
	}
	return len(s.Cells[0])
}

// Height returns the frame height in cells.
func (s Sprite) Height() int {
	return len(s.Cells)
}

// At returns the rune at a cell, wrapping both coordinates so a sprite can
// tile an area of any size.
func (s Sprite) At(col, row int) rune {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return 0
	}
	col = ((col % w) + w) % w
	row = ((row % h) + h) % h
	return s.Cells[row][col]
}

type swatch struct {
	term core.Color
	rgba color.RGBA
}

// Registry holds loaded assets. The zero value is not usable; call NewRegistry.
type Registry struct {
	sprites map[string]*anim.Animation[Sprite]
	palette map[string]swatch
	sounds  map[string][]byte
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Unload()
	return r
}

// Load reads the manifest and everything it references from fsys. On error
// the registry keeps its previous contents.
func (r *Registry) Load(fsys fs.FS, manifest string) error {
	data, err := fs.ReadFile(fsys, manifest)
	if err != nil {
		return fmt.Errorf("assets: cannot read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("assets: cannot parse %s: %w", manifest, err)
	}

	palette := make(map[string]swatch, len(m.Palette))
	for name, spec := range m.Palette {
		sw, err := parseSwatch(spec)
		if err != nil {
			return fmt.Errorf("assets: palette %q: %w", name, err)
		}
		palette[name] = sw
	}

	sheets := make(map[string][][]rune, len(m.Sheets))
	for name, spec := range m.Sheets {
		raw, err := fs.ReadFile(fsys, path.Join(path.Dir(manifest), spec.File))
		if err != nil {
			return fmt.Errorf("assets: sheet %q: %w", name, err)
		}
		sheets[name] = parseSheet(string(raw), spec.Transparent)
	}

	sprites := make(map[string]*anim.Animation[Sprite], len(m.Sprites))
	for name, spec := range m.Sprites {
		sheet, ok := sheets[spec.Sheet]
		if !ok {
			return fmt.Errorf("assets: sprite %q: unknown sheet %q", name, spec.Sheet)
		}
		sw, ok := palette[spec.Color]
		if spec.Color != "" && !ok {
			return fmt.Errorf("assets: sprite %q: unknown color %q", name, spec.Color)
		}
		frames, err := sliceFrames(sheet, spec)
		if err != nil {
			return fmt.Errorf("assets: sprite %q: %w", name, err)
		}
		out := make([]Sprite, len(frames))
		for i, cells := range frames {
			out[i] = Sprite{Name: name, Cells: cells, Color: sw.term, RGBA: sw.rgba}
		}
		sprites[name] = anim.New(spec.FrameDuration, anim.ParsePlayMode(spec.Mode), out...)
	}

	sounds := make(map[string][]byte, len(m.Sounds))
	for name, spec := range m.Sounds {
		pcm, err := Synthesize(spec)
		if err != nil {
			return fmt.Errorf("assets: sound %q: %w", name, err)
		}
		sounds[name] = pcm
	}

	r.sprites = sprites
	r.palette = palette
	r.sounds = sounds
	return nil
}

// Unload drops every asset.
func (r *Registry) Unload() {
	r.sprites = make(map[string]*anim.Animation[Sprite])
	r.palette = make(map[string]swatch)
	r.sounds = make(map[string][]byte)
}

// Sprite returns the first frame of a sprite.
func (r *Registry) Sprite(name string) (Sprite, bool) {
	a, ok := r.sprites[name]
	if !ok || a.Len() == 0 {
		return Sprite{}, false
	}
	return a.KeyFrame(0), true
}

// Animation returns the frames of a sprite.
func (r *Registry) Animation(name string) (*anim.Animation[Sprite], bool) {
	a, ok := r.sprites[name]
	return a, ok
}

// Color returns the terminal color of a palette entry, ColorDefault if unknown.
func (r *Registry) Color(name string) core.Color {
	return r.palette[name].term
}

// RGBA returns the window color of a palette entry, opaque white if unknown.
func (r *Registry) RGBA(name string) color.RGBA {
	sw, ok := r.palette[name]
	if !ok {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return sw.rgba
}

// Sound returns the PCM bytes of a sound effect.
func (r *Registry) Sound(name string) ([]byte, bool) {
	b, ok := r.sounds[name]
	return b, ok
}

// SpriteNames returns the loaded sprite names, sorted.
func (r *Registry) SpriteNames() []string {
	names := make([]string, 0, len(r.sprites))
	for name := range r.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SoundNames returns the loaded sound names, sorted.
func (r *Registry) SoundNames() []string {
	names := make([]string, 0, len(r.sounds))
	for name := range r.sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseSheet splits a sheet into rows padded to the widest one. Transparent
// runes and padding become zero.
func parseSheet(raw, transparent string) [][]rune {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	width := 0
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(strings.TrimRight(line, "\r"))
		width = max(width, len(rows[i]))
	}

	var clearRune rune
	if transparent != "" {
		clearRune = []rune(transparent)[0]
	}
	for i, row := range rows {
		padded := make([]rune, width)
		for j, ch := range row {
			if ch == ' ' || (clearRune != 0 && ch == clearRune) {
				continue
			}
			padded[j] = ch
		}
		rows[i] = padded
	}
	return rows
}

func sliceFrames(sheet [][]rune, spec SpriteSpec) ([][][]rune, error) {
	if spec.W <= 0 || spec.H <= 0 {
		return nil, fmt.Errorf("frame size %dx%d must be positive", spec.W, spec.H)
	}
	frames := max(spec.Frames, 1)
	if spec.X < 0 || spec.Y < 0 || spec.Y+spec.H > len(sheet) {
		return nil, fmt.Errorf("rows %d..%d outside sheet of %d rows", spec.Y, spec.Y+spec.H, len(sheet))
	}
	if width := len(sheet[0]); spec.X+frames*spec.W > width {
		return nil, fmt.Errorf("%d frames from column %d exceed sheet width %d", frames, spec.X, width)
	}

	out := make([][][]rune, frames)
	for f := range frames {
		x0 := spec.X + f*spec.W
		cells := make([][]rune, spec.H)
		for row := range spec.H {
			cells[row] = append([]rune(nil), sheet[spec.Y+row][x0:x0+spec.W]...)
		}
		out[f] = cells
	}
	return out, nil
}

func parseSwatch(spec SwatchSpec) (swatch, error) {
	var sw swatch
	if spec.Term != "" {
		c, ok := core.ParseColor(spec.Term)
		if !ok {
			return sw, fmt.Errorf("unknown terminal color %q", spec.Term)
		}
		sw.term = c
	}
	rgba, err := parseHex(spec.RGBA)
	if err != nil {
		return sw, err
	}
	sw.rgba = rgba
	return sw, nil
}

func parseHex(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if s == "" {
		c.R, c.G, c.B = 0xff, 0xff, 0xff
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("bad length")
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
