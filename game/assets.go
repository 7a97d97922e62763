package game

import (
	"bufio"
	"embed"
	"image/color"
	"io/fs"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

//go:embed assets/sprites.txt
var builtinAssets embed.FS

// BuiltinSpriteSheet is the path of the sprite sheet embedded in the binary.
const BuiltinSpriteSheet = "assets/sprites.txt"

// Sprite names the game needs.
const (
	ArtPlayer     = "player"
	ArtEnemy      = "enemy"
	ArtShotPlayer = "shot_player"
	ArtShotEnemy  = "shot_enemy"
	ArtExplosion  = "explosion"
)

var requiredArt = []string{ArtPlayer, ArtEnemy, ArtShotPlayer, ArtShotEnemy, ArtExplosion}

// Art is a small cell bitmap in a single color.
type Art struct {
	Name  string
	Color color.RGBA
	Rows  []string
}

func (a *Art) Width() int {
	w := 0
	for _, row := range a.Rows {
		w = max(w, len(row))
	}
	return w
}

func (a *Art) Height() int {
	return len(a.Rows)
}

// Cells calls fn for every filled cell, relative to the top-left corner.
func (a *Art) Cells(fn func(x, y int)) {
	for y, row := range a.Rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				fn(x, y)
			}
		}
	}
}

// Assets is the loaded sprite sheet.
type Assets struct {
	art map[string]*Art
}

// Art returns the sprite called name, or nil.
func (a *Assets) Art(name string) *Art {
	return a.art[name]
}

// Len returns the number of sprites.
func (a *Assets) Len() int {
	return len(a.art)
}

// LoadAssets reads a sprite sheet from fsys. Pass nil to use the embedded sheet.
func LoadAssets(fsys fs.FS, path string) (*Assets, error) {
	if fsys == nil {
		fsys, path = builtinAssets, BuiltinSpriteSheet
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open sprite sheet %s", path)
	}
	defer f.Close()

	assets, err := parseSpriteSheet(bufio.NewScanner(f))
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse sprite sheet %s", path)
	}

	for _, name := range requiredArt {
		if assets.Art(name) == nil {
			return nil, eris.Errorf("sprite sheet %s has no %q sprite", path, name)
		}
	}
	return assets, nil
}

func parseSpriteSheet(scanner *bufio.Scanner) (*Assets, error) {
	assets := &Assets{art: make(map[string]*Art)}
	var current *Art
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if current == nil && (text == "" || strings.HasPrefix(text, "#")) {
			continue
		}

		switch {
		case current == nil:
			fields := strings.Fields(text)
			if len(fields) != 3 || fields[0] != "sprite" {
				return nil, eris.Errorf("line %d: expected \"sprite <name> <color>\"", line)
			}
			c, err := parseColor(fields[2])
			if err != nil {
				return nil, eris.Wrapf(err, "line %d", line)
			}
			if _, dup := assets.art[fields[1]]; dup {
				return nil, eris.Errorf("line %d: sprite %q defined twice", line, fields[1])
			}
			current = &Art{Name: fields[1], Color: c}

		case text == "end":
			if len(current.Rows) == 0 {
				return nil, eris.Errorf("line %d: sprite %q is empty", line, current.Name)
			}
			assets.art[current.Name] = current
			current = nil

		default:
			if strings.Trim(text, "#.") != "" {
				return nil, eris.Errorf("line %d: art may only contain '#' and '.'", line)
			}
			current.Rows = append(current.Rows, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "failed to read sprite sheet")
	}
	if current != nil {
		return nil, eris.Errorf("sprite %q is missing its end line", current.Name)
	}
	return assets, nil
}

func parseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{}, eris.Errorf("color %q is not rrggbb", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, eris.Wrapf(err, "color %q", hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
