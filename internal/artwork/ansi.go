package artwork

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Renderer converts card images to ANSI art, keeping generated art in an
// on-disk cache keyed by image path, modification time and size
type Renderer struct {
	CacheDir string // empty disables the render cache
}

// NewRenderer returns a renderer caching under dir
func NewRenderer(dir string) *Renderer {
	return &Renderer{CacheDir: dir}
}

// Render returns the ANSI art for an image, width columns by height rows
func (r *Renderer) Render(imagePath string, width, height int) (string, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}

	cachePath := ""
	if r.CacheDir != "" {
		key := fmt.Sprintf("%s|%d|%dx%d", imagePath, info.ModTime().UnixNano(), width, height)
		cachePath = filepath.Join(r.CacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))

		// Check if we already have a cached version
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	art, err := RenderANSI(imagePath, width, height)
	if err != nil {
		return "", err
	}

	if cachePath != "" {
		if err := os.MkdirAll(r.CacheDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
		}
		if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
			return "", fmt.Errorf("failed to write ANSI art to file: %w", err)
		}
	}
	return art, nil
}

// RenderANSI decodes an image file and converts it without caching
func RenderANSI(imagePath string, width, height int) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return ImageToANSI(img, width, height), nil
}

// ImageToANSI converts an image to rows of upper-half-block characters,
// two pixel rows per text row
func ImageToANSI(img image.Image, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(colorAt(resized, x, y))
			col2, _ := colorful.MakeColor(colorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(colorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := toRGBA(averageColor(col1, col2))
			bg := toRGBA(averageColor(col3, col4))

			buffer.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
				fg.R, fg.G, fg.B, bg.R, bg.G, bg.B, '▀'))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// colorAt returns black outside the image bounds
func colorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// StripANSI removes SGR escape sequences from a string
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// VisibleWidth returns the number of runes shown for a line of ANSI art
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}
