package softui

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce   sync.Once
	namedFont  *truetype.Font
	fontErr    error
	faceCache  = map[int32]font.Face{}
	faceCacheM sync.Mutex
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		namedFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return namedFont, fontErr
}

func face(sizePx float64) (font.Face, error) {
	f, err := loadFont()
	if err != nil {
		return nil, err
	}
	key := int32(sizePx * 64)
	faceCacheM.Lock()
	defer faceCacheM.Unlock()
	if fc, ok := faceCache[key]; ok {
		return fc, nil
	}
	fc := truetype.NewFace(f, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faceCache[key] = fc
	return fc, nil
}

// Label is a single line of text over a solid background, vertically
// centered and horizontally aligned left.
type Label struct {
	Text       string
	TextSize   float64 // logical pixels; zero means 14
	Foreground color.Color
	Background color.Color
	PaddingX   int // logical pixels
}

func NewLabel(text string) *Label {
	return &Label{
		Text:       text,
		TextSize:   14,
		Foreground: color.White,
		Background: color.Black,
		PaddingX:   8,
	}
}

func (l *Label) Draw(canvas *image.RGBA, scale float32) {
	bg := l.Background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(canvas, canvas.Rect, image.NewUniform(bg), image.Point{}, draw.Src)

	if l.Text == "" {
		return
	}
	size := l.TextSize
	if size <= 0 {
		size = 14
	}
	fc, err := face(size * float64(scale))
	if err != nil {
		return
	}
	fg := l.Foreground
	if fg == nil {
		fg = color.White
	}

	metrics := fc.Metrics()
	height := canvas.Rect.Dy()
	baseline := fixed.I(height)/2 + (metrics.Ascent-metrics.Descent)/2
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(fg),
		Face: fc,
		Dot: fixed.Point26_6{
			X: fixed.I(int(float32(l.PaddingX) * scale)),
			Y: baseline,
		},
	}
	drawer.DrawString(l.Text)
}
