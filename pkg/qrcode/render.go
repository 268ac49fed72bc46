package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
)

// layout maps a module bitmap with margin onto a square canvas of size pixels.
// The canvas grows to one pixel per module when size is smaller than the grid.
type layout struct {
	bitmap [][]bool
	margin int
	size   int
	scale  int
	offset int
}

func newLayout(bitmap [][]bool, margin, size int) layout {
	modules := len(bitmap) + 2*margin
	if size < modules {
		size = modules
	}
	scale := size / modules
	return layout{
		bitmap: bitmap,
		margin: margin,
		size:   size,
		scale:  scale,
		offset: (size - modules*scale) / 2,
	}
}

// origin returns the top-left pixel of module (x, y) of the symbol.
func (l layout) origin(x, y int) (int, int) {
	return l.offset + (l.margin+x)*l.scale, l.offset + (l.margin+y)*l.scale
}

func (l layout) raster(fg, bg color.NRGBA) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, l.size, l.size), color.Palette{bg, fg})
	for y, row := range l.bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			px, py := l.origin(x, y)
			for dy := 0; dy < l.scale; dy++ {
				off := img.PixOffset(px, py+dy)
				for dx := 0; dx < l.scale; dx++ {
					img.Pix[off+dx] = 1
				}
			}
		}
	}
	return img
}

func encodePNG(l layout, fg, bg color.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, l.raster(fg, bg)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJPEG(l layout, fg, bg color.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, l.raster(fg, bg), &jpeg.Options{Quality: 95}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeSVG draws one path with a horizontal run per consecutive dark modules.
func encodeSVG(l layout, fg, bg color.NRGBA) []byte {
	fgHex, fgOpacity := svgColor(fg)
	bgHex, bgOpacity := svgColor(bg)

	var path strings.Builder
	for y, row := range l.bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			px, py := l.origin(start, y)
			fmt.Fprintf(&path, "M%d %dh%dv%dh-%dz", px, py, (x-start)*l.scale, l.scale, (x-start)*l.scale)
		}
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		l.size, l.size, l.size, l.size)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s" fill-opacity="%s"/>`, bgHex, bgOpacity)
	fmt.Fprintf(&b, `<path fill="%s" fill-opacity="%s" d="%s"/>`, fgHex, fgOpacity, path.String())
	b.WriteString("</svg>\n")
	return b.Bytes()
}
