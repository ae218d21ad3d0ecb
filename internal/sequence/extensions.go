package sequence

import "strings"

// DefaultImageExtensions lists the image file formats recognised out of the
// box. Extension membership is checked case-insensitively.
var DefaultImageExtensions = []string{
	"bmp", "dpx", "exr", "gif", "hdr", "jpeg", "jpg", "pbm",
	"pgm", "ppm", "pcx", "pic", "png", "psd", "sgi", "tga",
	"tif", "tiff", "xbm",
}

// Filter decides which filename extensions are treated as image formats.
// The zero value admits nothing; construct one with AcceptAll or Only.
type Filter struct {
	acceptAll bool
	known     map[string]struct{}
}

// AcceptAll returns a filter that treats every extension as an image format.
func AcceptAll() Filter {
	return Filter{acceptAll: true}
}

// Only returns a filter admitting exactly the supplied extensions,
// compared case-insensitively.
func Only(extensions []string) Filter {
	known := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		known[strings.ToLower(ext)] = struct{}{}
	}
	return Filter{known: known}
}

// Default returns a filter admitting the default image extensions plus any
// additional ones supplied.
func Default(additional ...string) Filter {
	return Only(append(append([]string{}, DefaultImageExtensions...), additional...))
}

// Admits reports whether ext is an accepted image extension.
func (f Filter) Admits(ext string) bool {
	if f.acceptAll {
		return true
	}
	_, ok := f.known[strings.ToLower(ext)]
	return ok
}
