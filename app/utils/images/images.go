// Package images stores uploaded catalog images, converting raster uploads
// to WebP where possible and falling back to the original bytes otherwise.
package images

import (
	"image"
	"image/draw"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const webpQuality = 85

// Extensions we attempt to decode and re-encode as WebP. Anything else is
// stored verbatim.
var convertibleExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".tiff": true,
}

// Save writes an uploaded file into dir under basename. When the original
// extension is a known raster format it re-encodes the image as
// <basename>.webp at fixed quality, preserving dimensions. On decode or
// encode failure, or for unrecognized extensions, the original bytes are
// stored under the original extension. The returned flag reports whether the
// WebP conversion happened so the caller can warn the user.
func Save(file io.ReadSeeker, originalName, dir, basename string) (string, bool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, err
	}

	ext := strings.ToLower(filepath.Ext(SecureFilename(originalName)))

	if convertibleExtensions[ext] {
		filename, err := convertToWebP(file, dir, basename)
		if err == nil {
			return filename, true, nil
		}
		log.Printf("images.Save: WebP conversion failed for %s: %v", originalName, err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", false, err
	}

	filename := basename + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", false, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", false, err
	}
	return filename, false, nil
}

func convertToWebP(file io.ReadSeeker, dir, basename string) (string, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return "", err
	}

	// Palette-mode images (GIFs mostly) carry transparency the encoder
	// cannot take directly; flatten onto full-color-plus-alpha first.
	if paletted, ok := img.(*image.Paletted); ok {
		nrgba := image.NewNRGBA(paletted.Bounds())
		draw.Draw(nrgba, paletted.Bounds(), paletted, paletted.Bounds().Min, draw.Src)
		img = nrgba
	}

	filename := basename + ".webp"
	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}

	if err := webp.Encode(out, img, &webp.Options{Quality: webpQuality}); err != nil {
		out.Close()
		os.Remove(fullPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(fullPath)
		return "", err
	}
	return filename, nil
}

// Remove deletes the stored file an image URL like "/uploads/product_3.webp"
// points at. A file that is already gone is not an error.
func Remove(dir, imageURL string) {
	name := SecureFilename(path.Base(imageURL))
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("images.Remove: failed to remove %s: %v", name, err)
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SecureFilename strips directory components and characters that are unsafe
// in a filename, so user-supplied names cannot escape the upload folder.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}
