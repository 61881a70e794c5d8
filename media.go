package compro

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1920
	thumbWidth    = 400
	thumbHeight   = 300
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	thumbPrefix   = "thumb-"
)

// processImage decodes an image from src, resizes it down to maxImageWidth
// if needed, and encodes it as JPEG. Returns the dimensions and the encoded
// bytes.
func processImage(src io.Reader) (int, int, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return 0, 0, nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return w, h, buf.Bytes(), nil
}

// makeThumbnail scales-and-crops an already processed JPEG to the fixed
// thumbWidth x thumbHeight used by list views.
func makeThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Centre-crop to the thumbnail aspect ratio before scaling so the
	// result is never distorted.
	targetRatio := float64(thumbWidth) / float64(thumbHeight)
	srcRatio := float64(w) / float64(h)
	crop := bounds
	if srcRatio > targetRatio {
		cropW := int(float64(h) * targetRatio)
		x := bounds.Min.X + (w-cropW)/2
		crop = image.Rect(x, bounds.Min.Y, x+cropW, bounds.Max.Y)
	} else if srcRatio < targetRatio {
		cropH := int(float64(w) / targetRatio)
		y := bounds.Min.Y + (h-cropH)/2
		crop = image.Rect(bounds.Min.X, y, bounds.Max.X, y+cropH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	s := Slugify(base)
	if s == "" {
		s = "upload"
	}
	return s
}

// uniqueFilename returns a filename that does not collide on disk, suffixing
// with a short random id when the slugged name is taken.
func (a *App) uniqueFilename(base string) string {
	candidate := base + ".jpg"
	if _, err := os.Stat(filepath.Join(a.Config.UploadsDir, candidate)); errors.Is(err, os.ErrNotExist) {
		return candidate
	}
	return base + "-" + uuid.NewString()[:8] + ".jpg"
}

func (a *App) handleMediaUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No file provided")
	}
	if file.Size > maxUploadSize {
		return jsonError(c, http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	w, h, data, err := processImage(src)
	if err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid image", err.Error())
	}
	thumb, err := makeThumbnail(data)
	if err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid image", err.Error())
	}

	if err := os.MkdirAll(a.Config.UploadsDir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}

	filename := a.uniqueFilename(slugifyFilename(file.Filename))
	thumbName := thumbPrefix + filename

	if err := os.WriteFile(filepath.Join(a.Config.UploadsDir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.Config.UploadsDir, thumbName), thumb, 0o644); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}

	m := Media{
		Filename:     filename,
		Alt:          c.FormValue("alt"),
		URL:          "/media/" + filename,
		ThumbnailURL: "/media/" + thumbName,
		Width:        w,
		Height:       h,
		MimeType:     "image/jpeg",
		Size:         len(data),
	}
	if err := a.Store.CreateMedia(c.Request().Context(), &m); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (a *App) handleMediaList(c echo.Context) error {
	media, err := a.Store.ListMedia(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"docs":      media,
		"totalDocs": len(media),
	})
}

// handleMediaDelete removes the record and its files. Documents referencing
// the media id keep their reference; dangling references render as missing
// images, matching reference semantics elsewhere.
func (a *App) handleMediaDelete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Media not found")
	}

	ctx := c.Request().Context()
	m, err := a.Store.GetMedia(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Media not found")
		}
		return err
	}

	// Files already gone is not an error worth failing the delete over.
	_ = os.Remove(filepath.Join(a.Config.UploadsDir, m.Filename))
	_ = os.Remove(filepath.Join(a.Config.UploadsDir, thumbPrefix+m.Filename))

	if err := a.Store.DeleteMedia(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Media not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Media deleted successfully"})
}
