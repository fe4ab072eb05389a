package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

const (
	// MaxUploadBytes is the hard ceiling on an incoming photo before any
	// processing happens.
	MaxUploadBytes = 10 << 20

	// Recompression target. Typical phone photos of 3-5MB land around
	// 200-500KB after the downscale.
	targetBytes  = 512 << 10
	maxDimension = 1920
)

var (
	ErrNotAnImage    = errors.New("solo se permiten imágenes (JPEG, PNG, WebP)")
	ErrImageTooLarge = errors.New("la imagen es demasiado grande, máximo 10MB")
)

// PreparedImage is a photo ready for upload: downscaled and re-encoded as
// JPEG when possible, the untouched original otherwise.
type PreparedImage struct {
	Data         []byte
	ContentType  string
	OriginalSize int
}

// PreviewDataURL returns an inline representation of the prepared photo,
// usable directly as an <img> source.
func (p *PreparedImage) PreviewDataURL() string {
	return "data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// PrepareImage validates and compresses a candidate photo. Inputs that do
// not declare an image media type or exceed MaxUploadBytes are rejected.
// Compression itself is best-effort: if the bytes cannot be decoded or
// re-encoded, the original passes through unchanged.
func PrepareImage(r io.Reader, contentType string, size int64) (*PreparedImage, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if size > MaxUploadBytes {
		return nil, ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		logrus.WithError(err).Warn("image decode failed, passing original through")
		return &PreparedImage{Data: data, ContentType: contentType, OriginalSize: len(data)}, nil
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	encoded, err := encodeUnderTarget(img)
	if err != nil {
		logrus.WithError(err).Warn("image encode failed, passing original through")
		return &PreparedImage{Data: data, ContentType: contentType, OriginalSize: len(data)}, nil
	}

	return &PreparedImage{Data: encoded, ContentType: "image/jpeg", OriginalSize: len(data)}, nil
}

// encodeUnderTarget re-encodes img as JPEG, stepping quality down until the
// result fits under targetBytes or the lowest step is reached.
func encodeUnderTarget(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	for _, quality := range []int{85, 75, 65, 55, 45} {
		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, err
		}
		if buf.Len() <= targetBytes {
			break
		}
	}
	return buf.Bytes(), nil
}
