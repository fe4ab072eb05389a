package services

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

// testJPEG renders a noisy gradient so the encoder has real work to do.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 7 % 256),
				G: uint8(y * 13 % 256),
				B: uint8((x + y) * 3 % 256),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestPrepareImageRejectsNonImage(t *testing.T) {
	_, err := PrepareImage(strings.NewReader("hola"), "text/plain", 4)
	if err != ErrNotAnImage {
		t.Errorf("PrepareImage(text/plain) = %v, want ErrNotAnImage", err)
	}
}

func TestPrepareImageRejectsOversized(t *testing.T) {
	_, err := PrepareImage(bytes.NewReader(nil), "image/jpeg", MaxUploadBytes+1)
	if err != ErrImageTooLarge {
		t.Errorf("PrepareImage(11MB) = %v, want ErrImageTooLarge", err)
	}
}

func TestPrepareImageDownscalesLargePhotos(t *testing.T) {
	data := testJPEG(t, 2560, 1600)

	prepared, err := PrepareImage(bytes.NewReader(data), "image/jpeg", int64(len(data)))
	if err != nil {
		t.Fatalf("PrepareImage() = %v", err)
	}
	if prepared.ContentType != "image/jpeg" {
		t.Errorf("ContentType = %q, want image/jpeg", prepared.ContentType)
	}
	if prepared.OriginalSize != len(data) {
		t.Errorf("OriginalSize = %d, want %d", prepared.OriginalSize, len(data))
	}

	out, err := imaging.Decode(bytes.NewReader(prepared.Data))
	if err != nil {
		t.Fatalf("decoding prepared image: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() > 1920 || bounds.Dy() > 1920 {
		t.Errorf("prepared image is %dx%d, want max dimension 1920", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareImageKeepsSmallPhotosSmall(t *testing.T) {
	data := testJPEG(t, 640, 480)

	prepared, err := PrepareImage(bytes.NewReader(data), "image/jpeg", int64(len(data)))
	if err != nil {
		t.Fatalf("PrepareImage() = %v", err)
	}

	out, err := imaging.Decode(bytes.NewReader(prepared.Data))
	if err != nil {
		t.Fatalf("decoding prepared image: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 480 {
		t.Errorf("prepared image is %dx%d, want 640x480 unscaled", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareImagePassesThroughUndecodableBytes(t *testing.T) {
	garbage := []byte("definitivamente no es un jpeg")

	prepared, err := PrepareImage(bytes.NewReader(garbage), "image/jpeg", int64(len(garbage)))
	if err != nil {
		t.Fatalf("PrepareImage() = %v, want passthrough", err)
	}
	if !bytes.Equal(prepared.Data, garbage) {
		t.Error("passthrough altered the original bytes")
	}
	if prepared.ContentType != "image/jpeg" {
		t.Errorf("passthrough ContentType = %q, want the declared one", prepared.ContentType)
	}
}

func TestPreviewDataURL(t *testing.T) {
	prepared := &PreparedImage{Data: []byte{0xff, 0xd8}, ContentType: "image/jpeg"}
	got := prepared.PreviewDataURL()
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Errorf("PreviewDataURL() = %q, want data:image/jpeg;base64, prefix", got)
	}
}
