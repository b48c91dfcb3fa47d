package services

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	// Register decoders for the accepted upload formats.
	_ "image/jpeg"

	"golang.org/x/image/draw"

	"github.com/karadenizdev/taskman-backend/internal/apperror"
)

// MaxAvatarBytes is the upload size ceiling for avatar images.
const MaxAvatarBytes = 1_000_000

// Avatars are normalized to a fixed square before storage.
const avatarDim = 250

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ProcessAvatar validates an uploaded image and returns it re-encoded as a
// 250x250 PNG. Constraint violations come back as payload errors.
func ProcessAvatar(filename string, data []byte) ([]byte, error) {
	if len(data) > MaxAvatarBytes {
		return nil, apperror.NewPayload("image must be smaller than 1MB")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExts[ext] {
		return nil, apperror.NewPayload("please upload a jpg, jpeg, or png image")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperror.NewPayload("uploaded file is not a valid image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarDim, avatarDim))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return buf.Bytes(), nil
}
