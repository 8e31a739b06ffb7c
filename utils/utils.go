package utils

import (
	"bytes"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
)

// Sha512String hashes and encodes in hex the result
func Sha512String(s string) string {
	hash := sha512.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}

func RandSalt(saltSize int) string {
	b := make([]byte, saltSize)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

type ImageResized struct {
	Size int64
	NewX uint16
	NewY uint16
	OldX uint16
	OldY uint16
}

// ResizeImage decodes the image from reader, resizes it to width x height
// and writes the result as PNG. A zero height keeps the aspect ratio
// (width-bound); non-zero width and height produce exactly that size.
func ResizeImage(width, height uint, reader io.Reader, writer io.Writer) (result ImageResized, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	newImage := resize.Resize(width, height, img, resize.Lanczos3)
	var newBuf bytes.Buffer
	if err = png.Encode(&newBuf, newImage); err != nil {
		return
	}
	imageRect := newImage.Bounds().Size()
	result.NewX = uint16(imageRect.X)
	result.NewY = uint16(imageRect.Y)

	imageRect = img.Bounds().Size()
	result.OldX = uint16(imageRect.X)
	result.OldY = uint16(imageRect.Y)

	result.Size, err = io.Copy(writer, &newBuf)
	return
}
