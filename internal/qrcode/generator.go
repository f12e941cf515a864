// Package qrcode renders tracking URLs as PNG QR codes.
package qrcode

import (
	"errors"
	skipqrcode "github.com/skip2/go-qrcode"
	"strings"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

const DefaultSize = 256

// Generate encodes content as a PNG image with medium error recovery.
// A non-positive size falls back to DefaultSize.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// EncoderInterface lets controllers swap the encoder in tests.
type EncoderInterface interface {
	Encode(content string, size int) ([]byte, error)
}

type PngEncoder struct{}

func (PngEncoder) Encode(content string, size int) ([]byte, error) {
	return Generate(content, size)
}

func NewPngEncoder() EncoderInterface {
	return PngEncoder{}
}
