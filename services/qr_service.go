package services

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// GenerateQRPNG renders the QR payload as a PNG image
func GenerateQRPNG(data string) ([]byte, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// GenerateQRDataURL renders the QR payload as a base64 data URL, the format
// the mobile client displays directly
func GenerateQRDataURL(data string) (string, error) {
	png, err := GenerateQRPNG(data)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
