package services

import qrcode "github.com/skip2/go-qrcode"

// GenerateQRCode renders a URL into a PNG byte stream. Pure function.
func GenerateQRCode(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, 256)
}
