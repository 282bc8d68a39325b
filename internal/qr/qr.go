// Package qr builds the frequent-device deep links and renders them as
// scannable QR codes.
package qr

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered PNG edge in pixels, sized for camera capture.
const DefaultSize = 360

// Action names used in the deep-link convention.
const (
	ActionCheckin  = "checkin"
	ActionCheckout = "checkout"
)

// CheckinURL returns the stable deep link that performs a frequent
// computer's check-in without re-entering details.
func CheckinURL(origin, id string) string {
	return deepLink(origin, ActionCheckin, id)
}

// CheckoutURL returns the stable deep link that performs a frequent
// computer's check-out.
func CheckoutURL(origin, id string) string {
	return deepLink(origin, ActionCheckout, id)
}

func deepLink(origin, action, id string) string {
	return fmt.Sprintf("%s/frequent/qr/%s/%s", origin, action, url.PathEscape(id))
}

// PNG renders the content as a QR code PNG. size <= 0 uses DefaultSize.
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
