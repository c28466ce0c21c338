package domain

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// RedemptionPath is the path the QR code and invitation email point at.
const RedemptionPath = "/accept"

// QRRenderer rasterizes content into a PNG QR code.
type QRRenderer interface {
	Render(content string) ([]byte, error)
}

// EncodeNickname returns the URL-safe base64 form of the nickname's UTF-8 bytes.
func EncodeNickname(nickname string) string {
	return base64.URLEncoding.EncodeToString([]byte(nickname))
}

// DecodeNickname reverses EncodeNickname. Padding is optional.
func DecodeNickname(encoded string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return "", ValidationError("malformed nickname encoding")
	}
	if !utf8.Valid(raw) {
		return "", ValidationError("nickname is not valid UTF-8")
	}
	return string(raw), nil
}

// BuildRedemptionURL returns {baseURL}/accept?nickname={b64(nickname)}&invite_code={code}.
func BuildRedemptionURL(baseURL, nickname, code string) (string, error) {
	if !utf8.ValidString(nickname) {
		return "", fmt.Errorf("%w: nickname is not valid UTF-8", ErrEncoding)
	}
	return strings.TrimRight(baseURL, "/") + RedemptionPath +
		"?nickname=" + url.QueryEscape(EncodeNickname(nickname)) +
		"&invite_code=" + url.QueryEscape(code), nil
}
