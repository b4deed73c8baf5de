package utils

import (
	"encoding/base64"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// BuildUPILink builds the upi://pay deeplink the customer opens in their
// UPI app. note ends up as the transaction remark, which helps the
// operator match the incoming payment to the request.
func BuildUPILink(upiID, payeeName string, amount float64, note string) string {
	params := url.Values{}
	params.Set("pa", upiID)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	if note != "" {
		params.Set("tn", note)
	}
	return "upi://pay?" + params.Encode()
}

// UPIQRCodeBase64 renders the deeplink as a PNG QR code, base64-encoded
// for embedding straight into a JSON response.
func UPIQRCodeBase64(upiLink string) (string, error) {
	png, err := qrcode.Encode(upiLink, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
