package utils

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
)

func TestBuildUPILink(t *testing.T) {
	link := BuildUPILink("matratv@ybl", "MatraTV Connect", 590, "PAY-123")

	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("link %q missing upi://pay scheme", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("pa") != "matratv@ybl" {
		t.Fatalf("pa = %q", q.Get("pa"))
	}
	if q.Get("pn") != "MatraTV Connect" {
		t.Fatalf("pn = %q", q.Get("pn"))
	}
	if q.Get("am") != "590.00" {
		t.Fatalf("am = %q, want 590.00", q.Get("am"))
	}
	if q.Get("cu") != "INR" {
		t.Fatalf("cu = %q, want INR", q.Get("cu"))
	}
	if q.Get("tn") != "PAY-123" {
		t.Fatalf("tn = %q", q.Get("tn"))
	}
}

func TestBuildUPILink_OmitsEmptyNote(t *testing.T) {
	link := BuildUPILink("matratv@ybl", "MatraTV Connect", 249, "")
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if u.Query().Has("tn") {
		t.Fatalf("empty note should not be encoded: %q", link)
	}
}

func TestUPIQRCodeBase64(t *testing.T) {
	encoded, err := UPIQRCodeBase64("upi://pay?pa=matratv%40ybl&am=590.00&cu=INR")
	if err != nil {
		t.Fatalf("UPIQRCodeBase64: %v", err)
	}
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("output is not valid base64: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Fatal("decoded payload is not a PNG")
	}
}
