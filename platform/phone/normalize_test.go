package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"guyanese national", "609 1234", "GY", "+5926091234"},
		{"default region", "609 1234", "", "+5926091234"},
		{"kenyan national", "0712 345 678", "KE", "+254712345678"},
		{"already international", "+254712345678", "KE", "+254712345678"},
		{"dutch national", "06 12345678", "NL", "+31612345678"},
		{"blank", "   ", "KE", ""},
		{"garbage kept trimmed", "  not a number ", "KE", "not a number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164ForRegion(tc.input, tc.region); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeE164UsesGuyanaByDefault(t *testing.T) {
	if got := NormalizeE164("609-1234"); got != "+5926091234" {
		t.Fatalf("expected +5926091234, got %q", got)
	}
}

func TestTelLink(t *testing.T) {
	if got := TelLink("0712 345 678", "KE"); got != "tel:+254712345678" {
		t.Fatalf("expected tel:+254712345678, got %q", got)
	}
	if got := TelLink("", "KE"); got != "" {
		t.Fatalf("expected empty link for missing phone, got %q", got)
	}
}
