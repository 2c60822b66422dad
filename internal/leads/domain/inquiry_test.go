package domain

import (
	"testing"

	"leadrouting_backend/platform/apperr"
)

func TestParseInquiryType(t *testing.T) {
	got, err := ParseInquiryType("  Offer ")
	if err != nil || got != InquiryTypeOffer {
		t.Fatalf("expected offer, got %q (err %v)", got, err)
	}

	if _, err := ParseInquiryType("complaint"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}

func TestParsePreferredContact(t *testing.T) {
	got, err := ParsePreferredContact("BOTH")
	if err != nil || got != PreferredContactBoth {
		t.Fatalf("expected both, got %q (err %v)", got, err)
	}

	if _, err := ParsePreferredContact("fax"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown contact, got %v", err)
	}
}

func TestInquiryHasPhoneIgnoresBlank(t *testing.T) {
	blank := "   "
	if (Inquiry{CustomerPhone: &blank}).HasPhone() {
		t.Fatalf("expected blank phone to count as absent")
	}
	if (Inquiry{}).HasPhone() {
		t.Fatalf("expected nil phone to count as absent")
	}
}

func TestScoreFactorsSumIncludesReservedSlot(t *testing.T) {
	f := ScoreFactors{InquiryType: 25, Timeline: 20, Communication: 15, PropertyMatch: 10, Engagement: 10}
	if f.Sum() != 80 {
		t.Fatalf("expected 80, got %d", f.Sum())
	}
}
