package quickreply

import (
	"strings"
	"testing"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/platform/config"
)

func testProperty(priceType domain.PriceType, price float64) domain.PropertySummary {
	return domain.PropertySummary{Title: "Garden villa", Price: price, PriceType: priceType, Location: "Karen, Nairobi", Bedrooms: 3, Bathrooms: 2}
}

func testInquiry(t domain.InquiryType, contact domain.PreferredContact, phone string) domain.Inquiry {
	inq := domain.Inquiry{CustomerName: "Amina", Message: "Hello", InquiryType: t, PreferredContact: contact}
	if phone != "" {
		inq.CustomerPhone = &phone
	}
	return inq
}

func TestFormatPriceGroupsDigits(t *testing.T) {
	b := New(config.DefaultAgencyProfile(), "KE")

	if got := b.FormatPrice(testProperty(domain.PriceTypeSale, 20_000_000)); got != "GYD 20,000,000" {
		t.Fatalf("unexpected sale price %q", got)
	}
	if got := b.FormatPrice(testProperty(domain.PriceTypeRent, 85_000)); got != "GYD 85,000/month" {
		t.Fatalf("unexpected rent price %q", got)
	}
}

func TestFormatPriceFallsBackOnUnknownCurrency(t *testing.T) {
	profile := config.DefaultAgencyProfile()
	profile.Currency = "ZZZZ"
	b := New(profile, "KE")

	if got := b.FormatPrice(testProperty(domain.PriceTypeSale, 1500)); got != "GYD 1,500" {
		t.Fatalf("unexpected price %q", got)
	}
}

func TestBuildTypeSentences(t *testing.T) {
	b := New(config.DefaultAgencyProfile(), "KE")
	score := domain.LeadScore{Priority: domain.PriorityLow}

	cases := map[domain.InquiryType]string{
		domain.InquiryTypeOffer:       "ready to make an offer",
		domain.InquiryTypeViewing:     "available today or tomorrow",
		domain.InquiryTypeInformation: "provide detailed information",
		domain.InquiryTypeGeneral:     "excited to help",
	}
	for typ, want := range cases {
		reply := b.Build(testInquiry(typ, domain.PreferredContactEmail, ""), testProperty(domain.PriceTypeSale, 100), score)
		if !strings.Contains(reply, want) {
			t.Fatalf("%s: expected %q in reply:\n%s", typ, want, reply)
		}
	}
}

func TestBuildCallToAction(t *testing.T) {
	b := New(config.DefaultAgencyProfile(), "KE")
	property := testProperty(domain.PriceTypeSale, 100)

	cases := []struct {
		name     string
		inquiry  domain.Inquiry
		priority domain.Priority
		want     string
	}{
		{"critical with phone", testInquiry(domain.InquiryTypeOffer, domain.PreferredContactBoth, "0712 345 678"), domain.PriorityCritical, "within the next hour? I can call you at +254712345678."},
		{"critical without phone", testInquiry(domain.InquiryTypeOffer, domain.PreferredContactEmail, ""), domain.PriorityCritical, "I can call you at your convenience."},
		{"phone preference", testInquiry(domain.InquiryTypeViewing, domain.PreferredContactPhone, "0712345678"), domain.PriorityHigh, "convenient time for a quick call"},
		{"email preference", testInquiry(domain.InquiryTypeViewing, domain.PreferredContactEmail, ""), domain.PriorityMedium, "detailed email"},
		{"both preference", testInquiry(domain.InquiryTypeViewing, domain.PreferredContactBoth, "0712345678"), domain.PriorityLow, "detailed email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := b.Build(tc.inquiry, property, domain.LeadScore{Priority: tc.priority})
			if !strings.Contains(reply, tc.want) {
				t.Fatalf("expected %q in reply:\n%s", tc.want, reply)
			}
		})
	}
}

func TestBuildLayout(t *testing.T) {
	profile := config.AgencyProfile{AgencyName: "Acme Homes", Currency: "USD", Signature: []string{"Cheers,", "Acme Homes"}}
	b := New(profile, "US")

	reply := b.Build(
		testInquiry(domain.InquiryTypeInformation, domain.PreferredContactEmail, ""),
		testProperty(domain.PriceTypeRent, 2500),
		domain.LeadScore{Priority: domain.PriorityMedium},
	)

	if !strings.HasPrefix(reply, "Hi Amina,\n\n") {
		t.Fatalf("expected greeting first, got:\n%s", reply)
	}
	for _, want := range []string{
		"Property highlights:\n",
		"- Location: Karen, Nairobi\n",
		"- Price: USD 2,500/month\n",
		"- Bedrooms: 3 | Bathrooms: 2\n",
	} {
		if !strings.Contains(reply, want) {
			t.Fatalf("expected %q in reply:\n%s", want, reply)
		}
	}
	if !strings.HasSuffix(reply, "Cheers,\nAcme Homes") {
		t.Fatalf("expected signature last, got:\n%s", reply)
	}
}
