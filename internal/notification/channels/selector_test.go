package channels

import (
	"reflect"
	"testing"

	"leadrouting_backend/internal/leads/domain"
)

var contacts = []domain.PreferredContact{domain.PreferredContactPhone, domain.PreferredContactEmail, domain.PreferredContactBoth}

func TestSelectCriticalAlwaysFull(t *testing.T) {
	want := []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard, domain.ChannelSMS, domain.ChannelPush, domain.ChannelCall}
	for _, c := range contacts {
		if got := Select(domain.PriorityCritical, c); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: expected %v, got %v", c, want, got)
		}
	}
}

func TestSelect(t *testing.T) {
	cases := []struct {
		priority domain.Priority
		contact  domain.PreferredContact
		want     []domain.Channel
	}{
		{domain.PriorityHigh, domain.PreferredContactPhone, []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard, domain.ChannelSMS, domain.ChannelPush}},
		{domain.PriorityHigh, domain.PreferredContactEmail, []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard, domain.ChannelPush}},
		{domain.PriorityHigh, domain.PreferredContactBoth, []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard, domain.ChannelPush}},
		{domain.PriorityMedium, domain.PreferredContactEmail, []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard}},
		{domain.PriorityMedium, domain.PreferredContactPhone, []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard}},
		{domain.PriorityLow, domain.PreferredContactBoth, []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard}},
	}

	for _, tc := range cases {
		if got := Select(tc.priority, tc.contact); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s/%s: expected %v, got %v", tc.priority, tc.contact, tc.want, got)
		}
	}
}

func TestSelectHasNoDuplicates(t *testing.T) {
	for _, p := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical} {
		for _, c := range contacts {
			seen := map[domain.Channel]bool{}
			for _, ch := range Select(p, c) {
				if seen[ch] {
					t.Fatalf("%s/%s: duplicate channel %s", p, c, ch)
				}
				seen[ch] = true
			}
		}
	}
}
