// Package channels decides which delivery channels a routed lead uses.
package channels

import "leadrouting_backend/internal/leads/domain"

// Select returns the de-duplicated channel set for a priority tier, in the
// canonical order of domain.Channels.
func Select(priority domain.Priority, preferred domain.PreferredContact) []domain.Channel {
	want := map[domain.Channel]bool{
		domain.ChannelEmail:     true,
		domain.ChannelDashboard: true,
	}

	switch priority {
	case domain.PriorityCritical:
		want[domain.ChannelSMS] = true
		want[domain.ChannelPush] = true
		want[domain.ChannelCall] = true
	case domain.PriorityHigh:
		want[domain.ChannelPush] = true
		if preferred == domain.PreferredContactPhone {
			want[domain.ChannelSMS] = true
		}
	}

	out := make([]domain.Channel, 0, len(want))
	for _, ch := range domain.Channels {
		if want[ch] {
			out = append(out, ch)
		}
	}
	return out
}
