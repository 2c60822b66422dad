package domain

// Channel is a notification delivery medium.
type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelDashboard Channel = "dashboard"
	ChannelSMS       Channel = "sms"
	ChannelPush      Channel = "push"
	ChannelCall      Channel = "call"
)

// Channels lists every channel in canonical order.
var Channels = []Channel{ChannelEmail, ChannelDashboard, ChannelSMS, ChannelPush, ChannelCall}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	for _, known := range Channels {
		if c == known {
			return true
		}
	}
	return false
}

// Action is a one-tap follow-up offered to the agent.
type Action struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Action  string `json:"action"`
	Payload string `json:"payload"`
}

// NotificationContent is what the agent receives on every channel.
type NotificationContent struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Urgency Priority `json:"urgency"`
	Actions []Action `json:"actions"`
}

// RoutingPlan bundles everything the engine decided for one inquiry.
type RoutingPlan struct {
	InquiryID    string              `json:"inquiryId"`
	Score        LeadScore           `json:"score"`
	Notification NotificationContent `json:"notification"`
	Channels     []Channel           `json:"channels"`
	QuickReply   string              `json:"quickReply"`
}
