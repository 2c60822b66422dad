package scheduler

import (
	"encoding/json"

	"leadrouting_backend/internal/leads/domain"

	"github.com/hibiken/asynq"
)

const TaskNotificationDispatch = "notification.dispatch"

const TaskAgentCallback = "agents.callback"

type NotificationDispatchPayload struct {
	InquiryID string                     `json:"inquiryId"`
	AgentID   string                     `json:"agentId"`
	Priority  domain.Priority            `json:"priority"`
	Recipient domain.Recipient           `json:"recipient"`
	Content   domain.NotificationContent `json:"content"`
	Channels  []domain.Channel           `json:"channels"`
}

type AgentCallbackPayload struct {
	InquiryID  string          `json:"inquiryId"`
	AgentID    string          `json:"agentId"`
	AgentPhone string          `json:"agentPhone"`
	Urgency    domain.Priority `json:"urgency"`
	Message    string          `json:"message"`
}

func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, data), nil
}

func ParseNotificationDispatchPayload(task *asynq.Task) (NotificationDispatchPayload, error) {
	var payload NotificationDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NotificationDispatchPayload{}, err
	}
	return payload, nil
}

func NewAgentCallbackTask(payload AgentCallbackPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAgentCallback, data), nil
}

func ParseAgentCallbackPayload(task *asynq.Task) (AgentCallbackPayload, error) {
	var payload AgentCallbackPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AgentCallbackPayload{}, err
	}
	return payload, nil
}
