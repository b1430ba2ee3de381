package queue

import "encoding/json"

// Message describes a completed shortlist run for downstream consumers.
type Message struct {
	ProjectID         string `json:"projectId"`
	ActorID           string `json:"actorId"`
	TotalApplications int    `json:"totalApplications"`
	Shortlisted       int    `json:"shortlisted"`
	Dropped           int    `json:"dropped"`
	DurationMs        int64  `json:"durationMs"`
	EnqueuedAt        string `json:"enqueuedAt"`
	Version           int    `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
