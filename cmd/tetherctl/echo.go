package main

import (
	"encoding/json"

	"github.com/google/uuid"
	"sutext.github.io/tether/correlator"
)

type frame struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Payload string `json:"payload,omitempty"`
}

// echoCommand sends an echo frame and correlates the reply by its id.
type echoCommand struct {
	id      string
	payload string
}

func newEchoCommand(payload string) *echoCommand {
	return &echoCommand{id: uuid.NewString(), payload: payload}
}

func (c *echoCommand) Execute(t correlator.Transport) (string, error) {
	data, err := json.Marshal(frame{ID: c.id, Kind: "echo", Payload: c.payload})
	if err != nil {
		return "", err
	}
	if err := t.Send(data); err != nil {
		return "", err
	}
	return c.id, nil
}

func (c *echoCommand) Match(data []byte) bool {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return false
	}
	return f.ID == c.id
}

func (c *echoCommand) HandleResponse(data []byte) (any, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Payload, nil
}

func heartbeatFrame() []byte {
	data, _ := json.Marshal(frame{Kind: "heartbeat"})
	return data
}
