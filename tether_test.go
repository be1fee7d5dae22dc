package tether

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sutext.github.io/tether/correlator"
	"sutext.github.io/tether/socket"
	"sutext.github.io/tether/supervisor"
)

type pingCmd struct {
	id string
}

func (c *pingCmd) Execute(t correlator.Transport) (string, error) {
	payload, _ := json.Marshal(map[string]string{"id": c.id, "kind": "ping"})
	if err := t.Send(payload); err != nil {
		return "", err
	}
	return c.id, nil
}

func (c *pingCmd) Match(data []byte) bool {
	var env struct {
		ID string `json:"id"`
	}
	return json.Unmarshal(data, &env) == nil && env.ID == c.id
}

func (c *pingCmd) HandleResponse(data []byte) (any, error) {
	return string(data), nil
}

func TestLinkEndToEnd(t *testing.T) {
	var mu sync.Mutex
	var pipes []*socket.Pipe
	l := NewLink(func(ev socket.Events) socket.Factory {
		return socket.PipeFactory(ev, func(p *socket.Pipe) {
			mu.Lock()
			pipes = append(pipes, p)
			mu.Unlock()
		})
	})
	var unsolicited [][]byte
	l.Supervisor.Hub().Subscribe(EventUnsolicited, func(p any) {
		unsolicited = append(unsolicited, p.([]byte))
	})

	require.NoError(t, l.Supervisor.Activate())
	defer l.Supervisor.Shutdown()
	mu.Lock()
	pipe := pipes[0]
	mu.Unlock()
	pipe.Open()

	deadline := time.Now().Add(time.Second)
	for l.Supervisor.State() != supervisor.StateConnected && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond * 2)
	}
	require.Equal(t, supervisor.StateConnected, l.Supervisor.State())

	fut, err := l.Correlator.Issue(&pingCmd{id: "7"})
	require.NoError(t, err)
	require.Len(t, pipe.Sent(), 1)

	// unmatched traffic surfaces as an unsolicited event
	pipe.Inject([]byte(`{"id":"other"}`))
	assert.Len(t, unsolicited, 1)

	pipe.Inject([]byte(`{"id":"7","ok":true}`))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := fut.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"7","ok":true}`, v)
	assert.Len(t, unsolicited, 1, "a matched response is not unsolicited")
}
