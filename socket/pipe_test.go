package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sutext.github.io/tether/xerr"
)

func TestPipeRecordsSends(t *testing.T) {
	p := NewPipe(Events{})
	require.NoError(t, p.Send([]byte("one")))
	require.NoError(t, p.Send([]byte("two")))
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, p.Sent())
}

func TestPipeSendAfterClose(t *testing.T) {
	p := NewPipe(Events{})
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Send([]byte("x")), xerr.SocketClosed)
	assert.True(t, p.Closed())
}

func TestPipeSignals(t *testing.T) {
	var opened int
	var failed, closed Socket
	var got []byte
	p := NewPipe(Events{
		OnOpen:    func() { opened++ },
		OnError:   func(s Socket) { failed = s },
		OnClosed:  func(s Socket) { closed = s },
		OnMessage: func(data []byte) { got = data },
	})
	p.Open()
	p.Fail()
	p.Drop()
	p.Inject([]byte("hello"))
	assert.Equal(t, 1, opened)
	assert.Same(t, p, failed)
	assert.Same(t, p, closed)
	assert.Equal(t, []byte("hello"), got)
}

func TestPipeFactoryReportsCreation(t *testing.T) {
	var made []*Pipe
	factory := PipeFactory(Events{}, func(p *Pipe) { made = append(made, p) })
	s1, err := factory()
	require.NoError(t, err)
	s2, err := factory()
	require.NoError(t, err)
	assert.Len(t, made, 2)
	assert.NotSame(t, s1, s2)
}

func TestEventsNilCallbacks(t *testing.T) {
	p := NewPipe(Events{})
	assert.NotPanics(t, func() {
		p.Open()
		p.Fail()
		p.Drop()
		p.Inject(nil)
	})
}
