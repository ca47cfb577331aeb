package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialChannel spins up a WebSocket server whose connection is wrapped in a
// ClientChannel, and returns both ends.
func dialChannel(t *testing.T) (*ClientChannel, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	channels := make(chan *ClientChannel, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		channels <- NewClientChannel(conn, clockwork.NewRealClock(), time.Second)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return <-channels, client
}

func TestClientChannel_SendDeliversToPeer(t *testing.T) {
	ch, client := dialChannel(t)
	defer func() { _ = ch.Close() }()

	require.NoError(t, ch.Send([]byte(`{"event":"ISSUE_CREATED"}`)))

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, msg, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, `{"event":"ISSUE_CREATED"}`, string(msg))
}

func TestClientChannel_SendAfterCloseFails(t *testing.T) {
	ch, _ := dialChannel(t)

	require.NoError(t, ch.Close())
	assert.ErrorIs(t, ch.Send([]byte("late")), ErrChannelClosed)

	// Close is safe to repeat.
	require.NoError(t, ch.Close())
}

func TestClientChannel_CloseSendsCloseFrame(t *testing.T) {
	ch, client := dialChannel(t)

	require.NoError(t, ch.Close())

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := client.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}
