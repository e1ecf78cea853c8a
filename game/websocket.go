package game

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait      = time.Minute
	writeWait     = 10 * time.Second
	maxFrameBytes = 4 << 20
)

type websocketConnection struct {
	socket    *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
}

func NewWebsocketConnection(conn *websocket.Conn) *websocketConnection {
	conn.SetReadLimit(maxFrameBytes)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(appData string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &websocketConnection{socket: conn}
}

func (wc *websocketConnection) Write(data []byte) error {
	wc.writeMu.Lock()
	defer wc.writeMu.Unlock()
	wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return wc.socket.WriteMessage(websocket.TextMessage, data)
}

func (wc *websocketConnection) Ping() error {
	wc.writeMu.Lock()
	defer wc.writeMu.Unlock()
	wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return wc.socket.WriteMessage(websocket.PingMessage, nil)
}

func (wc *websocketConnection) Read() ([]byte, error) {
	_, p, err := wc.socket.ReadMessage()
	return p, err
}

// Close sends a close frame carrying errCode as its reason. Safe to call from
// both pumps.
func (wc *websocketConnection) Close(errCode string) {
	wc.closeOnce.Do(func() {
		wc.writeMu.Lock()
		wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
		wc.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, errCode))
		wc.writeMu.Unlock()
		wc.socket.Close()
	})
}
