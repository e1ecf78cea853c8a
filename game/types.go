package game

import (
	"time"

	"doodleparty/canvas"
)

type RoomPhase int

const (
	PHASE_LOBBY RoomPhase = iota
	PHASE_PLAYING
)

const (
	DefaultMaxPlayers = 12
	GameTypeDrawing   = "drawing"
)

// Timings are the fixed delays of one drawing game.
type Timings struct {
	Tutorial   time.Duration
	Evaluation time.Duration
	Teardown   time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		Tutorial:   15 * time.Second,
		Evaluation: 10 * time.Second,
		Teardown:   8 * time.Second,
	}
}

// DrawingDeps is everything a room needs to run drawing games.
type DrawingDeps struct {
	Scorer     Scorer
	Prompts    PromptGenerator
	Recorder   ResultRecorder
	Compositor *canvas.Compositor
	Hasher     PasscodeHasher
	Timings    Timings
}

type RoomDescription struct {
	Id           string `json:"id"`
	Private      bool   `json:"private"`
	PlayersCount int    `json:"playersCount"`
	MaxPlayers   int    `json:"maxPlayers"`
	Started      bool   `json:"started"`
}

type roomJoinRequest struct {
	roomId   string
	passcode string
	player   Player
	errChan  chan error
}

func newRoomJoinRequest(roomId, passcode string, p Player) roomJoinRequest {
	return roomJoinRequest{roomId: roomId, passcode: passcode, player: p, errChan: make(chan error, 1)}
}

type ClientPacketEnvelope struct {
	packet ClientPacket
	raster string
	from   Player
}

type dataSendTask struct {
	to   Player
	data []byte
}
