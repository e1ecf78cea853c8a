package game

import (
	"encoding/json"

	"doodleparty/canvas"

	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/encoding/protowire"
)

// Inbound events.
const (
	EventSetReady              = "setReady"
	EventStartGame             = "startGame"
	EventLeaderSkipTutorial    = "leaderSkipTutorial"
	EventDrawingAction         = "drawingAction"
	EventPlayerFinishedDrawing = "playerFinishedDrawing"
)

// Outbound events.
const (
	EventRoomSnapshot       = "roomSnapshot"
	EventPlayerJoined       = "playerJoined"
	EventPlayerLeft         = "playerLeft"
	EventPlayerReady        = "playerReady"
	EventLeaderChanged      = "leaderChanged"
	EventTutorial           = "tutorial"
	EventDrawingUpdate      = "drawingUpdate"
	EventEvaluatingDrawing  = "evaluatingDrawing"
	EventGameEnded          = "gameEnded"
	EventPlayerStatusUpdate = "playerStatusUpdate"
	EventGameClosed         = "gameClosed"
)

// drawingFieldNumber is the protowire field carrying a raster data URI in
// binary drawing frames.
const drawingFieldNumber protowire.Number = 1

type ClientPacket struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ServerPacket struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type setReadyData struct {
	Ready bool `json:"ready"`
}

type startGameRequest struct {
	GameType   string `json:"gameType"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

type drawingActionData struct {
	Raster string `json:"raster"`
}

type playerInfo struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

type roomSnapshotData struct {
	RoomId   string        `json:"roomId"`
	LeaderId string        `json:"leaderId"`
	Private  bool          `json:"private"`
	Players  []playerInfo  `json:"players"`
	Game     *gameSnapshot `json:"game,omitempty"`
}

type gameSnapshot struct {
	State    string            `json:"state"`
	Start    *startGameData    `json:"start,omitempty"`
	Rasters  map[string]string `json:"rasters"`
	Finished []string          `json:"finished"`
}

type playerIdData struct {
	PlayerId string `json:"playerId"`
}

type playerReadyData struct {
	PlayerId string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

type leaderChangedData struct {
	LeaderId string `json:"leaderId"`
}

type tutorialData struct {
	GameType string `json:"gameType"`
	Seconds  int    `json:"seconds"`
}

type gameSettings struct {
	TimeLimit   int              `json:"timeLimit"`
	Segments    []canvas.Segment `json:"segments"`
	Layout      canvas.Layout    `json:"layout"`
	PlayerCount int              `json:"playerCount"`
}

type startGameData struct {
	GameType string       `json:"gameType"`
	Prompt   string       `json:"prompt"`
	Settings gameSettings `json:"settings"`
}

type drawingUpdateData struct {
	PlayerId string `json:"playerId"`
	Raster   string `json:"raster"`
}

type gameEndedData struct {
	Prompt     string         `json:"prompt"`
	FinalImage string         `json:"finalImage"`
	Score      int            `json:"score"`
	Feedback   string         `json:"feedback"`
	Difficulty string         `json:"difficulty"`
	Breakdown  map[string]int `json:"breakdown"`
}

func encodePacket(eventType string, data any) []byte {
	b, err := json.Marshal(ServerPacket{Type: eventType, Data: data})
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("encoding server packet")
		return nil
	}
	return b
}

// decodeClientFrame accepts JSON text frames and binary protowire drawing
// frames. Anything else is dropped.
func decodeClientFrame(data []byte) (ClientPacketEnvelope, bool) {
	if len(data) == 0 {
		return ClientPacketEnvelope{}, false
	}

	if data[0] == '{' {
		var packet ClientPacket
		if err := json.Unmarshal(data, &packet); err != nil || packet.Type == "" {
			return ClientPacketEnvelope{}, false
		}
		envelope := ClientPacketEnvelope{packet: packet}
		if packet.Type == EventDrawingAction {
			var action drawingActionData
			if err := json.Unmarshal(packet.Data, &action); err != nil {
				return ClientPacketEnvelope{}, false
			}
			envelope.raster = action.Raster
		}
		return envelope, true
	}

	fieldNum, wireType, n := protowire.ConsumeTag(data)
	if n < 0 || fieldNum != drawingFieldNumber || wireType != protowire.BytesType {
		return ClientPacketEnvelope{}, false
	}
	raster, m := protowire.ConsumeBytes(data[n:])
	if m < 0 {
		return ClientPacketEnvelope{}, false
	}
	return ClientPacketEnvelope{
		packet: ClientPacket{Type: EventDrawingAction},
		raster: string(raster),
	}, true
}

// isDrawingFrame reports whether a frame skips the chat rate limiter.
func (e ClientPacketEnvelope) isDrawingFrame() bool {
	return e.packet.Type == EventDrawingAction
}
