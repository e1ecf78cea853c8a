package game

import (
	"context"
	"image"
	"time"

	"doodleparty/analysis"
	"doodleparty/domain"
	"doodleparty/prompt"
)

type WebsocketConnection interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

type Player interface {
	Id() string
	Name() string
	Send(data []byte) error
	Ping()
	SetRoom(r Room)
	CancelAndRelease()
}

type Room interface {
	PingPlayers()
	Send(ctx context.Context, e ClientPacketEnvelope)
	RemoveMe(p Player)
	RequestJoin(jreq roomJoinRequest)
	Tick(now time.Time)
	GameLoop()
	CloseAndRelease()
	Description() RoomDescription
	SetParentLobby(l Lobby)
	SetId(id string)
}

type Lobby interface {
	RequestAddAndRunRoom(ctx context.Context, r Room)
	ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest)
	RequestUpdateDescription(desc RoomDescription)
	RemoveRoom(roomId string)
	GetPublicGames(ctx context.Context) []RoomDescription
}

type UniqueIdGenerator interface {
	Generate() string
	Dispose(id string)
}

type PeriodicTickerChannelCreator interface {
	Create(duration time.Duration) <-chan time.Time
}

type Scorer interface {
	Evaluate(img image.Image, englishPrompt string, d domain.Difficulty) (analysis.Evaluation, error)
}

type PromptGenerator interface {
	Generate(d domain.Difficulty, lang string) prompt.Prompt
	Languages() []string
}

type ResultRecorder interface {
	SaveResult(ctx context.Context, result domain.DrawingResult) error
}

type ResultLister interface {
	RecentResults(ctx context.Context, limit int) ([]domain.DrawingResult, error)
	GetResult(ctx context.Context, id string) (domain.DrawingResult, error)
}

type PasscodeHasher interface {
	Hash(passcode string) (string, error)
	Compare(hash, passcode string) (bool, error)
}
