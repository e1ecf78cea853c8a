package game

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	playerOutboxSize = 256
	packetsPerSecond = 5
	packetsBurst     = 10
)

type player struct {
	id        string
	name      string
	limiter   *rate.Limiter
	outbox    chan []byte
	pingChan  chan struct{}
	room      Room
	ctx       context.Context
	cancelCtx context.CancelFunc
}

func NewPlayer(id, name string) *player {
	ctx, cancel := context.WithCancel(context.Background())
	return &player{
		id:        id,
		name:      name,
		limiter:   rate.NewLimiter(packetsPerSecond, packetsBurst),
		outbox:    make(chan []byte, playerOutboxSize),
		pingChan:  make(chan struct{}, 1),
		ctx:       ctx,
		cancelCtx: cancel,
	}
}

func (p *player) Id() string   { return p.id }
func (p *player) Name() string { return p.name }

func (p *player) SetRoom(r Room) {
	p.room = r
}

// Send never blocks the room; a full outbox means the client stopped reading.
func (p *player) Send(data []byte) error {
	select {
	case p.outbox <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (p *player) Ping() {
	select {
	case p.pingChan <- struct{}{}:
	default:
	}
}

func (p *player) CancelAndRelease() {
	p.cancelCtx()
}

// ReadPump forwards decoded frames to the room until the socket fails or the
// player is released. Drawing frames bypass the rate limiter.
func (p *player) ReadPump(socket WebsocketConnection) {
	defer socket.Close("")

	for {
		data, err := socket.Read()
		if err != nil {
			log.Debug().Err(err).Str("player", p.id).Msg("read pump stopped")
			break
		}
		if p.ctx.Err() != nil {
			return
		}

		envelope, ok := decodeClientFrame(data)
		if !ok {
			continue
		}
		if !envelope.isDrawingFrame() && !p.limiter.Allow() {
			continue
		}
		envelope.from = p
		p.room.Send(p.ctx, envelope)
	}

	if p.ctx.Err() == nil {
		p.room.RemoveMe(p)
	}
}

// WritePump drains the outbox to the socket. Once the player is released it
// closes the socket, which also unblocks ReadPump.
func (p *player) WritePump(socket WebsocketConnection) {
	defer socket.Close("")

	for {
		select {
		case <-p.ctx.Done():
			return
		case data := <-p.outbox:
			if err := socket.Write(data); err != nil {
				log.Debug().Err(err).Str("player", p.id).Msg("write failed")
				p.room.RemoveMe(p)
				return
			}
		case <-p.pingChan:
			if err := socket.Ping(); err != nil {
				log.Debug().Err(err).Str("player", p.id).Msg("ping failed")
				p.room.RemoveMe(p)
				return
			}
		}
	}
}
