package game

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	roomTickInterval = time.Second
	roomPingInterval = 30 * time.Second
)

type lobby struct {
	rooms    map[string]Room
	listings map[string]RoomDescription

	newRooms     chan Room
	closingRooms chan string
	listingReqs  chan chan []RoomDescription
	descriptions chan RoomDescription
	joinReqs     chan roomJoinRequest

	ids     UniqueIdGenerator
	tickers PeriodicTickerChannelCreator
	wg      *sync.WaitGroup
}

func NewLobby(ids UniqueIdGenerator, tickers PeriodicTickerChannelCreator, wg *sync.WaitGroup) *lobby {
	return &lobby{
		rooms:        map[string]Room{},
		listings:     map[string]RoomDescription{},
		newRooms:     make(chan Room, 32),
		closingRooms: make(chan string, 32),
		listingReqs:  make(chan chan []RoomDescription, 256),
		descriptions: make(chan RoomDescription, 256),
		joinReqs:     make(chan roomJoinRequest, 256),
		ids:          ids,
		tickers:      tickers,
		wg:           wg,
	}
}

// RequestUpdateDescription never blocks; updates are dropped when the lobby
// is backed up.
func (l *lobby) RequestUpdateDescription(desc RoomDescription) {
	select {
	case l.descriptions <- desc:
	default:
	}
}

func (l *lobby) RequestAddAndRunRoom(ctx context.Context, r Room) {
	select {
	case l.newRooms <- r:
	case <-ctx.Done():
	}
}

func (l *lobby) ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest) {
	select {
	case l.joinReqs <- jreq:
	case <-ctx.Done():
	}
}

func (l *lobby) RemoveRoom(roomId string) {
	l.closingRooms <- roomId
}

// GetPublicGames returns nil when ctx ends before the lobby answers.
func (l *lobby) GetPublicGames(ctx context.Context) []RoomDescription {
	resp := make(chan []RoomDescription, 1)
	select {
	case l.listingReqs <- resp:
	case <-ctx.Done():
		return nil
	}
	select {
	case games := <-resp:
		return games
	case <-ctx.Done():
		return nil
	}
}

// LobbyActor owns the room registry. Rooms only learn about time through the
// ticks forwarded here, so a removed room never sees another deadline.
func (l *lobby) LobbyActor(started chan struct{}) {
	ticks := l.tickers.Create(roomTickInterval)
	pings := l.tickers.Create(roomPingInterval)

	close(started)

	for {
		select {
		case now := <-ticks:
			for _, r := range l.rooms {
				r.Tick(now)
			}
		case <-pings:
			for _, r := range l.rooms {
				r.PingPlayers()
			}

		case r := <-l.newRooms:
			l.startRoom(r)
		case roomId := <-l.closingRooms:
			l.closeRoom(roomId)
		case desc := <-l.descriptions:
			l.updateListing(desc)
		case resp := <-l.listingReqs:
			resp <- l.publicListing()
		case jreq := <-l.joinReqs:
			l.routeJoin(jreq)
		}
	}
}

func (l *lobby) startRoom(r Room) {
	id := l.ids.Generate()
	r.SetParentLobby(l)
	r.SetId(id)
	l.rooms[id] = r

	desc := r.Description()
	if !desc.Private {
		l.listings[id] = desc
	}

	if l.wg != nil {
		l.wg.Add(1)
	}
	go func() {
		if l.wg != nil {
			defer l.wg.Done()
		}
		r.GameLoop()
	}()
	log.Info().Str("room", id).Bool("private", desc.Private).Msg("room created")
}

func (l *lobby) closeRoom(roomId string) {
	r, ok := l.rooms[roomId]
	if !ok {
		return
	}
	delete(l.rooms, roomId)
	delete(l.listings, roomId)
	r.CloseAndRelease()
	l.ids.Dispose(roomId)
	log.Info().Str("room", roomId).Int("rooms", len(l.rooms)).Msg("room removed")
}

func (l *lobby) updateListing(desc RoomDescription) {
	if _, ok := l.rooms[desc.Id]; !ok || desc.Private {
		return
	}
	l.listings[desc.Id] = desc
}

// publicListing orders rooms not yet started first, then by player count
// descending, then by id.
func (l *lobby) publicListing() []RoomDescription {
	games := make([]RoomDescription, 0, len(l.listings))
	for _, desc := range l.listings {
		games = append(games, desc)
	}
	slices.SortFunc(games, func(a, b RoomDescription) int {
		if a.Started != b.Started {
			if a.Started {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(b.PlayersCount, a.PlayersCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Id, b.Id)
	})
	return games
}

func (l *lobby) routeJoin(jreq roomJoinRequest) {
	r, ok := l.rooms[jreq.roomId]
	if !ok {
		jreq.errChan <- ErrRoomNotFound
		close(jreq.errChan)
		return
	}
	r.RequestJoin(jreq)
}
