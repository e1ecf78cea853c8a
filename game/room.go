package game

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"doodleparty/domain"

	"github.com/rs/zerolog/log"
)

type room struct {
	id           string
	private      bool
	passcodeHash string
	maxPlayers   int

	phase   RoomPhase
	leader  Player
	players []Player
	ready   map[Player]bool

	game    *drawingGame
	gameSeq int
	deps    DrawingDeps
	now     func() time.Time

	parentLobby   Lobby
	dataSendTasks []dataSendTask
	closing       bool

	ctx         context.Context
	cancelCtx   context.CancelFunc
	inbox       chan ClientPacketEnvelope
	ticks       chan time.Time
	pingPlayers chan struct{}
	joinReqs    chan roomJoinRequest
	removeMe    chan Player
	evaluations chan evaluationResult
}

func NewRoom(leader Player, private bool, passcodeHash string, maxPlayers int, deps DrawingDeps) *room {
	ctx, cancel := context.WithCancel(context.Background())
	r := &room{
		private:      private,
		passcodeHash: passcodeHash,
		maxPlayers:   maxPlayers,
		phase:        PHASE_LOBBY,
		leader:       leader,
		players:      []Player{leader},
		ready:        map[Player]bool{},
		deps:         deps,
		now:          time.Now,
		ctx:          ctx,
		cancelCtx:    cancel,
		inbox:        make(chan ClientPacketEnvelope, 1024),
		ticks:        make(chan time.Time, 8),
		pingPlayers:  make(chan struct{}, 1),
		joinReqs:     make(chan roomJoinRequest, 32),
		removeMe:     make(chan Player, 64),
		evaluations:  make(chan evaluationResult, 1),
	}
	leader.SetRoom(r)
	return r
}

func (r *room) SetId(id string) {
	r.id = id
}

func (r *room) SetParentLobby(l Lobby) {
	r.parentLobby = l
}

func (r *room) Description() RoomDescription {
	return RoomDescription{
		Id:           r.id,
		Private:      r.private,
		PlayersCount: len(r.players),
		MaxPlayers:   r.maxPlayers,
		Started:      r.phase == PHASE_PLAYING,
	}
}

func (r *room) PingPlayers() {
	select {
	case r.pingPlayers <- struct{}{}:
	default:
	}
}

func (r *room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

func (r *room) Send(ctx context.Context, e ClientPacketEnvelope) {
	select {
	case r.inbox <- e:
	case <-ctx.Done():
	case <-r.ctx.Done():
	}
}

func (r *room) RemoveMe(p Player) {
	select {
	case r.removeMe <- p:
	case <-r.ctx.Done():
	}
}

func (r *room) RequestJoin(jreq roomJoinRequest) {
	if r.ctx.Err() != nil {
		jreq.errChan <- ErrRoomNotFound
		close(jreq.errChan)
		return
	}
	select {
	case r.joinReqs <- jreq:
	case <-r.ctx.Done():
		jreq.errChan <- ErrRoomNotFound
		close(jreq.errChan)
	default:
		jreq.errChan <- ErrRoomFull
		close(jreq.errChan)
	}
}

func (r *room) CloseAndRelease() {
	r.cancelCtx()
}

// rejectPendingJoins answers join requests queued before the room closed.
// The lobby stops routing joins here before it cancels the room.
func (r *room) rejectPendingJoins() {
	for {
		select {
		case jreq := <-r.joinReqs:
			jreq.errChan <- ErrRoomNotFound
			close(jreq.errChan)
		default:
			return
		}
	}
}

func (r *room) GameLoop() {
	r.sendSnapshot(r.leader)
	r.flush()

	for {
		select {
		case <-r.ctx.Done():
			r.rejectPendingJoins()
			return
		case e := <-r.inbox:
			r.handleEnvelope(e)
		case now := <-r.ticks:
			r.handleTick(now)
		case <-r.pingPlayers:
			r.handlePing()
		case jreq := <-r.joinReqs:
			r.handleJoinRequest(jreq)
		case p := <-r.removeMe:
			r.handleRemovePlayer(p)
		case res := <-r.evaluations:
			r.handleEvaluation(res)
		}
		r.flush()
	}
}

// flush delivers queued packets in order. Players whose outbox is full are
// dropped, which may queue more packets, so it loops until nothing is left.
func (r *room) flush() {
	for len(r.dataSendTasks) > 0 {
		tasks := r.dataSendTasks
		r.dataSendTasks = nil

		var stuck []Player
		for _, task := range tasks {
			if slices.Contains(stuck, task.to) {
				continue
			}
			if err := task.to.Send(task.data); err != nil {
				log.Warn().Err(err).Str("room", r.id).Str("player", task.to.Id()).Msg("dropping slow player")
				stuck = append(stuck, task.to)
			}
		}
		for _, p := range stuck {
			r.handleRemovePlayer(p)
		}
	}
}

func (r *room) sendTo(p Player, data []byte) {
	if data == nil {
		return
	}
	r.dataSendTasks = append(r.dataSendTasks, dataSendTask{to: p, data: data})
}

func (r *room) broadcast(data []byte) {
	for _, p := range r.players {
		r.sendTo(p, data)
	}
}

func (r *room) broadcastExcept(except Player, data []byte) {
	for _, p := range r.players {
		if p != except {
			r.sendTo(p, data)
		}
	}
}

func (r *room) updateDescription() {
	if r.parentLobby != nil {
		r.parentLobby.RequestUpdateDescription(r.Description())
	}
}

func (r *room) hasPlayer(p Player) bool {
	return slices.Contains(r.players, p)
}

func (r *room) playerInfos() []playerInfo {
	out := make([]playerInfo, len(r.players))
	for i, p := range r.players {
		out[i] = playerInfo{Id: p.Id(), Name: p.Name(), Ready: r.ready[p]}
	}
	return out
}

func (r *room) sendSnapshot(p Player) {
	snapshot := roomSnapshotData{
		RoomId:   r.id,
		LeaderId: r.leader.Id(),
		Private:  r.private,
		Players:  r.playerInfos(),
	}
	if r.game != nil {
		snapshot.Game = r.game.snapshot()
	}
	r.sendTo(p, encodePacket(EventRoomSnapshot, snapshot))
}

func (r *room) handleJoinRequest(jreq roomJoinRequest) {
	defer close(jreq.errChan)

	if r.closing {
		jreq.errChan <- ErrRoomNotFound
		return
	}
	if len(r.players) >= r.maxPlayers {
		jreq.errChan <- ErrRoomFull
		return
	}
	if slices.ContainsFunc(r.players, func(p Player) bool { return p.Id() == jreq.player.Id() }) {
		jreq.errChan <- ErrAlreadyIn
		return
	}
	if r.passcodeHash != "" {
		if err := r.checkPasscode(jreq.passcode); err != nil {
			jreq.errChan <- err
			return
		}
	}

	p := jreq.player
	p.SetRoom(r)
	r.players = append(r.players, p)

	r.broadcastExcept(p, encodePacket(EventPlayerJoined, playerInfo{Id: p.Id(), Name: p.Name()}))
	r.sendSnapshot(p)
	r.updateDescription()
	log.Debug().Str("room", r.id).Str("player", p.Id()).Msg("player joined")
}

func (r *room) checkPasscode(passcode string) error {
	if r.deps.Hasher == nil {
		return domain.ErrIncorrectPasscode
	}
	ok, err := r.deps.Hasher.Compare(r.passcodeHash, passcode)
	if err != nil {
		log.Error().Err(err).Str("room", r.id).Msg("comparing room passcode")
		return err
	}
	if !ok {
		return domain.ErrIncorrectPasscode
	}
	return nil
}

func (r *room) handleRemovePlayer(p Player) {
	idx := slices.Index(r.players, p)
	if idx < 0 {
		return
	}
	r.players = slices.Delete(r.players, idx, idx+1)
	delete(r.ready, p)
	p.CancelAndRelease()
	log.Debug().Str("room", r.id).Str("player", p.Id()).Msg("player left")

	if len(r.players) == 0 {
		r.closing = true
		r.game = nil
		r.dataSendTasks = nil
		if r.parentLobby != nil {
			r.parentLobby.RemoveRoom(r.id)
		}
		return
	}

	r.broadcast(encodePacket(EventPlayerLeft, playerIdData{PlayerId: p.Id()}))
	if p == r.leader {
		r.leader = r.players[0]
		r.broadcast(encodePacket(EventLeaderChanged, leaderChangedData{LeaderId: r.leader.Id()}))
	}
	r.updateDescription()
}

func (r *room) handlePing() {
	for _, p := range r.players {
		p.Ping()
	}
}

func (r *room) handleTick(now time.Time) {
	if r.game != nil {
		r.handleDrawingTick(now)
	}
}

func (r *room) handleEnvelope(e ClientPacketEnvelope) {
	if !r.hasPlayer(e.from) {
		return
	}

	switch e.packet.Type {
	case EventSetReady:
		var data setReadyData
		if err := json.Unmarshal(e.packet.Data, &data); err != nil {
			log.Debug().Err(err).Str("room", r.id).Msg("bad setReady")
			return
		}
		r.handleSetReady(e.from, data.Ready)
	case EventStartGame:
		var data startGameRequest
		if err := json.Unmarshal(e.packet.Data, &data); err != nil {
			log.Debug().Err(err).Str("room", r.id).Msg("bad startGame")
			return
		}
		r.handleStartGame(e.from, data)
	case EventLeaderSkipTutorial:
		r.handleSkipTutorial(e.from)
	case EventDrawingAction:
		r.handleDrawingAction(e.from, e.raster)
	case EventPlayerFinishedDrawing:
		r.handleFinishedDrawing(e.from)
	default:
		log.Debug().Str("room", r.id).Str("type", e.packet.Type).Msg("ignoring unknown packet")
	}
}

func (r *room) handleSetReady(from Player, ready bool) {
	if r.phase != PHASE_LOBBY {
		return
	}
	r.ready[from] = ready
	r.broadcast(encodePacket(EventPlayerReady, playerReadyData{PlayerId: from.Id(), Ready: ready}))
}

func (r *room) handleStartGame(from Player, req startGameRequest) {
	if from != r.leader || r.phase != PHASE_LOBBY {
		log.Debug().Str("room", r.id).Str("player", from.Id()).Msg("ignoring startGame")
		return
	}
	if req.GameType != GameTypeDrawing {
		log.Debug().Str("room", r.id).Str("gameType", req.GameType).Msg("unsupported game type")
		return
	}
	difficulty := domain.ParseDifficulty(req.Difficulty)
	if !difficulty.Valid() {
		log.Debug().Str("room", r.id).Str("difficulty", req.Difficulty).Msg("invalid difficulty")
		return
	}
	r.startDrawingGame(r.now(), difficulty, req.Language)
}
