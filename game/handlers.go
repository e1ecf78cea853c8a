package game

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"doodleparty/analysis"
	"doodleparty/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

var (
	ErrUnauthenticatedStr    = "unauthenticated"
	ErrUnknownStr            = "unknown-error"
	ErrPasscodeTooLongStr    = "passcode-too-long"
	ErrInvalidRoomIdStr      = "invalid-room-id"
	ErrInvalidLimitStr       = "invalid-limit"
	ErrResultsUnavailableStr = "results-unavailable"
	ErrServerTimeoutStr      = "server-timeout"
	ErrInvalidResultIdStr    = "invalid-result-id"
	ErrResultNotFoundStr     = "result-not-found"
)

const (
	maxPasscodeLength  = 64
	defaultResultLimit = 20
	maxResultLimit     = 100
	qrSize             = 256
	abandonedJoinWait  = 10 * time.Second
)

var roomIdPattern = regexp.MustCompile(`^[0-9A-F]{6,32}$`)

type GameHandler struct {
	lobby     Lobby
	deps      DrawingDeps
	results   ResultLister
	publicURL string
	upgrader  websocket.Upgrader
}

func NewGameHandler(lobby Lobby, deps DrawingDeps, results ResultLister, allowedOrigins []string, publicURL string) *GameHandler {
	return &GameHandler{
		lobby:     lobby,
		deps:      deps,
		results:   results,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return slices.Contains(allowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

func (h *GameHandler) CreateGameHandler(ctx *gin.Context) {
	id := ctx.GetString("id")
	name := ctx.GetString("name")
	if id == "" {
		log.Error().Str("ip", ctx.ClientIP()).Msg("CreateGameHandler: no session id on context")
		ctx.String(http.StatusUnauthorized, ErrUnauthenticatedStr)
		return
	}

	private := ctx.Query("private") == "true"
	passcode := ctx.Query("passcode")
	if len(passcode) > maxPasscodeLength {
		ctx.String(http.StatusBadRequest, ErrPasscodeTooLongStr)
		return
	}

	passcodeHash := ""
	if private && passcode != "" {
		if h.deps.Hasher == nil {
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
			return
		}
		hash, err := h.deps.Hasher.Hash(passcode)
		if err != nil {
			log.Error().Err(err).Str("player", id).Msg("CreateGameHandler: hashing passcode")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
			return
		}
		passcodeHash = hash
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("CreateGameHandler: websocket upgrade failed")
		return
	}
	socket := NewWebsocketConnection(conn)

	p := NewPlayer(id, name)
	r := NewRoom(p, private, passcodeHash, DefaultMaxPlayers, h.deps)
	h.lobby.RequestAddAndRunRoom(ctx.Request.Context(), r)

	go p.WritePump(socket)
	p.ReadPump(socket)
}

func (h *GameHandler) JoinGameHandler(ctx *gin.Context) {
	id := ctx.GetString("id")
	name := ctx.GetString("name")
	if id == "" {
		log.Error().Str("ip", ctx.ClientIP()).Msg("JoinGameHandler: no session id on context")
		ctx.String(http.StatusUnauthorized, ErrUnauthenticatedStr)
		return
	}

	roomId := strings.ToUpper(ctx.Param("roomid"))
	if !roomIdPattern.MatchString(roomId) {
		ctx.String(http.StatusBadRequest, ErrInvalidRoomIdStr)
		return
	}
	passcode := ctx.Query("passcode")
	if len(passcode) > maxPasscodeLength {
		ctx.String(http.StatusBadRequest, ErrPasscodeTooLongStr)
		return
	}

	reqCtx := ctx.Request.Context()
	p := NewPlayer(id, name)
	jreq := newRoomJoinRequest(roomId, passcode, p)
	h.lobby.ForwardPlayerJoinRequestToRoom(reqCtx, jreq)

	var err error
	select {
	case err = <-jreq.errChan:
	case <-reqCtx.Done():
		go releaseAbandonedJoin(jreq, p)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrRoomNotFound):
			ctx.String(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrRoomFull), errors.Is(err, ErrAlreadyIn):
			ctx.String(http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrIncorrectPasscode):
			ctx.String(http.StatusForbidden, err.Error())
		default:
			log.Error().Err(err).Str("room", roomId).Str("player", id).Msg("JoinGameHandler: join failed")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		}
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("room", roomId).Msg("JoinGameHandler: websocket upgrade failed")
		p.room.RemoveMe(p)
		return
	}
	socket := NewWebsocketConnection(conn)

	go p.WritePump(socket)
	p.ReadPump(socket)
}

// releaseAbandonedJoin waits for the answer nobody is listening to anymore and
// takes the player back out if the join went through.
func releaseAbandonedJoin(jreq roomJoinRequest, p *player) {
	select {
	case err := <-jreq.errChan:
		if err == nil && p.room != nil {
			p.room.RemoveMe(p)
		}
	case <-time.After(abandonedJoinWait):
	}
}

func (h *GameHandler) GetPublicGamesHandler(ctx *gin.Context) {
	games := h.lobby.GetPublicGames(ctx.Request.Context())
	if games == nil {
		games = []RoomDescription{}
	}
	ctx.JSON(http.StatusOK, games)
}

func (h *GameHandler) ResultsHandler(ctx *gin.Context) {
	if h.results == nil {
		ctx.String(http.StatusServiceUnavailable, ErrResultsUnavailableStr)
		return
	}

	limit := defaultResultLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			ctx.String(http.StatusBadRequest, ErrInvalidLimitStr)
			return
		}
		limit = min(n, maxResultLimit)
	}

	results, err := h.results.RecentResults(ctx.Request.Context(), limit)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			ctx.String(http.StatusGatewayTimeout, ErrServerTimeoutStr)
		default:
			log.Error().Err(err).Int("limit", limit).Msg("ResultsHandler: listing results")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		}
		return
	}
	if results == nil {
		results = []domain.DrawingResult{}
	}
	ctx.JSON(http.StatusOK, results)
}

func (h *GameHandler) ResultHandler(ctx *gin.Context) {
	if h.results == nil {
		ctx.String(http.StatusServiceUnavailable, ErrResultsUnavailableStr)
		return
	}

	id, err := uuid.Parse(ctx.Param("resultid"))
	if err != nil {
		ctx.String(http.StatusBadRequest, ErrInvalidResultIdStr)
		return
	}

	result, err := h.results.GetResult(ctx.Request.Context(), id.String())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResultNotFound):
			ctx.String(http.StatusNotFound, ErrResultNotFoundStr)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			ctx.String(http.StatusGatewayTimeout, ErrServerTimeoutStr)
		default:
			log.Error().Err(err).Str("result", id.String()).Msg("ResultHandler: fetching result")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

type gameOptions struct {
	GameTypes    []string            `json:"gameTypes"`
	Difficulties []domain.Difficulty `json:"difficulties"`
	Languages    []string            `json:"languages"`
	Palette      []string            `json:"palette"`
}

// OptionsHandler lists what a leader can pick in startGame, plus the color
// names the scorer recognises.
func (h *GameHandler) OptionsHandler(ctx *gin.Context) {
	languages := []string{"en"}
	if h.deps.Prompts != nil {
		languages = h.deps.Prompts.Languages()
	}
	ctx.JSON(http.StatusOK, gameOptions{
		GameTypes:    []string{GameTypeDrawing},
		Difficulties: domain.Difficulties(),
		Languages:    languages,
		Palette:      analysis.PaletteNames(),
	})
}

func (h *GameHandler) QRHandler(ctx *gin.Context) {
	roomId := strings.ToUpper(ctx.Param("roomid"))
	if !roomIdPattern.MatchString(roomId) {
		ctx.String(http.StatusBadRequest, ErrInvalidRoomIdStr)
		return
	}

	png, err := qrcode.Encode(h.JoinLink(roomId), qrcode.Medium, qrSize)
	if err != nil {
		log.Error().Err(err).Str("room", roomId).Msg("QRHandler: encoding qr code")
		ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// JoinLink is the page a QR code points players to.
func (h *GameHandler) JoinLink(roomId string) string {
	return h.publicURL + "/join/" + roomId
}
