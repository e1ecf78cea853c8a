package game

import (
	"context"
	"image"
	"time"

	"doodleparty/analysis"
	"doodleparty/domain"
	"doodleparty/prompt"

	"github.com/stretchr/testify/mock"
)

// --- WebsocketConnection ---

type MockWebsocketConnection struct {
	mock.Mock
}

func (m *MockWebsocketConnection) Close(errCode string) {
	m.Called(errCode)
}

func (m *MockWebsocketConnection) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockWebsocketConnection) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockWebsocketConnection) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// --- UniqueIdGenerator ---

type MockUniqueIdGenerator struct {
	mock.Mock
}

func (m *MockUniqueIdGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockUniqueIdGenerator) Dispose(id string) {
	m.Called(id)
}

// --- PeriodicTickerChannelCreator ---

type MockPeriodicTickerChannelCreator struct {
	mock.Mock
}

func (m *MockPeriodicTickerChannelCreator) Create(duration time.Duration) <-chan time.Time {
	args := m.Called(duration)
	return args.Get(0).(chan time.Time)
}

// --- Player ---

type MockPlayer struct {
	mock.Mock
}

func (m *MockPlayer) Id() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Send(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockPlayer) Ping() {
	m.Called()
}

func (m *MockPlayer) SetRoom(r Room) {
	m.Called(r)
}

func (m *MockPlayer) CancelAndRelease() {
	m.Called()
}

// newMockPlayer returns a player that accepts every call a room makes.
func newMockPlayer(id string) *MockPlayer {
	p := &MockPlayer{}
	p.On("Id").Return(id).Maybe()
	p.On("Name").Return("name-" + id).Maybe()
	p.On("SetRoom", mock.Anything).Return().Maybe()
	p.On("Send", mock.Anything).Return(nil).Maybe()
	p.On("Ping").Return().Maybe()
	p.On("CancelAndRelease").Return().Maybe()
	return p
}

// --- Room ---

type MockRoom struct {
	mock.Mock
}

func (m *MockRoom) PingPlayers() {
	m.Called()
}

func (m *MockRoom) Send(ctx context.Context, e ClientPacketEnvelope) {
	m.Called(ctx, e)
}

func (m *MockRoom) RemoveMe(p Player) {
	m.Called(p)
}

func (m *MockRoom) RequestJoin(jreq roomJoinRequest) {
	m.Called(jreq)
}

func (m *MockRoom) Tick(now time.Time) {
	m.Called(now)
}

func (m *MockRoom) GameLoop() {
	m.Called()
}

func (m *MockRoom) CloseAndRelease() {
	m.Called()
}

func (m *MockRoom) Description() RoomDescription {
	args := m.Called()
	return args.Get(0).(RoomDescription)
}

func (m *MockRoom) SetParentLobby(l Lobby) {
	m.Called(l)
}

func (m *MockRoom) SetId(id string) {
	m.Called(id)
}

// --- Lobby ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) RequestAddAndRunRoom(ctx context.Context, r Room) {
	m.Called(ctx, r)
}

func (m *MockLobby) ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest) {
	m.Called(ctx, jreq)
}

func (m *MockLobby) RequestUpdateDescription(desc RoomDescription) {
	m.Called(desc)
}

func (m *MockLobby) RemoveRoom(roomId string) {
	m.Called(roomId)
}

func (m *MockLobby) GetPublicGames(ctx context.Context) []RoomDescription {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]RoomDescription)
}

// --- Scorer ---

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Evaluate(img image.Image, englishPrompt string, d domain.Difficulty) (analysis.Evaluation, error) {
	args := m.Called(img, englishPrompt, d)
	return args.Get(0).(analysis.Evaluation), args.Error(1)
}

// --- PromptGenerator ---

type MockPromptGenerator struct {
	mock.Mock
}

func (m *MockPromptGenerator) Generate(d domain.Difficulty, lang string) prompt.Prompt {
	args := m.Called(d, lang)
	return args.Get(0).(prompt.Prompt)
}

func (m *MockPromptGenerator) Languages() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// --- ResultRecorder / ResultLister ---

type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) SaveResult(ctx context.Context, result domain.DrawingResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultStore) RecentResults(ctx context.Context, limit int) ([]domain.DrawingResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DrawingResult), args.Error(1)
}

func (m *MockResultStore) GetResult(ctx context.Context, id string) (domain.DrawingResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DrawingResult), args.Error(1)
}

// --- PasscodeHasher ---

type MockPasscodeHasher struct {
	mock.Mock
}

func (m *MockPasscodeHasher) Hash(passcode string) (string, error) {
	args := m.Called(passcode)
	return args.String(0), args.Error(1)
}

func (m *MockPasscodeHasher) Compare(hash, passcode string) (bool, error) {
	args := m.Called(hash, passcode)
	return args.Bool(0), args.Error(1)
}
