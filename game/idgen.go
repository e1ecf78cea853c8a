package game

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	minRoomIdSize   = 6
	maxIdCollisions = 8
	maxRoomIdSize   = 32
)

// IdGen hands out short room codes cut from random uuids. Codes are unique
// among the ones not yet disposed; the code length grows when collisions
// become frequent.
type IdGen struct {
	inUse  map[string]struct{}
	size   int
	locker sync.Mutex
}

func NewIdGen() *IdGen {
	return &IdGen{inUse: map[string]struct{}{}, size: minRoomIdSize}
}

func (g *IdGen) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()

	collisions := 0
	for {
		id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:g.size]
		if _, taken := g.inUse[id]; !taken {
			g.inUse[id] = struct{}{}
			return id
		}
		collisions++
		if collisions >= maxIdCollisions && g.size < maxRoomIdSize {
			g.size++
			collisions = 0
		}
	}
}

func (g *IdGen) Dispose(id string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.inUse, id)
}
