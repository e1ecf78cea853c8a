package auth

import (
	"time"

	"doodleparty/domain"
)

type TokenManager interface {
	Generate(id, name string, now time.Time) (string, error)
	Verify(token string) (domain.Session, error)
}
