package env

import (
	"context"
	"log"

	"github.com/gagliardetto/solana-go"
)

// Env is the token registry: static token metadata the scanner and the
// notifier need for reporting. Loaded once at startup, read-only after.
type Env struct {
	logger *log.Logger
	ctx    context.Context
	tokens map[solana.PublicKey]*Token
}

func NewEnv(ctx context.Context) *Env {
	return &Env{
		ctx:    ctx,
		logger: log.Default(),
		tokens: make(map[solana.PublicKey]*Token),
	}
}

func (e *Env) Start() {
	e.logger.Printf("start env......")
	e.loadTokens()
}

func (e *Env) Stop() {
	e.logger.Printf("stop env......")
}
