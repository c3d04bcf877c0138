package env

import (
	"encoding/json"
	"math/big"
	"os"

	"github.com/arbscan/solana-arbscan/config"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

type Token struct {
	Symbol   string
	Name     string
	Decimals uint64
	Price    decimal.Decimal
}

// AmountUi converts a base-unit amount to a display amount using the token's
// decimals.
func (token *Token) AmountUi(amount uint64) decimal.Decimal {
	amountUi := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	scale := decimal.New(1, int32(token.Decimals))
	return amountUi.Div(scale)
}

func (e *Env) loadTokens() {
	infoJson, err := os.ReadFile(config.TokensFile)
	if err != nil {
		panic(err)
	}
	err = json.Unmarshal(infoJson, &e.tokens)
	if err != nil {
		panic(err)
	}
}

func (e *Env) Token(key solana.PublicKey) *Token {
	if item, ok := e.tokens[key]; ok {
		return item
	}
	return nil
}

// Symbol is a reporting helper that never returns an empty label.
func (e *Env) Symbol(key solana.PublicKey) string {
	if token := e.Token(key); token != nil {
		return token.Symbol
	}
	return key.String()[:8]
}
