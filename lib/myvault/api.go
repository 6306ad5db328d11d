package myvault

import (
	"context"
	"time"

	"github.com/MarcGrol/pharmacare/lib/mystore"
)

const (
	CurrentToken = "currentToken"
)

type Token struct {
	ProviderName string
	AccessToken  string `datastore:",noindex"`
	CreatedAt    time.Time
}

//go:generate mockgen -source=api.go -package myvault -destination vault_reader_mock.go VaultReader
type VaultReader interface {
	Get(c context.Context, uid string) (Token, bool, error)
}

type VaultReadWriter interface {
	VaultReader
	Put(c context.Context, uid string, value Token) error
}

// TokenUID is the vault key under which the current token of a provider is kept.
func TokenUID(providerName string) string {
	return CurrentToken + "_" + providerName
}

func New(c context.Context) (VaultReadWriter, func(), error) {
	return mystore.New[Token](c)
}
