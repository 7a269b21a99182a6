package scan

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/mempool-api/pkg/mempool"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// TxSource serves one page of address history, 25 txs per full page.
	// *mempool.Client and *mempool.ObservedClient satisfy this.
	TxSource interface {
		GetAddressTxs(ctx context.Context, address btcutil.Address, afterTxid *chainhash.Hash) ([]mempool.AddressTx, error)
	}

	// DeriveFunc maps a derivation index to an address.
	DeriveFunc func(index uint32) (btcutil.Address, error)
)
