// Package scan implements a gap-limit wallet scan over the mempool API:
// derivation indices are probed in parallel batches until a run of
// consecutive unused addresses exceeds the gap limit.
package scan

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/mempool-api/pkg/mempool"
	"github.com/goodnatureofminers/mempool-api/pkg/workerpool"
)

const (
	defaultGapLimit  = 20
	defaultBatchSize = 5

	// Full history pages carry exactly this many txs; a shorter page is the
	// last one.
	pageSize = 25
)

// Result is the history of one scanned derivation index.
type Result struct {
	Index   uint32
	Address btcutil.Address
	Txs     []mempool.AddressTx
}

// Report is the outcome of a scan.
type Report struct {
	// LastActive is the greatest index with at least one transaction, or -1
	// when no index was active.
	LastActive int64
	// Active holds the results of every index with history, in index order.
	Active []Result
}

// Scanner walks derivation indices against a TxSource.
type Scanner struct {
	source    TxSource
	logger    *zap.Logger
	gapLimit  uint32
	batchSize int
}

// Option tunes a Scanner.
type Option func(*Scanner)

// WithGapLimit sets how many consecutive unused indices end the scan.
func WithGapLimit(limit uint32) Option {
	return func(s *Scanner) {
		s.gapLimit = limit
	}
}

// WithBatchSize sets how many addresses are probed in parallel per batch.
func WithBatchSize(size int) Option {
	return func(s *Scanner) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewScanner constructs a Scanner with a gap limit of 20 and parallel batches
// of 5 addresses.
func NewScanner(source TxSource, logger *zap.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		source:    source,
		logger:    logger,
		gapLimit:  defaultGapLimit,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan probes indices 0, 1, 2, ... derived through derive until the run of
// consecutive unused indices exceeds the gap limit. Batches run in parallel;
// results are accounted in index order, so the gap-limit cutoff is
// deterministic regardless of scheduling.
func (s *Scanner) Scan(ctx context.Context, derive DeriveFunc) (*Report, error) {
	report := &Report{LastActive: -1}
	unused := uint32(0)

	for base := uint32(0); ; base += uint32(s.batchSize) {
		indices := make([]uint32, s.batchSize)
		for i := range indices {
			indices[i] = base + uint32(i)
		}

		results, err := workerpool.Map(ctx, s.batchSize, indices, func(ctx context.Context, index uint32) (Result, error) {
			address, err := derive(index)
			if err != nil {
				return Result{}, fmt.Errorf("derive index %d: %w", index, err)
			}
			txs, err := s.history(ctx, address)
			if err != nil {
				return Result{}, fmt.Errorf("fetch history for index %d: %w", index, err)
			}
			return Result{Index: index, Address: address, Txs: txs}, nil
		})
		if err != nil {
			return nil, err
		}

		for _, r := range results {
			if len(r.Txs) == 0 {
				unused++
				if unused > s.gapLimit {
					s.logger.Debug("gap limit reached",
						zap.Uint32("index", r.Index),
						zap.Int64("last_active", report.LastActive),
					)
					return report, nil
				}
				continue
			}

			unused = 0
			report.LastActive = int64(r.Index)
			report.Active = append(report.Active, r)
			s.logger.Debug("active address",
				zap.Uint32("index", r.Index),
				zap.String("address", r.Address.EncodeAddress()),
				zap.Int("txs", len(r.Txs)),
			)
		}
	}
}

// history pages through an address's full transaction history using the
// "chain after txid" convention: a page shorter than 25 txs is the last one.
func (s *Scanner) history(ctx context.Context, address btcutil.Address) ([]mempool.AddressTx, error) {
	var all []mempool.AddressTx
	var afterTxid *chainhash.Hash

	for {
		page, err := s.source.GetAddressTxs(ctx, address, afterTxid)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}

		last, err := chainhash.NewHashFromStr(page[len(page)-1].Txid)
		if err != nil {
			return nil, fmt.Errorf("parse last txid of page: %w", err)
		}
		afterTxid = last
	}
}
