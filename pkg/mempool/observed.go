package mempool

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

type (
	// Metrics records metrics for API calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// ObservedClient wraps Client with metrics instrumentation.
type ObservedClient struct {
	client  *Client
	metrics Metrics
}

// NewObservedClient constructs an instrumented API client.
func NewObservedClient(client *Client, metrics Metrics) *ObservedClient {
	return &ObservedClient{
		client:  client,
		metrics: metrics,
	}
}

// GetTipHash returns the hash of the best-chain tip.
func (o *ObservedClient) GetTipHash(ctx context.Context) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_tip_hash", err, started)
	}()
	return o.client.GetTipHash(ctx)
}

// GetTipHeight returns the height of the best-chain tip.
func (o *ObservedClient) GetTipHeight(ctx context.Context) (height uint32, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_tip_height", err, started)
	}()
	return o.client.GetTipHeight(ctx)
}

// GetBlockHash returns the hash of the best-chain block at the given height.
func (o *ObservedClient) GetBlockHash(ctx context.Context, height uint32) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_block_hash", err, started)
	}()
	return o.client.GetBlockHash(ctx, height)
}

// GetTx returns the consensus-decoded transaction.
func (o *ObservedClient) GetTx(ctx context.Context, txid *chainhash.Hash) (tx *wire.MsgTx, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_tx", err, started)
	}()
	return o.client.GetTx(ctx, txid)
}

// GetTxInfo returns the decoded transaction details.
func (o *ObservedClient) GetTxInfo(ctx context.Context, txid *chainhash.Hash) (info *TxInfo, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_tx_info", err, started)
	}()
	return o.client.GetTxInfo(ctx, txid)
}

// GetTxStatus returns the confirmation status of a transaction.
func (o *ObservedClient) GetTxStatus(ctx context.Context, txid *chainhash.Hash) (status *Status, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_tx_status", err, started)
	}()
	return o.client.GetTxStatus(ctx, txid)
}

// GetOutspends returns the spend status of every output of a transaction.
func (o *ObservedClient) GetOutspends(ctx context.Context, txid *chainhash.Hash) (outspends []OutputStatus, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_outspends", err, started)
	}()
	return o.client.GetOutspends(ctx, txid)
}

// GetOutputStatus returns the spend status of a single output.
func (o *ObservedClient) GetOutputStatus(ctx context.Context, txid *chainhash.Hash, vout uint32) (status *OutputStatus, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_output_status", err, started)
	}()
	return o.client.GetOutputStatus(ctx, txid, vout)
}

// GetScriptHashTxs returns a page of transaction history for a scriptPubKey.
func (o *ObservedClient) GetScriptHashTxs(ctx context.Context, pkScript []byte, lastSeen *chainhash.Hash) (txs []AddressTx, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_scripthash_txs", err, started)
	}()
	return o.client.GetScriptHashTxs(ctx, pkScript, lastSeen)
}

// GetAddressTxs returns a page of transaction history for an address.
func (o *ObservedClient) GetAddressTxs(ctx context.Context, address btcutil.Address, afterTxid *chainhash.Hash) (txs []AddressTx, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_address_txs", err, started)
	}()
	return o.client.GetAddressTxs(ctx, address, afterTxid)
}

// GetAddressUtxos returns the unspent outputs of an address.
func (o *ObservedClient) GetAddressUtxos(ctx context.Context, address btcutil.Address) (utxos []AddressUtxo, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_address_utxos", err, started)
	}()
	return o.client.GetAddressUtxos(ctx, address)
}

// GetAddressInfo returns chain and mempool stats for an address.
func (o *ObservedClient) GetAddressInfo(ctx context.Context, address btcutil.Address) (info *AddressInfo, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_address_info", err, started)
	}()
	return o.client.GetAddressInfo(ctx, address)
}

// GetRecommendedFees returns the current fee estimates.
func (o *ObservedClient) GetRecommendedFees(ctx context.Context) (fees *RecommendedFees, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_recommended_fees", err, started)
	}()
	return o.client.GetRecommendedFees(ctx)
}

// GetMempoolInfo returns mempool statistics.
func (o *ObservedClient) GetMempoolInfo(ctx context.Context) (stats *MempoolStats, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_mempool_info", err, started)
	}()
	return o.client.GetMempoolInfo(ctx)
}

// GetMempoolTxids returns the txids currently in the mempool.
func (o *ObservedClient) GetMempoolTxids(ctx context.Context) (txids []*chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_mempool_txids", err, started)
	}()
	return o.client.GetMempoolTxids(ctx)
}

// GetBlockHeader returns the consensus-decoded header of a block.
func (o *ObservedClient) GetBlockHeader(ctx context.Context, hash *chainhash.Hash) (header *wire.BlockHeader, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_block_header", err, started)
	}()
	return o.client.GetBlockHeader(ctx, hash)
}

// GetBlock returns the consensus-decoded block.
func (o *ObservedClient) GetBlock(ctx context.Context, hash *chainhash.Hash) (block *wire.MsgBlock, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_block", err, started)
	}()
	return o.client.GetBlock(ctx, hash)
}

// GetBlockStatus returns the best-chain status of a block.
func (o *ObservedClient) GetBlockStatus(ctx context.Context, hash *chainhash.Hash) (status *BlockStatus, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_block_status", err, started)
	}()
	return o.client.GetBlockStatus(ctx, hash)
}

// GetBlocks returns the 10-block listing ending at startHeight or the tip.
func (o *ObservedClient) GetBlocks(ctx context.Context, startHeight *uint32) (blocks []BlockSummary, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_blocks", err, started)
	}()
	return o.client.GetBlocks(ctx, startHeight)
}

// Broadcast submits a transaction for broadcast.
func (o *ObservedClient) Broadcast(ctx context.Context, tx *wire.MsgTx) (txid *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("broadcast", err, started)
	}()
	return o.client.Broadcast(ctx, tx)
}

// GetMerkleProof returns the Electrum-format merkle proof of a transaction.
func (o *ObservedClient) GetMerkleProof(ctx context.Context, txid *chainhash.Hash) (proof *MerkleProof, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_merkle_proof", err, started)
	}()
	return o.client.GetMerkleProof(ctx, txid)
}

// GetTxAtBlockIndex returns the txid at the given index within a block.
func (o *ObservedClient) GetTxAtBlockIndex(ctx context.Context, hash *chainhash.Hash, index uint32) (txid *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_tx_at_block_index", err, started)
	}()
	return o.client.GetTxAtBlockIndex(ctx, hash, index)
}

// GetMerkleBlock returns the BIP-37 merkle block proof of a transaction.
func (o *ObservedClient) GetMerkleBlock(ctx context.Context, txid *chainhash.Hash) (merkleBlock *wire.MsgMerkleBlock, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("get_merkle_block", err, started)
	}()
	return o.client.GetMerkleBlock(ctx, txid)
}
