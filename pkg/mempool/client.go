// Package mempool is a typed client for the mempool.space / Esplora REST API.
// It is generic over the Sender transport; pair it with pkg/httpclient for a
// retrying net/http transport, or plug in your own.
package mempool

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/mempool-api/pkg/httpclient"
	"github.com/goodnatureofminers/mempool-api/pkg/safe"
)

// Client issues typed requests against a mempool.space / Esplora API base URL.
// It holds no per-call state and is safe to share across goroutines as long
// as its Sender is.
//
// Path segments (addresses, hashes) are inserted verbatim without percent
// encoding; bitcoin address and hex charsets never need it.
type Client struct {
	baseURL string
	send    Sender
}

// New constructs a Client for the given base URL, e.g.
// "https://mempool.space/api". A trailing slash on the base URL is trimmed.
func New(baseURL string, sender Sender) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		send:    sender,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	body, err := c.send.Send(ctx, httpclient.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, transportError(err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindJSON, err)
	}
	return nil
}

func parseHash(body []byte) (*chainhash.Hash, error) {
	hash, err := chainhash.NewHashFromStr(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, newError(KindHexToArray, err)
	}
	return hash, nil
}

func decodeConsensusHex(body []byte) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, newError(KindDecodeHex, err)
	}
	return raw, nil
}

// GetTipHash returns the hash of the best-chain tip.
// GET /blocks/tip/hash.
func (c *Client) GetTipHash(ctx context.Context) (*chainhash.Hash, error) {
	body, err := c.get(ctx, "/blocks/tip/hash")
	if err != nil {
		return nil, err
	}
	return parseHash(body)
}

// GetTipHeight returns the height of the best-chain tip.
// GET /blocks/tip/height.
func (c *Client) GetTipHeight(ctx context.Context) (uint32, error) {
	body, err := c.get(ctx, "/blocks/tip/height")
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, newError(KindParseInt, err)
	}
	height, err := safe.Uint32(parsed)
	if err != nil {
		return 0, newError(KindParseInt, err)
	}
	return height, nil
}

// GetBlockHash returns the hash of the best-chain block at the given height.
// GET /block-height/{height}.
func (c *Client) GetBlockHash(ctx context.Context, height uint32) (*chainhash.Hash, error) {
	body, err := c.get(ctx, fmt.Sprintf("/block-height/%d", height))
	if err != nil {
		return nil, err
	}
	return parseHash(body)
}

// GetTx returns the consensus-decoded transaction.
// GET /tx/{txid}/hex.
func (c *Client) GetTx(ctx context.Context, txid *chainhash.Hash) (*wire.MsgTx, error) {
	body, err := c.get(ctx, fmt.Sprintf("/tx/%s/hex", txid))
	if err != nil {
		return nil, err
	}
	raw, err := decodeConsensusHex(body)
	if err != nil {
		return nil, err
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, newError(KindDecode, err)
	}
	return tx, nil
}

// GetTxInfo returns the decoded transaction details.
// GET /tx/{txid}.
func (c *Client) GetTxInfo(ctx context.Context, txid *chainhash.Hash) (*TxInfo, error) {
	var info TxInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s", txid), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetTxStatus returns the confirmation status of a transaction.
// GET /tx/{txid}/status.
func (c *Client) GetTxStatus(ctx context.Context, txid *chainhash.Hash) (*Status, error) {
	var status Status
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s/status", txid), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetOutspends returns the spend status of every output of a transaction.
// GET /tx/{txid}/outspends.
func (c *Client) GetOutspends(ctx context.Context, txid *chainhash.Hash) ([]OutputStatus, error) {
	var outspends []OutputStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s/outspends", txid), &outspends); err != nil {
		return nil, err
	}
	return outspends, nil
}

// GetOutputStatus returns the spend status of a single output, or nil if the
// transaction has no output at that index. Derived from GetOutspends because
// the upstream answers a default-populated status for non-existent outputs.
func (c *Client) GetOutputStatus(ctx context.Context, txid *chainhash.Hash, vout uint32) (*OutputStatus, error) {
	outspends, err := c.GetOutspends(ctx, txid)
	if err != nil {
		return nil, err
	}
	if uint64(vout) >= uint64(len(outspends)) {
		return nil, nil
	}
	return &outspends[vout], nil
}

// ScriptHashPath returns the endpoint path prefix for a scriptPubKey's
// Electrum-style index: lowercase hex of its single SHA-256.
func ScriptHashPath(pkScript []byte) string {
	digest := sha256.Sum256(pkScript)
	return fmt.Sprintf("/scripthash/%s", hex.EncodeToString(digest[:]))
}

// GetScriptHashTxs returns a page of confirmed transaction history for a
// scriptPubKey, 25 per page. A nil lastSeen requests the first page; pass the
// last txid of the previous page to continue.
// GET /scripthash/{sha256(script)}/txs[/chain/{lastSeen}].
func (c *Client) GetScriptHashTxs(ctx context.Context, pkScript []byte, lastSeen *chainhash.Hash) ([]AddressTx, error) {
	path := ScriptHashPath(pkScript) + "/txs"
	if lastSeen != nil {
		path += fmt.Sprintf("/chain/%s", lastSeen)
	}
	var txs []AddressTx
	if err := c.getJSON(ctx, path, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetAddressTxs returns a page of transaction history for an address, 25 per
// page. A nil afterTxid requests the first page.
// GET /address/{address}/txs[?after_txid={afterTxid}].
func (c *Client) GetAddressTxs(ctx context.Context, address btcutil.Address, afterTxid *chainhash.Hash) ([]AddressTx, error) {
	path := fmt.Sprintf("/address/%s/txs", address.EncodeAddress())
	if afterTxid != nil {
		path += fmt.Sprintf("?after_txid=%s", afterTxid)
	}
	var txs []AddressTx
	if err := c.getJSON(ctx, path, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetAddressUtxos returns the unspent outputs of an address.
// GET /address/{address}/utxo.
func (c *Client) GetAddressUtxos(ctx context.Context, address btcutil.Address) ([]AddressUtxo, error) {
	var utxos []AddressUtxo
	if err := c.getJSON(ctx, fmt.Sprintf("/address/%s/utxo", address.EncodeAddress()), &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}

// GetAddressInfo returns chain and mempool stats for an address.
// GET /address/{address}.
func (c *Client) GetAddressInfo(ctx context.Context, address btcutil.Address) (*AddressInfo, error) {
	var info AddressInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/address/%s", address.EncodeAddress()), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetRecommendedFees returns the current fee estimates.
// GET /v1/fees/recommended.
func (c *Client) GetRecommendedFees(ctx context.Context) (*RecommendedFees, error) {
	var fees RecommendedFees
	if err := c.getJSON(ctx, "/v1/fees/recommended", &fees); err != nil {
		return nil, err
	}
	return &fees, nil
}

// GetMempoolInfo returns mempool statistics.
// GET /mempool.
func (c *Client) GetMempoolInfo(ctx context.Context) (*MempoolStats, error) {
	var stats MempoolStats
	if err := c.getJSON(ctx, "/mempool", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetMempoolTxids returns the txids currently in the mempool.
// GET /mempool/txids.
func (c *Client) GetMempoolTxids(ctx context.Context) ([]*chainhash.Hash, error) {
	var raw []string
	if err := c.getJSON(ctx, "/mempool/txids", &raw); err != nil {
		return nil, err
	}
	txids := make([]*chainhash.Hash, 0, len(raw))
	for _, s := range raw {
		txid, err := chainhash.NewHashFromStr(s)
		if err != nil {
			return nil, newError(KindHexToArray, err)
		}
		txids = append(txids, txid)
	}
	return txids, nil
}

// GetBlockHeader returns the consensus-decoded header of a block.
// GET /block/{hash}/header.
func (c *Client) GetBlockHeader(ctx context.Context, hash *chainhash.Hash) (*wire.BlockHeader, error) {
	body, err := c.get(ctx, fmt.Sprintf("/block/%s/header", hash))
	if err != nil {
		return nil, err
	}
	raw, err := decodeConsensusHex(body)
	if err != nil {
		return nil, err
	}
	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, newError(KindDecode, err)
	}
	return &header, nil
}

// GetBlock returns the consensus-decoded block.
// GET /block/{hash}/raw.
func (c *Client) GetBlock(ctx context.Context, hash *chainhash.Hash) (*wire.MsgBlock, error) {
	body, err := c.get(ctx, fmt.Sprintf("/block/%s/raw", hash))
	if err != nil {
		return nil, err
	}
	var block wire.MsgBlock
	if err := block.Deserialize(bytes.NewReader(body)); err != nil {
		return nil, newError(KindDecode, err)
	}
	return &block, nil
}

// GetBlockStatus returns the best-chain status of a block.
// GET /block/{hash}/status.
func (c *Client) GetBlockStatus(ctx context.Context, hash *chainhash.Hash) (*BlockStatus, error) {
	var status BlockStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/block/%s/status", hash), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetBlocks returns the 10-block listing ending at startHeight, or at the tip
// when startHeight is nil.
// GET /blocks[/{startHeight}].
func (c *Client) GetBlocks(ctx context.Context, startHeight *uint32) ([]BlockSummary, error) {
	path := "/blocks"
	if startHeight != nil {
		path += fmt.Sprintf("/%d", *startHeight)
	}
	var blocks []BlockSummary
	if err := c.getJSON(ctx, path, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// Broadcast submits a transaction for broadcast and returns the txid echoed
// by the server. The request body is the lowercase hex of the consensus
// serialization.
// POST /tx.
func (c *Client) Broadcast(ctx context.Context, tx *wire.MsgTx) (*chainhash.Hash, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, newError(KindDecode, err)
	}
	body := []byte(hex.EncodeToString(buf.Bytes()))
	resp, err := c.send.Send(ctx, httpclient.MethodPost, c.baseURL+"/tx", body)
	if err != nil {
		return nil, transportError(err)
	}
	return parseHash(resp)
}

// GetMerkleProof returns the merkle inclusion proof of a confirmed
// transaction in Electrum format.
// GET /tx/{txid}/merkle-proof.
func (c *Client) GetMerkleProof(ctx context.Context, txid *chainhash.Hash) (*MerkleProof, error) {
	var proof MerkleProof
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s/merkle-proof", txid), &proof); err != nil {
		return nil, err
	}
	return &proof, nil
}

// GetTxAtBlockIndex returns the txid at the given index within a block.
// GET /block/{hash}/txid/{index}.
func (c *Client) GetTxAtBlockIndex(ctx context.Context, hash *chainhash.Hash, index uint32) (*chainhash.Hash, error) {
	body, err := c.get(ctx, fmt.Sprintf("/block/%s/txid/%d", hash, index))
	if err != nil {
		return nil, err
	}
	return parseHash(body)
}

// GetMerkleBlock returns the merkle block proof of a confirmed transaction in
// BIP-37 format.
// GET /tx/{txid}/merkleblock-proof.
func (c *Client) GetMerkleBlock(ctx context.Context, txid *chainhash.Hash) (*wire.MsgMerkleBlock, error) {
	body, err := c.get(ctx, fmt.Sprintf("/tx/%s/merkleblock-proof", txid))
	if err != nil {
		return nil, err
	}
	raw, err := decodeConsensusHex(body)
	if err != nil {
		return nil, err
	}
	var merkleBlock wire.MsgMerkleBlock
	if err := merkleBlock.BtcDecode(bytes.NewReader(raw), wire.ProtocolVersion, wire.LatestEncoding); err != nil {
		return nil, newError(KindDecode, err)
	}
	return &merkleBlock, nil
}
