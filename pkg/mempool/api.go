package mempool

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RecommendedFees is the response to GET /v1/fees/recommended, in sats/vB.
// The upstream serves camelCase keys; decoding accepts both camelCase and
// snake_case, encoding emits snake_case.
type RecommendedFees struct {
	FastestFee  uint64 `json:"fastest_fee"`
	HalfHourFee uint64 `json:"half_hour_fee"`
	HourFee     uint64 `json:"hour_fee"`
	EconomyFee  uint64 `json:"economy_fee"`
	MinimumFee  uint64 `json:"minimum_fee"`
}

// UnmarshalJSON accepts both the server's camelCase keys and snake_case ones.
// Unknown extra fields are ignored.
func (f *RecommendedFees) UnmarshalJSON(data []byte) error {
	var raw struct {
		FastestFee       *uint64 `json:"fastest_fee"`
		FastestFeeCamel  *uint64 `json:"fastestFee"`
		HalfHourFee      *uint64 `json:"half_hour_fee"`
		HalfHourFeeCamel *uint64 `json:"halfHourFee"`
		HourFee          *uint64 `json:"hour_fee"`
		HourFeeCamel     *uint64 `json:"hourFee"`
		EconomyFee       *uint64 `json:"economy_fee"`
		EconomyFeeCamel  *uint64 `json:"economyFee"`
		MinimumFee       *uint64 `json:"minimum_fee"`
		MinimumFeeCamel  *uint64 `json:"minimumFee"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pick := func(snake, camel *uint64) uint64 {
		if snake != nil {
			return *snake
		}
		if camel != nil {
			return *camel
		}
		return 0
	}
	f.FastestFee = pick(raw.FastestFee, raw.FastestFeeCamel)
	f.HalfHourFee = pick(raw.HalfHourFee, raw.HalfHourFeeCamel)
	f.HourFee = pick(raw.HourFee, raw.HourFeeCamel)
	f.EconomyFee = pick(raw.EconomyFee, raw.EconomyFeeCamel)
	f.MinimumFee = pick(raw.MinimumFee, raw.MinimumFeeCamel)
	return nil
}

// Status is the confirmation status of a transaction or UTXO. The block
// fields are only present when Confirmed is true.
type Status struct {
	Confirmed   bool    `json:"confirmed"`
	BlockHeight *uint32 `json:"block_height,omitempty"`
	BlockHash   string  `json:"block_hash,omitempty"`
	BlockTime   *uint64 `json:"block_time,omitempty"`
}

// Vout is a transaction output. Script fields are hex and ASM renderings of
// the scriptPubKey; the address is empty for non-standard scripts.
type Vout struct {
	Scriptpubkey        string `json:"scriptpubkey"`
	ScriptpubkeyAsm     string `json:"scriptpubkey_asm"`
	ScriptpubkeyType    string `json:"scriptpubkey_type"`
	ScriptpubkeyAddress string `json:"scriptpubkey_address,omitempty"`
	Value               uint64 `json:"value"`
}

// Vin is a transaction input with its resolved previous output.
type Vin struct {
	Txid         string `json:"txid"`
	Vout         uint32 `json:"vout"`
	Prevout      Vout   `json:"prevout"`
	Scriptsig    string `json:"scriptsig"`
	ScriptsigAsm string `json:"scriptsig_asm"`
	IsCoinbase   bool   `json:"is_coinbase"`
	Sequence     uint64 `json:"sequence"`
}

// TxInfo is the decoded form of GET /tx/{txid}.
type TxInfo struct {
	Txid     string `json:"txid"`
	Version  uint32 `json:"version"`
	Locktime uint32 `json:"locktime"`
	Vin      []Vin  `json:"vin"`
	Vout     []Vout `json:"vout"`
	Size     uint32 `json:"size"`
	Weight   uint32 `json:"weight"`
	Sigops   uint64 `json:"sigops"`
	Fee      uint64 `json:"fee"`
	Status   Status `json:"status"`
}

// AddressTx is an element of an address or scripthash history page. The
// upstream serves the same shape as a single transaction lookup.
type AddressTx = TxInfo

// BlockSummary is an element of the GET /blocks listing.
type BlockSummary struct {
	ID                string  `json:"id"`
	Height            uint32  `json:"height"`
	Version           uint32  `json:"version"`
	Timestamp         uint64  `json:"timestamp"`
	TxCount           uint32  `json:"tx_count"`
	Size              uint32  `json:"size"`
	Weight            uint32  `json:"weight"`
	MerkleRoot        string  `json:"merkle_root"`
	Previousblockhash string  `json:"previousblockhash"`
	Mediantime        uint64  `json:"mediantime"`
	Nonce             uint64  `json:"nonce"`
	Bits              uint32  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
}

// BlockStatus is the response to GET /block/{hash}/status.
type BlockStatus struct {
	InBestChain bool    `json:"in_best_chain"`
	Height      *uint32 `json:"height,omitempty"`
	NextBest    string  `json:"next_best,omitempty"`
}

// AddressInfo is the response to GET /address/{address}.
type AddressInfo struct {
	Address      string       `json:"address"`
	ChainStats   AddressStats `json:"chain_stats"`
	MempoolStats AddressStats `json:"mempool_stats"`
}

// AddressStats aggregates funded/spent output counts and sums for an address.
type AddressStats struct {
	FundedTxoCount uint64 `json:"funded_txo_count"`
	FundedTxoSum   uint64 `json:"funded_txo_sum"`
	SpentTxoCount  uint64 `json:"spent_txo_count"`
	SpentTxoSum    uint64 `json:"spent_txo_sum"`
	TxCount        uint64 `json:"tx_count"`
}

// AddressUtxo is an element of the GET /address/{address}/utxo listing.
type AddressUtxo struct {
	Txid   string `json:"txid"`
	Vout   uint32 `json:"vout"`
	Value  uint64 `json:"value"`
	Status Status `json:"status"`
}

// OutputStatus is an element of the GET /tx/{txid}/outspends listing. The
// spending fields are only present when Spent is true.
type OutputStatus struct {
	Spent  bool    `json:"spent"`
	Txid   string  `json:"txid,omitempty"`
	Vin    *uint32 `json:"vin,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// MempoolStats is the response to GET /mempool.
type MempoolStats struct {
	Count        uint64              `json:"count"`
	Vsize        uint64              `json:"vsize"`
	TotalFee     uint64              `json:"total_fee"`
	FeeHistogram []FeeHistogramEntry `json:"fee_histogram"`
}

// FeeHistogramEntry is one (fee rate, vsize) bucket of the mempool fee
// histogram, transported as a 2-element JSON array.
type FeeHistogramEntry struct {
	FeeRate float64
	VSize   uint64
}

// UnmarshalJSON decodes a [feeRate, vsize] pair.
func (e *FeeHistogramEntry) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("fee histogram entry has %d elements, want 2", len(pair))
	}
	feeRate, err := pair[0].Float64()
	if err != nil {
		return fmt.Errorf("fee histogram rate: %w", err)
	}
	vsize, err := strconv.ParseUint(pair[1].String(), 10, 64)
	if err != nil {
		return fmt.Errorf("fee histogram vsize: %w", err)
	}
	e.FeeRate = feeRate
	e.VSize = vsize
	return nil
}

// MarshalJSON encodes the entry back into a [feeRate, vsize] pair.
func (e FeeHistogramEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.FeeRate, e.VSize})
}

// MerkleProof is the response to GET /tx/{txid}/merkle-proof.
type MerkleProof struct {
	BlockHeight uint32   `json:"block_height"`
	Merkle      []string `json:"merkle"`
	Pos         int      `json:"pos"`
}
