package mempool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecommendedFees_DecodeAliases(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "server camelCase",
			body: `{"fastestFee":20,"halfHourFee":10,"hourFee":5,"economyFee":2,"minimumFee":1}`,
		},
		{
			name: "snake_case",
			body: `{"fastest_fee":20,"half_hour_fee":10,"hour_fee":5,"economy_fee":2,"minimum_fee":1}`,
		},
		{
			name: "unknown extra fields ignored",
			body: `{"fastestFee":20,"halfHourFee":10,"hourFee":5,"economyFee":2,"minimumFee":1,"updatedAt":"2026-08-24T00:00:00Z","source":{"node":"esplora"}}`,
		},
	}

	want := RecommendedFees{FastestFee: 20, HalfHourFee: 10, HourFee: 5, EconomyFee: 2, MinimumFee: 1}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RecommendedFees
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			require.Equal(t, want, got)
		})
	}
}

func TestRecommendedFees_RoundTrip(t *testing.T) {
	orig := RecommendedFees{FastestFee: 42, HalfHourFee: 21, HourFee: 11, EconomyFee: 3, MinimumFee: 1}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got RecommendedFees
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, orig, got)
}

func TestStatus_RoundTrip(t *testing.T) {
	height := uint32(864231)
	blockTime := uint64(1726000000)

	tests := []struct {
		name   string
		status Status
	}{
		{
			name: "confirmed carries all block fields",
			status: Status{
				Confirmed:   true,
				BlockHeight: &height,
				BlockHash:   "000000000000000000026b2d4ee71fdd4dbf07a20ce4b0b3b6e881b1c0f8e8b1",
				BlockTime:   &blockTime,
			},
		},
		{
			name:   "unconfirmed carries none",
			status: Status{Confirmed: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.status)
			require.NoError(t, err)

			var got Status
			require.NoError(t, json.Unmarshal(data, &got))
			require.Equal(t, tt.status, got)

			if !tt.status.Confirmed {
				require.NotContains(t, string(data), "block_height")
				require.NotContains(t, string(data), "block_hash")
				require.NotContains(t, string(data), "block_time")
			}
		})
	}
}

func TestMempoolStats_FeeHistogram(t *testing.T) {
	body := `{"count":3045,"vsize":1201845,"total_fee":4113790,"fee_histogram":[[8.7,102406],[1.5,1099439]]}`

	var got MempoolStats
	require.NoError(t, json.Unmarshal([]byte(body), &got))

	want := MempoolStats{
		Count:    3045,
		Vsize:    1201845,
		TotalFee: 4113790,
		FeeHistogram: []FeeHistogramEntry{
			{FeeRate: 8.7, VSize: 102406},
			{FeeRate: 1.5, VSize: 1099439},
		},
	}
	require.Equal(t, want, got)

	// Round-trip back through the pair encoding.
	data, err := json.Marshal(got)
	require.NoError(t, err)
	var again MempoolStats
	require.NoError(t, json.Unmarshal(data, &again))
	require.Equal(t, got, again)
}

func TestFeeHistogramEntry_RejectsWrongArity(t *testing.T) {
	var entry FeeHistogramEntry
	require.Error(t, json.Unmarshal([]byte(`[1.0]`), &entry))
	require.Error(t, json.Unmarshal([]byte(`[1.0,2,3]`), &entry))
}

func TestTxInfo_RoundTrip(t *testing.T) {
	height := uint32(864000)
	blockTime := uint64(1725000000)

	orig := TxInfo{
		Txid:     "000000000000000000026b2d4ee71fdd4dbf07a20ce4b0b3b6e881b1c0f8e8b1",
		Version:  2,
		Locktime: 0,
		Vin: []Vin{{
			Txid: "1111111111111111111111111111111111111111111111111111111111111111",
			Vout: 1,
			Prevout: Vout{
				Scriptpubkey:        "0014deadbeef",
				ScriptpubkeyAsm:     "OP_0 OP_PUSHBYTES_20 deadbeef",
				ScriptpubkeyType:    "v0_p2wpkh",
				ScriptpubkeyAddress: "bc1qexample",
				Value:               150000,
			},
			Scriptsig:    "",
			ScriptsigAsm: "",
			IsCoinbase:   false,
			Sequence:     4294967293,
		}},
		Vout: []Vout{{
			Scriptpubkey:     "6a0b68656c6c6f",
			ScriptpubkeyAsm:  "OP_RETURN OP_PUSHBYTES_11 68656c6c6f",
			ScriptpubkeyType: "op_return",
			Value:            0,
		}},
		Size:   221,
		Weight: 561,
		Sigops: 1,
		Fee:    4200,
		Status: Status{
			Confirmed:   true,
			BlockHeight: &height,
			BlockHash:   "000000000000000000017e2cf9a8c09fd1b2f3a4b5c6d7e8f90123456789abcd",
			BlockTime:   &blockTime,
		},
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got TxInfo
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, orig, got)
}

func TestOutputStatus_RoundTrip(t *testing.T) {
	vin := uint32(0)

	tests := []struct {
		name   string
		status OutputStatus
	}{
		{
			name: "spent",
			status: OutputStatus{
				Spent:  true,
				Txid:   "2222222222222222222222222222222222222222222222222222222222222222",
				Vin:    &vin,
				Status: &Status{Confirmed: false},
			},
		},
		{
			name:   "unspent",
			status: OutputStatus{Spent: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.status)
			require.NoError(t, err)

			var got OutputStatus
			require.NoError(t, json.Unmarshal(data, &got))
			require.Equal(t, tt.status, got)
		})
	}
}

func TestBlockStatus_Decode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want BlockStatus
	}{
		{
			name: "in best chain",
			body: `{"in_best_chain":true,"height":864000,"next_best":"000000000000000000017e2cf9a8c09fd1b2f3a4b5c6d7e8f90123456789abcd"}`,
			want: BlockStatus{
				InBestChain: true,
				Height:      ptrUint32(864000),
				NextBest:    "000000000000000000017e2cf9a8c09fd1b2f3a4b5c6d7e8f90123456789abcd",
			},
		},
		{
			name: "orphaned",
			body: `{"in_best_chain":false}`,
			want: BlockStatus{InBestChain: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got BlockStatus
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			require.Equal(t, tt.want, got)
		})
	}
}

func ptrUint32(v uint32) *uint32 {
	return &v
}
