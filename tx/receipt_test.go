// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/execstate/thor"
	"github.com/vechain/execstate/tx"
)

func newReceipts() tx.Receipts {
	return tx.Receipts{
		{
			Type:              0,
			Status:            tx.ReceiptStatusSuccessful,
			CumulativeGasUsed: 21000,
		},
		{
			Type:              2,
			Status:            tx.ReceiptStatusFailed,
			CumulativeGasUsed: 64000,
			Logs: []*tx.Log{{
				Address: thor.BytesToAddress([]byte("contract")),
				Topics:  []thor.Bytes32{thor.Keccak256([]byte("Transfer(address,address,uint256)"))},
				Data:    []byte{1, 2, 3},
			}},
		},
	}
}

// toEth converts receipts to go-ethereum's to cross check the root.
func toEth(rs tx.Receipts) types.Receipts {
	var out types.Receipts
	for _, r := range rs {
		er := &types.Receipt{
			Type:              r.Type,
			Status:            r.Status,
			CumulativeGasUsed: r.CumulativeGasUsed,
			Bloom:             r.Bloom(),
		}
		for _, l := range r.Logs {
			el := &types.Log{Address: common.Address(l.Address), Data: l.Data}
			for _, topic := range l.Topics {
				el.Topics = append(el.Topics, common.Hash(topic))
			}
			er.Logs = append(er.Logs, el)
		}
		out = append(out, er)
	}
	return out
}

func TestReceiptsRootHash(t *testing.T) {
	var empty tx.Receipts
	assert.Equal(t, tx.EmptyRoot, empty.RootHash())
	assert.Equal(t, thor.Bytes32(types.DeriveSha(types.Receipts{}, trie.NewStackTrie(nil))), empty.RootHash())

	rs := newReceipts()
	want := types.DeriveSha(toEth(rs), trie.NewStackTrie(nil))
	assert.Equal(t, thor.Bytes32(want), rs.RootHash())
	assert.NotEqual(t, tx.EmptyRoot, rs.RootHash())
}

func TestReceiptsBloom(t *testing.T) {
	rs := newReceipts()
	bloom := rs.Bloom()

	log := rs[1].Logs[0]
	assert.True(t, bloom.Test(log.Address[:]))
	assert.True(t, bloom.Test(log.Topics[0][:]))
	assert.Equal(t, types.Bloom{}, rs[0].Bloom())
	assert.Equal(t, rs[1].Bloom(), bloom)

	assert.Equal(t, uint64(64000), rs.CumulativeGasUsed())
	assert.Equal(t, uint64(0), tx.Receipts(nil).CumulativeGasUsed())
}

func TestRequestsHash(t *testing.T) {
	emptyHash := thor.MustParseBytes32("0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")

	assert.Equal(t, emptyHash, tx.Requests(nil).Hash())
	// requests without data are skipped
	assert.Equal(t, emptyHash, tx.Requests{{Type: 0}, {Type: 1}}.Hash())

	deposits := tx.Requests{{Type: 0, Data: []byte{0xaa}}}
	withdrawals := tx.Requests{{Type: 0, Data: []byte{0xaa}}, {Type: 1, Data: []byte{0xbb}}}
	assert.NotEqual(t, emptyHash, deposits.Hash())
	assert.NotEqual(t, deposits.Hash(), withdrawals.Hash())
	assert.Equal(t, thor.Bytes32(types.CalcRequestsHash([][]byte{{0, 0xaa}, {1, 0xbb}})), withdrawals.Hash())
}
