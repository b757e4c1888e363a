// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/execstate/block"
	"github.com/vechain/execstate/thor"
)

var chainID = big.NewInt(1)

func signedTx(t *testing.T, nonce uint64) (*types.Transaction, thor.Address) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	to := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	tx, err := types.SignNewTx(key, types.LatestSignerForChainID(chainID), &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(10),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(100),
	})
	require.NoError(t, err)
	return tx, thor.Address(crypto.PubkeyToAddress(key.PublicKey))
}

func TestBlock(t *testing.T) {
	tx1, _ := signedTx(t, 0)
	tx2, _ := signedTx(t, 1)

	var (
		parent      = thor.Keccak256([]byte("parent"))
		stateRoot   = thor.BytesToBytes32([]byte("state"))
		beneficiary = thor.BytesToAddress([]byte("coinbase"))
	)

	blk := new(block.Builder).
		ParentHash(parent).
		Number(10).
		Timestamp(1234).
		GasLimit(30_000_000).
		GasUsed(42000).
		Beneficiary(beneficiary).
		StateRoot(stateRoot).
		Extra([]byte("extra")).
		Transaction(tx1).
		Transaction(tx2).
		Build()

	h := blk.Header()
	assert.Equal(t, parent, blk.ParentHash())
	assert.Equal(t, uint64(10), blk.Number())
	assert.Equal(t, uint64(1234), h.Timestamp())
	assert.Equal(t, uint64(30_000_000), h.GasLimit())
	assert.Equal(t, uint64(42000), h.GasUsed())
	assert.Equal(t, beneficiary, h.Beneficiary())
	assert.Equal(t, stateRoot, h.StateRoot())
	assert.Equal(t, []byte("extra"), h.Extra())
	assert.Equal(t, block.TxsRoot(types.Transactions{tx1, tx2}), h.TxsRoot())
	assert.Len(t, blk.Transactions(), 2)

	assert.Equal(t, blk.Hash(), blk.Hash())
	assert.NotEqual(t, blk.Hash(), new(block.Builder).Number(10).Build().Hash())
	assert.Equal(t, thor.Bytes32(types.EmptyTxsHash), block.TxsRoot(nil))
	assert.Contains(t, h.String(), blk.Hash().String())

	data, err := rlp.EncodeToBytes(blk)
	require.NoError(t, err)

	var decoded block.Block
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, blk.Hash(), decoded.Hash())
	assert.Equal(t, tx2.Hash(), decoded.Transactions()[1].Hash())
}

func TestSeal(t *testing.T) {
	tx1, sender1 := signedTx(t, 0)
	tx2, sender2 := signedTx(t, 0)

	blk := new(block.Builder).Number(1).Transaction(tx1).Transaction(tx2).Build()

	sealed, err := block.Seal(blk, types.LatestSignerForChainID(chainID))
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{sender1, sender2}, sealed.Senders())
	assert.Same(t, blk, sealed.Unseal())
	assert.Equal(t, blk.Hash(), sealed.Hash())

	data, err := rlp.EncodeToBytes(sealed)
	require.NoError(t, err)
	var decoded block.SealedBlock
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, sealed.Hash(), decoded.Hash())
	assert.Equal(t, sealed.Senders(), decoded.Senders())

	// wrong chain id
	_, err = block.Seal(blk, types.LatestSignerForChainID(big.NewInt(2)))
	assert.Error(t, err)

	_, err = block.NewSealedBlock(blk, []thor.Address{sender1})
	assert.True(t, errors.Is(err, block.ErrSendersMismatch))
}
