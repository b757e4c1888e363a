// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/holiman/uint256"

	"github.com/vechain/execstate/thor"
)

// Account is the state of an account at some point of the chain.
// It's immutable once built, and shared by pointer.
type Account struct {
	Nonce    uint64
	Balance  *uint256.Int
	CodeHash thor.Bytes32
	Code     []byte `rlp:"optional"`
}

// NewAccount creates an account. The code hash is computed from code.
func NewAccount(nonce uint64, balance *uint256.Int, code []byte) *Account {
	codeHash := thor.EmptyCodeHash
	if len(code) > 0 {
		codeHash = thor.Keccak256(code)
	}
	if balance == nil {
		balance = new(uint256.Int)
	}
	return &Account{
		Nonce:    nonce,
		Balance:  new(uint256.Int).Set(balance),
		CodeHash: codeHash,
		Code:     code,
	}
}

// BalanceOf returns the balance, never nil.
func (a *Account) BalanceOf() *uint256.Int {
	if a.Balance == nil {
		return new(uint256.Int)
	}
	return a.Balance
}

// IsEmpty returns if an account is empty.
// An empty account has zero nonce, zero balance and no code.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 &&
		a.BalanceOf().IsZero() &&
		(a.CodeHash.IsZero() || a.CodeHash == thor.EmptyCodeHash)
}

// Equal reports whether a and b describe the same state. Two nil accounts are equal.
func (a *Account) Equal(b *Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Nonce == b.Nonce &&
		a.BalanceOf().Eq(b.BalanceOf()) &&
		a.CodeHash == b.CodeHash &&
		bytes.Equal(a.Code, b.Code)
}
