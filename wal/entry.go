// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wal

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/vechain/execstate/chain"
)

// Target tells why a notification was committed.
type Target uint8

const (
	// TargetCommit is a notification committed to the chain.
	TargetCommit Target = iota + 1
	// TargetCanonicalize is a notification that made blocks canonical.
	TargetCanonicalize
)

func (t Target) String() string {
	switch t {
	case TargetCommit:
		return "commit"
	case TargetCanonicalize:
		return "canonicalize"
	default:
		return fmt.Sprintf("target(%d)", uint8(t))
	}
}

// Entry is a notification stored in the log.
type Entry struct {
	FileID       uint64
	Target       Target
	Notification *chain.Notification
}

type entryRLP struct {
	Target       Target
	Notification *chain.Notification
}

func entryKey(fileID uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], fileID)
	return k[:]
}

func encodeEntry(target Target, n *chain.Notification) ([]byte, error) {
	data, err := rlp.EncodeToBytes(&entryRLP{target, n})
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

func decodeEntry(fileID uint64, raw []byte) (*Entry, error) {
	data, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptEntry, "entry %v: %v", fileID, err)
	}
	var dec entryRLP
	if err := rlp.DecodeBytes(data, &dec); err != nil {
		return nil, errors.Wrapf(ErrCorruptEntry, "entry %v: %v", fileID, err)
	}
	return &Entry{FileID: fileID, Target: dec.Target, Notification: dec.Notification}, nil
}
