// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotificationKind tells how the canonical chain changed.
type NotificationKind uint8

const (
	Committed NotificationKind = iota + 1
	Reverted
	Reorged
)

func (k NotificationKind) String() string {
	switch k {
	case Committed:
		return "committed"
	case Reverted:
		return "reverted"
	case Reorged:
		return "reorged"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Notification is a change of the canonical chain, handed over to consumers
// such as persistence or the write-ahead log.
type Notification struct {
	Kind NotificationKind
	Old  *Segment
	New  *Segment
}

// NewCommitted creates a notification of newly committed blocks.
func NewCommitted(committed *Segment) *Notification {
	return &Notification{Kind: Committed, New: committed}
}

// NewReverted creates a notification of reverted blocks.
func NewReverted(reverted *Segment) *Notification {
	return &Notification{Kind: Reverted, Old: reverted}
}

// NewReorged creates a notification of old blocks replaced by new ones.
func NewReorged(reverted, committed *Segment) *Notification {
	return &Notification{Kind: Reorged, Old: reverted, New: committed}
}

// CommittedChain returns the committed segment, nil if none.
func (n *Notification) CommittedChain() *Segment {
	return n.New
}

// RevertedChain returns the reverted segment, nil if none.
func (n *Notification) RevertedChain() *Segment {
	return n.Old
}

// Validate checks that the segments present match the kind.
func (n *Notification) Validate() error {
	switch {
	case n.Kind == Committed && n.New != nil && n.Old == nil,
		n.Kind == Reverted && n.Old != nil && n.New == nil,
		n.Kind == Reorged && n.Old != nil && n.New != nil:
		return nil
	default:
		return errors.Errorf("malformed %v notification", n.Kind)
	}
}
