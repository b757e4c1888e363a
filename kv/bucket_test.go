// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func TestBucketGetter(t *testing.T) {
	m := mem{"e\x00\x01": "entry1", "e\x00\x02": "entry2", "x\x00\x01": "other"}

	tests := []struct {
		b    Bucket
		key  string
		want string
		has  bool
	}{
		{Bucket(""), "e\x00\x01", "entry1", true},
		{Bucket("e"), "\x00\x01", "entry1", true},
		{Bucket("e"), "\x00\x02", "entry2", true},
		{Bucket("e"), "\x00\x03", "", false},
		{Bucket("x"), "\x00\x01", "other", true},
		{Bucket("x"), "\x00\x02", "", false},
		{Bucket("e\x00\x01"), "", "entry1", true},
	}
	for _, tt := range tests {
		g := tt.b.NewGetter(m)
		got, err := g.Get([]byte(tt.key))
		if tt.has {
			assert.NoError(t, err)
		} else {
			assert.True(t, g.IsNotFound(err))
		}
		assert.Equal(t, tt.want, string(got), "bucket %q key %q", tt.b, tt.key)

		has, err := g.Has([]byte(tt.key))
		assert.NoError(t, err)
		assert.Equal(t, tt.has, has, "bucket %q key %q", tt.b, tt.key)
	}
}

func TestBucketPutter(t *testing.T) {
	m := mem{}
	p := Bucket("e").NewPutter(m)

	assert.NoError(t, p.Put([]byte{1}, []byte("v1")))
	assert.NoError(t, p.Put([]byte{2}, []byte("v2")))
	assert.Equal(t, mem{"e\x01": "v1", "e\x02": "v2"}, m)

	assert.NoError(t, p.Delete([]byte{1}))
	assert.Equal(t, mem{"e\x02": "v2"}, m)
}
