// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds small goroutine helpers.
package co

import (
	"runtime"
	"sync"
)

// Parallel to run a batch of work using as many CPU as it can.
// The returned channel is closed once every queued work has finished.
func Parallel(cb func(queue chan<- func())) <-chan struct{} {
	return ParallelN(runtime.NumCPU(), cb)
}

// ParallelN is Parallel with at most n concurrent workers.
func ParallelN(n int, cb func(queue chan<- func())) <-chan struct{} {
	if n < 1 {
		n = 1
	}
	queue := make(chan func(), n*2)
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			for work := range queue {
				work()
			}
		}()
	}

	cb(queue)
	close(queue)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}
