// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command rhfuzz drives rhmap.Map[int,int] through randomized operations,
// cross-checking every one against a plain Go map[int]int oracle. It is a
// soak-testing auxiliary, not part of the package's public surface, and is
// meant for CI runs longer than a single go test invocation tolerates.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/polarhash/rhindex/rhmap"
)

func main() {
	iterations := flag.Int("iterations", 1_000_000, "number of randomized operations to run")
	seed := flag.Int64("seed", 1, "PRNG seed, for reproducing a failure")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *iterations, *seed); err != nil {
		logger.Error("divergence detected", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("rhfuzz completed with no divergence", zap.Int("iterations", *iterations))
}

// run executes iterations randomized operations against both an
// rhmap.Map[int,int] and a map[int]int oracle, returning the first
// divergence it finds.
func run(logger *zap.Logger, iterations int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	m := rhmap.New[int, int](0)
	defer m.Close()
	oracle := make(map[int]int)

	const keySpace = 10000
	const logEvery = 100000

	for i := 0; i < iterations; i++ {
		if i > 0 && i%logEvery == 0 {
			logger.Info("progress",
				zap.Int("iteration", i),
				zap.Int("size", m.Len()),
			)
		}

		k := rng.Intn(keySpace)
		switch op := rng.Float64(); {
		case op < 0.45:
			v := rng.Int()
			m.Put(k, v)
			oracle[k] = v
		case op < 0.75:
			m.Delete(k)
			delete(oracle, k)
		case op < 0.85:
			m.Clear()
			oracle = make(map[int]int)
		default:
			got, gotOK := m.Get(k)
			want, wantOK := oracle[k]
			if gotOK != wantOK || got != want {
				return fmt.Errorf("iteration %d: Get(%d) = (%d, %t), oracle = (%d, %t)",
					i, k, got, gotOK, want, wantOK)
			}
		}

		if m.Len() != len(oracle) {
			return fmt.Errorf("iteration %d: Len() = %d, oracle has %d entries", i, m.Len(), len(oracle))
		}
	}

	return verifyFinalState(m, oracle)
}

// verifyFinalState does one full pass comparing every oracle entry against
// the map, and every map entry against the oracle, catching any divergence
// the random lookups in run's main loop happened not to sample.
func verifyFinalState(m *rhmap.Map[int, int], oracle map[int]int) error {
	for k, want := range oracle {
		got, ok := m.Get(k)
		if !ok || got != want {
			return fmt.Errorf("final check: Get(%d) = (%d, %t), oracle wants (%d, true)", k, got, ok, want)
		}
	}
	count := 0
	var err error
	m.All(func(k, v int) bool {
		count++
		if want, ok := oracle[k]; !ok || want != v {
			err = fmt.Errorf("final check: map has (%d, %d) not present in oracle", k, v)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if count != len(oracle) {
		return fmt.Errorf("final check: All() visited %d entries, oracle has %d", count, len(oracle))
	}
	return nil
}
