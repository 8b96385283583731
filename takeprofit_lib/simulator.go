package takeprofit

import (
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// PathOutcome records whether a single simulated trajectory crossed the
// take-profit barrier before expiration, and if so when and for what payoff.
type PathOutcome struct {
	Hit          bool
	HitTimeYears float64 // meaningful only when Hit
	PayoffAtHit  float64
}

// PathSimulator generates independent GBM price paths and tests each one for
// a first crossing of the barrier. Every path draws from its own PCG
// substream derived from Seed and the path index, so results are identical
// for a given seed no matter how many workers run.
type PathSimulator struct {
	Seed    uint64
	Workers int // <= 0 means one worker per CPU
}

// Golden-ratio increment, spreads sequential path indices across the seed
// space before they feed the PCG source.
const pathSeedStride = 0x9E3779B97F4A7C15

// Simulate runs params.PathCount trajectories against the barrier price and
// returns one outcome per path. Log-price increments follow
//
//	ln(S[t+dt]) = ln(S[t]) + (r - q - 0.5*sigma^2)*dt + sigma*sqrt(dt)*Z
//
// over TimeStepsPerPath equal increments of the horizon. The starting spot
// participates in the crossing test: a barrier at or below spot hits at t=0.
func (ps PathSimulator) Simulate(params *ParameterSet, barrier float64) []PathOutcome {
	paths := params.PathCount
	outcomes := make([]PathOutcome, paths)

	workers := ps.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > paths {
		workers = paths
	}

	// Chunked fan-out: each worker owns a contiguous slice of path indices
	// and writes only its own outcomes, so no synchronization is needed
	// beyond the WaitGroup.
	chunk := (paths + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > paths {
			hi = paths
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				outcomes[i] = ps.simulatePath(params, barrier, i)
			}
		}(lo, hi)
	}
	wg.Wait()

	return outcomes
}

// simulatePath walks one trajectory in log space and reports its first
// barrier crossing, if any.
func (ps PathSimulator) simulatePath(params *ParameterSet, barrier float64, pathIndex int) PathOutcome {
	steps := params.TimeStepsPerPath
	dt := params.TimeToExpiration / float64(steps)

	driftTerm := (params.RiskFreeRate - params.DividendYield - 0.5*params.ImpliedVolatility*params.ImpliedVolatility) * dt
	volTerm := params.ImpliedVolatility * math.Sqrt(dt)
	payoff := barrier - params.Strike

	logPrice := math.Log(params.Spot)
	logBarrier := math.Log(barrier)
	if logPrice >= logBarrier {
		return PathOutcome{Hit: true, HitTimeYears: 0, PayoffAtHit: payoff}
	}

	src := rand.NewSource(ps.Seed + uint64(pathIndex+1)*pathSeedStride)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	for step := 1; step <= steps; step++ {
		logPrice += driftTerm + volTerm*normal.Rand()
		if logPrice >= logBarrier {
			return PathOutcome{
				Hit:          true,
				HitTimeYears: float64(step) * dt,
				PayoffAtHit:  payoff,
			}
		}
	}

	return PathOutcome{Hit: false}
}
