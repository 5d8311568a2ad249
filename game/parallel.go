package game

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/lattice/params"
)

// defaultParallelThreshold is used when the config leaves it unset.
// Below the threshold, single-threaded is faster due to goroutine overhead.
const defaultParallelThreshold = 512

// workChunk represents a range of instances for a worker to evaluate.
// Every chunk of one frame shares the same snapshot and time.
type workChunk struct {
	start, end int
	params     *params.Parameters
	time       float64
	refresh    bool // recompute the cached base noise first
}

// parallelState holds resources for parallel evaluation.
type parallelState struct {
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{numWorkers: workers}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// evaluateAll evaluates every instance against one snapshot, choosing
// single or parallel based on instance count.
func (g *Game) evaluateAll(p params.Parameters, refresh bool) {
	n := g.grid.Len()
	if n == 0 {
		return
	}

	threshold := g.cfg.Loop.ParallelThreshold
	if threshold <= 0 {
		threshold = defaultParallelThreshold
	}

	if n < threshold || g.parallel.numWorkers < 2 {
		g.computeChunk(workChunk{start: 0, end: n, params: &p, time: g.time, refresh: refresh})
		return
	}
	g.computeParallel(n, &p, refresh)
}

// computeParallel dispatches work to the worker pool and waits for it.
func (g *Game) computeParallel(n int, p *params.Parameters, refresh bool) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end, params: p, time: g.time, refresh: refresh}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk evaluates instances [start, end). Workers write disjoint
// ranges of the cache and evaluation buffers.
func (g *Game) computeChunk(c workChunk) {
	instances := g.grid.Instances()
	base := g.cache.base
	noise := g.graph.Noise()

	for i := c.start; i < c.end; i++ {
		pos := instances[i].Position
		if c.refresh {
			base[i] = noise.Sample(pos, c.params.TexScale)
		}
		g.evals[i] = g.graph.EvaluateBase(pos, base[i], c.time, *c.params)
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
