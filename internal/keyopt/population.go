package keyopt

import (
	"fmt"
	"math/rand"
	"sort"
)

// eliteCnt is spec §4.5's ELITE_CNT: exactly one layout per generation is
// marked elite.
const eliteCnt = 1

// defaultPopSize and defaultClimberCnt are spec §4.5's defaults.
const (
	defaultPopSize    = 100
	defaultClimberCnt = 20
)

// originShuffleCount is how many times each initial climber is shuffled
// away from the canonical origin placement (spec §4.5).
const originShuffleCount = 30

// PopulationConfig configures a Population at construction time.
type PopulationConfig struct {
	PopSize    int   // total population size each generation
	ClimberCnt int   // number of layouts promoted to local search each generation
	Amounts    []int // mutate_climbers draws shuffle counts uniformly from this set
	Seed       int64

	// SwapTable, if non-nil, warm-starts every initial climber via
	// NewOriginFromSwapTable instead of NewOrigin, and every climb's
	// accepted moves are recorded into it (SPEC_FULL.md SUPPLEMENTED
	// FEATURES item 1, CLI's --resume path).
	SwapTable *SwapTable
}

// DefaultPopulationConfig returns the spec's recommended defaults (pop
// size 100, climber count 20, mutation amounts {1,2,3,4}).
func DefaultPopulationConfig(seed int64) PopulationConfig {
	return PopulationConfig{
		PopSize:    defaultPopSize,
		ClimberCnt: defaultClimberCnt,
		Amounts:    []int{1, 2, 3, 4},
		Seed:       seed,
	}
}

// Population is the generational engine described in spec §4.5. It owns a
// single PRNG and drives one climb at a time; see SPEC_FULL.md §5 for how
// the CLI driver composes parallelism on top of several independent
// Populations rather than inside this type.
type Population struct {
	cfg       PopulationConfig
	rng       *rand.Rand
	pool      []*Layout
	climbers  []*Layout
	topScore  float64
	topSet    bool
	generation int
}

// NewPopulation validates cfg and builds the initial climber set: ClimberCnt
// origin layouts, each shuffled 30 times (spec §4.5). Returns
// ErrConfigInvalid if ClimberCnt > PopSize, PopSize == 0, or ClimberCnt < 1
// (spec §7).
func NewPopulation(cfg PopulationConfig) (*Population, error) {
	if cfg.PopSize == 0 || cfg.ClimberCnt < 1 || cfg.ClimberCnt > cfg.PopSize {
		return nil, fmt.Errorf("%w: pop_size=%d climber_cnt=%d", ErrConfigInvalid, cfg.PopSize, cfg.ClimberCnt)
	}
	if len(cfg.Amounts) == 0 {
		cfg.Amounts = []int{1, 2, 3, 4}
	}

	p := &Population{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}

	p.climbers = make([]*Layout, cfg.ClimberCnt)
	for i := range p.climbers {
		var l *Layout
		if cfg.SwapTable != nil {
			l = NewOriginFromSwapTable(cfg.SwapTable, p.rng)
		} else {
			l = NewOrigin()
		}
		l.Shuffle(p.rng, originShuffleCount)
		p.climbers[i] = l
	}

	return p, nil
}

// PopSize returns the configured population size.
func (p *Population) PopSize() int { return p.cfg.PopSize }

// ClimbCnt returns the configured climber count.
func (p *Population) ClimbCnt() int { return p.cfg.ClimberCnt }

// TopScore returns the best score observed across all generations so far.
func (p *Population) TopScore() float64 { return p.topScore }

// Generation returns the number of completed generations.
func (p *Population) Generation() int { return p.generation }

// Climbers returns the current climber set (read-only view; callers must
// not mutate the returned slice's layouts outside the population's own
// methods).
func (p *Population) Climbers() []*Layout { return p.climbers }

// SwapTable returns the population's accumulated swap history, or nil if
// none was configured (spec §3 SwapTable; CLI's --resume persistence).
func (p *Population) SwapTable() *SwapTable { return p.cfg.SwapTable }

// fitnessRoulette picks an index from layouts via fitness-proportionate
// roulette over .Score(). Falls back to uniform selection if every score
// is non-positive (can happen before any generation has been evaluated).
func fitnessRoulette(rng *rand.Rand, layouts []*Layout) int {
	total := 0.0
	for _, l := range layouts {
		if l.Score() > 0 {
			total += l.Score()
		}
	}
	if total <= 0 {
		return rng.Intn(len(layouts))
	}
	r := rng.Float64() * total
	sum := 0.0
	for i, l := range layouts {
		if l.Score() > 0 {
			sum += l.Score()
		}
		if sum >= r {
			return i
		}
	}
	return len(layouts) - 1
}

// MutateClimbers refills the population to PopSize: the current climbers
// stay in it, and the rest are clones of climbers chosen via
// fitness-proportionate roulette, each shuffled by a count drawn uniformly
// from cfg.Amounts (spec §4.5 step 1).
func (p *Population) MutateClimbers() {
	p.pool = make([]*Layout, 0, p.cfg.PopSize)
	p.pool = append(p.pool, p.climbers...)
	for len(p.pool) < p.cfg.PopSize {
		idx := fitnessRoulette(p.rng, p.climbers)
		child := p.climbers[idx].Clone()
		amount := p.cfg.Amounts[p.rng.Intn(len(p.cfg.Amounts))]
		child.Shuffle(p.rng, amount)
		p.pool = append(p.pool, child)
	}
}

// EvalGenPop evaluates every unevaluated layout in the population (spec
// §4.5 step 2). Returns ErrEmptyCorpus if corpus has no entries.
func (p *Population) EvalGenPop(corpus [][]byte) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	for _, l := range p.pool {
		if !l.Evaluated() {
			l.SetScore(Score(l, corpus))
		}
	}
	return nil
}

// SetupClimbers sorts the population by score descending, drains the top
// eliteCnt into the next climber set, and fills the remainder via
// fitness-proportionate roulette without replacement (spec §4.5 step 3).
func (p *Population) SetupClimbers() {
	sort.Slice(p.pool, func(i, j int) bool {
		return p.pool[i].Score() > p.pool[j].Score()
	})

	next := make([]*Layout, 0, p.cfg.ClimberCnt)
	for i := 0; i < eliteCnt && i < len(p.pool); i++ {
		elite := p.pool[i]
		elite.setElite(true)
		next = append(next, elite)
		if !p.topSet || elite.Score() > p.topScore {
			p.topScore = elite.Score()
			p.topSet = true
		}
	}

	remaining := append([]*Layout(nil), p.pool[len(next):]...)
	for len(next) < p.cfg.ClimberCnt && len(remaining) > 0 {
		idx := fitnessRoulette(p.rng, remaining)
		chosen := remaining[idx]
		chosen.setElite(false)
		next = append(next, chosen)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	p.climbers = next
	p.pool = nil
	p.generation++
}

// ClimbKbs replaces each climber in place with the result of Climb (spec
// §4.5 step 4). After each climb, if climber 0 improves TopScore, it is
// updated immediately — matching the spec's exact (if unusual) rule that
// only climber 0's progress is checked mid-loop.
func (p *Population) ClimbKbs(corpus [][]byte, outerIter int) {
	for i, climber := range p.climbers {
		p.climbers[i] = Climb(p.rng, climber, corpus, outerIter, climber.IsElite(), p.cfg.SwapTable)
		p.climbers[i].setElite(climber.IsElite())
		if i == 0 && p.climbers[0].Score() > p.topScore {
			p.topScore = p.climbers[0].Score()
			p.topSet = true
		}
	}
}
