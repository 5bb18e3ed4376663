package keyopt

import "testing"

func TestNewPopulationRejectsInvalidConfig(t *testing.T) {
	cases := []PopulationConfig{
		{PopSize: 0, ClimberCnt: 1},
		{PopSize: 10, ClimberCnt: 0},
		{PopSize: 10, ClimberCnt: 20},
	}
	for _, cfg := range cases {
		if _, err := NewPopulation(cfg); err == nil {
			t.Fatalf("NewPopulation(%+v) should fail", cfg)
		}
	}
}

func TestPopulationGenerationLoop(t *testing.T) {
	cfg := PopulationConfig{PopSize: 12, ClimberCnt: 4, Amounts: []int{1, 2}, Seed: 9}
	pop, err := NewPopulation(cfg)
	if err != nil {
		t.Fatalf("NewPopulation: %v", err)
	}

	corpus := sampleCorpus()
	var lastTop float64
	for gen := 1; gen <= 3; gen++ {
		pop.MutateClimbers()
		if err := pop.EvalGenPop(corpus); err != nil {
			t.Fatalf("EvalGenPop: %v", err)
		}
		pop.SetupClimbers()
		pop.ClimbKbs(corpus, gen)

		if pop.TopScore() < lastTop {
			t.Fatalf("generation %d: top score regressed %v -> %v", gen, lastTop, pop.TopScore())
		}
		lastTop = pop.TopScore()

		if len(pop.Climbers()) != cfg.ClimberCnt {
			t.Fatalf("generation %d: climber count = %d, want %d", gen, len(pop.Climbers()), cfg.ClimberCnt)
		}

		eliteCount := 0
		for _, c := range pop.Climbers() {
			if c.IsElite() {
				eliteCount++
			}
			assertInvariants(t, c)
		}
		if eliteCount != eliteCnt {
			t.Fatalf("generation %d: elite count = %d, want %d", gen, eliteCount, eliteCnt)
		}
	}
}

func TestEvalGenPopRejectsEmptyCorpus(t *testing.T) {
	pop, err := NewPopulation(PopulationConfig{PopSize: 4, ClimberCnt: 2})
	if err != nil {
		t.Fatalf("NewPopulation: %v", err)
	}
	pop.MutateClimbers()
	if err := pop.EvalGenPop(nil); err != ErrEmptyCorpus {
		t.Fatalf("EvalGenPop(nil) = %v, want ErrEmptyCorpus", err)
	}
}
