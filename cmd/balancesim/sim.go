package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/auraforge/internal/config"
	"github.com/udisondev/auraforge/internal/data"
	"github.com/udisondev/auraforge/internal/db"
	"github.com/udisondev/auraforge/internal/game/anvil"
	"github.com/udisondev/auraforge/internal/game/character"
	"github.com/udisondev/auraforge/internal/game/combat"
	"github.com/udisondev/auraforge/internal/game/dice"
	"github.com/udisondev/auraforge/internal/game/gate"
	"github.com/udisondev/auraforge/internal/game/loot"
	"github.com/udisondev/auraforge/internal/game/rarity"
	"github.com/udisondev/auraforge/internal/game/stats"
	"github.com/udisondev/auraforge/internal/model"
)

// craftsPerCharacter — сколько раз персонаж крафтит перед боями.
const craftsPerCharacter = 40

// simEpoch — виртуальное начало прогона; seeds боёв зависят от времени.
var simEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

type simulator struct {
	cfg      config.Simulator
	seed     uint64
	resolver *combat.Resolver
	gen      *loot.Generator
	curve    *rarity.Curve
	store    *db.CharacterStore // nil без persist
}

func newSimulator(cfg config.Simulator, catalog *data.Catalog, seed uint64) *simulator {
	return &simulator{
		cfg:      cfg,
		seed:     seed,
		resolver: combat.NewResolver(cfg.Balance.Combat),
		gen:      loot.NewGenerator(catalog),
		curve:    rarity.NewCurve(cfg.Balance.Rarity),
	}
}

type shardJob struct {
	class model.Class
	shard int
	runs  int
}

// shards splits runs of every class across workers.
func shards(runs, workers int) []shardJob {
	if runs <= 0 {
		return nil
	}
	n := min(workers, runs)
	jobs := make([]shardJob, 0, n*len(model.AllClasses))
	for _, class := range model.AllClasses {
		for i := range n {
			per := runs / n
			if i < runs%n {
				per++
			}
			jobs = append(jobs, shardJob{class: class, shard: i, runs: per})
		}
	}
	return jobs
}

// Run fans shards out to an errgroup and merges per-class results.
func (s *simulator) Run(ctx context.Context) (*Report, error) {
	workers := s.cfg.Simulation.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	jobs := shards(s.cfg.Simulation.Runs, workers)
	results := make([]ClassResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := s.runShard(gctx, job)
			if err != nil {
				return fmt.Errorf("%s shard %d: %w", job.class, job.shard, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Seed: s.seed, Level: s.cfg.Simulation.Level}
	byClass := make(map[model.Class]*ClassResult, len(model.AllClasses))
	for _, class := range model.AllClasses {
		report.Classes = append(report.Classes, ClassResult{Class: class})
	}
	for i := range report.Classes {
		byClass[report.Classes[i].Class] = &report.Classes[i]
	}
	for _, res := range results {
		byClass[res.Class].Merge(res)
	}
	return report, nil
}

func (s *simulator) rng(job shardJob) *rand.Rand {
	return dice.New(combat.SeedFor(
		strconv.FormatUint(s.seed, 10),
		job.class.String(),
		strconv.Itoa(job.shard),
	))
}

func (s *simulator) runShard(ctx context.Context, job shardJob) (ClassResult, error) {
	r := s.rng(job)
	now := simEpoch

	c, anv, err := s.buildCharacter(job, r, now)
	if err != nil {
		return ClassResult{}, err
	}

	res := ClassResult{Class: job.class, Characters: 1}
	res.Power = equippedPower(c)
	res.Aura = stats.Aura(c.Stats())

	board := gate.NewBoard(s.resolver, s.gen, anv)
	p := c.Player()
	for range job.runs {
		if err := ctx.Err(); err != nil {
			return ClassResult{}, err
		}

		_, maxEnergy := p.Energy()
		p.RestoreEnergy(maxEnergy)
		board.Refresh(c.Stats(), r)

		g, err := board.Accept(c, 0, now)
		if err != nil {
			return ClassResult{}, err
		}
		now = now.Add(g.Duration)

		out, err := board.ResolveIfReady(c, now)
		if err != nil {
			return ClassResult{}, err
		}
		res.Record(out)

		// дроп продаём, чтобы сумка не переполнялась
		if out.HasDrop && !out.DropToInbox {
			if _, err := c.Sell(out.Drop.ID); err != nil {
				return ClassResult{}, err
			}
		}
	}
	res.FinalLevel = p.Level()

	if s.store != nil {
		if err := s.store.Save(ctx, c, anv.Level()); err != nil {
			return ClassResult{}, err
		}
	}

	slog.Debug("shard finished",
		"class", job.class,
		"shard", job.shard,
		"fights", res.Fights,
		"wins", res.Wins)

	return res, nil
}

// buildCharacter levels a fresh character to the configured level,
// spends every point on the class main stat and gears it through the anvil.
func (s *simulator) buildCharacter(job shardJob, r *rand.Rand, now time.Time) (*character.Character, *anvil.Anvil, error) {
	name := job.class.String() + "-" + strconv.Itoa(job.shard)
	p, err := model.NewPlayer(name, job.class)
	if err != nil {
		return nil, nil, err
	}
	st := p.State()
	st.ID = dice.NewUUID(r)
	p = model.RestorePlayer(st)

	bal := s.cfg.Balance
	c := character.New(p, bal.InventoryCapacity)

	for p.Level() < s.cfg.Simulation.Level {
		xp, next := p.XP()
		c.GainXP(next - xp)
	}
	mainStat := data.GetClassInfo(job.class).MainStat
	for {
		if err := c.SpendPoint(mainStat); err != nil {
			if errors.Is(err, character.ErrNoPoints) {
				break
			}
			return nil, nil, err
		}
	}

	anv := anvil.New(bal.Anvil, bal.MaxLevel, s.curve, s.gen)
	anv.SetLevel(s.cfg.Simulation.Level)

	p.AddEssence(craftsPerCharacter * bal.Anvil.EssencePerCraft)
	for range craftsPerCharacter {
		if _, err := anv.Craft(c, r, now); err != nil {
			return nil, nil, err
		}
		c.AutoEquip()
		for _, it := range c.Inventory().Items() {
			if _, err := c.Sell(it.ID); err != nil {
				return nil, nil, err
			}
		}
	}

	return c, anv, nil
}

func equippedPower(c *character.Character) int64 {
	var total int64
	for _, it := range c.Equipment().Items() {
		total += it.Power
	}
	return total
}
