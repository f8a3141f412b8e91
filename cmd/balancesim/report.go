package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/udisondev/auraforge/internal/game/gate"
	"github.com/udisondev/auraforge/internal/model"
)

// RankResult — бои одного ранга.
type RankResult struct {
	Fights int
	Wins   int
}

// ClassResult aggregates every shard of one class.
type ClassResult struct {
	Class      model.Class
	Characters int

	Fights   int
	Wins     int
	TimedOut int
	Turns    int

	Ranks [gate.RankCount]RankResult

	Gold       int64
	Drops      [model.RarityCount]int
	Power      int64 // сумма по персонажам
	Aura       int64 // сумма по персонажам
	FinalLevel int   // сумма по персонажам
}

// Record adds one resolved gate.
func (cr *ClassResult) Record(res gate.Result) {
	cr.Fights++
	cr.Turns += res.Outcome.Turns
	if res.Outcome.TimedOut {
		cr.TimedOut++
	}

	rank := &cr.Ranks[res.Gate.Rank]
	rank.Fights++
	if !res.Won {
		return
	}
	cr.Wins++
	rank.Wins++
	cr.Gold += res.Gate.RewardGold
	if res.HasDrop {
		cr.Drops[res.Drop.Rarity]++
	}
}

// Merge folds a shard result into cr.
func (cr *ClassResult) Merge(o ClassResult) {
	cr.Characters += o.Characters
	cr.Fights += o.Fights
	cr.Wins += o.Wins
	cr.TimedOut += o.TimedOut
	cr.Turns += o.Turns
	for i := range cr.Ranks {
		cr.Ranks[i].Fights += o.Ranks[i].Fights
		cr.Ranks[i].Wins += o.Ranks[i].Wins
	}
	cr.Gold += o.Gold
	for i := range cr.Drops {
		cr.Drops[i] += o.Drops[i]
	}
	cr.Power += o.Power
	cr.Aura += o.Aura
	cr.FinalLevel += o.FinalLevel
}

// WinRate returns wins/fights in percent, 0 without fights.
func (cr ClassResult) WinRate() float64 {
	return percent(cr.Wins, cr.Fights)
}

func (cr ClassResult) avg(total int64) int64 {
	if cr.Characters == 0 {
		return 0
	}
	return total / int64(cr.Characters)
}

// Report — итог прогона.
type Report struct {
	Seed    uint64
	Level   int
	Elapsed time.Duration
	Classes []ClassResult

	// StoredByRarity заполняется только с persist.
	StoredByRarity map[model.Rarity]int64
}

// Print writes a human-readable table.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "seed %d, level %d, elapsed %s\n\n", r.Seed, r.Level, r.Elapsed.Round(time.Millisecond))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "class\tfights\twin %\ttimeouts\tavg turns\tavg aura\tavg power\tavg level\tgold\t")
	for rank := range gate.RankCount {
		fmt.Fprintf(tw, "%s %%\t", gate.Rank(rank))
	}
	fmt.Fprintln(tw)

	for _, cr := range r.Classes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t",
			cr.Class,
			humanize.Comma(int64(cr.Fights)),
			humanize.CommafWithDigits(cr.WinRate(), 1),
			humanize.Comma(int64(cr.TimedOut)),
			humanize.CommafWithDigits(ratio(cr.Turns, cr.Fights), 1),
			humanize.Comma(cr.avg(cr.Aura)),
			humanize.Comma(cr.avg(cr.Power)),
			cr.avg(int64(cr.FinalLevel)),
			humanize.Comma(cr.Gold),
		)
		for _, rr := range cr.Ranks {
			fmt.Fprintf(tw, "%s\t", humanize.CommafWithDigits(percent(rr.Wins, rr.Fights), 1))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()

	fmt.Fprintln(w, "\ndrops by rarity:")
	for _, rar := range model.AllRarities {
		var total int
		for _, cr := range r.Classes {
			total += cr.Drops[rar]
		}
		if total == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-12s %s\n", rar, humanize.Comma(int64(total)))
	}

	if r.StoredByRarity != nil {
		fmt.Fprintln(w, "\nstored items by rarity:")
		for _, rar := range model.AllRarities {
			if n := r.StoredByRarity[rar]; n > 0 {
				fmt.Fprintf(w, "  %-12s %s\n", rar, humanize.Comma(n))
			}
		}
	}
}

func percent(part, total int) float64 {
	return ratio(part, total) * 100
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
