package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/bloodfarm/ecs"
	"github.com/plus3/bloodfarm/farm"
)

type Report struct {
	// Configuration
	Session string
	Steps   int
	DT      float64
	Config  farm.Config

	// Results
	TotalTime     time.Duration
	StepTime      Stats
	Final         farm.Snapshot
	Systems       []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// SimulatedTime is the game time covered by the steps that ran.
func (r *Report) SimulatedTime() time.Duration {
	return time.Duration(float64(len(r.StepTime.Samples)) * r.DT * float64(time.Second))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Farm Simulation Report

## Run Configuration
- **Session:** {{.Session}}
- **Steps Requested:** {{.Steps}}
- **Steps Run:** {{len .StepTime.Samples}}
- **Step Size:** {{printf "%.4f" .DT}}s ({{.SimulatedTime}} simulated)
- **Economy:** start {{.Config.StartingBalance}}, cost {{.Config.SpawnCost}}, payout {{.Config.SpawnPayout}}, lifetime {{.Config.BrainLifetime}}s

## Outcome
- **Final Balance:** {{printf "%.2f" .Final.Balance}}
- **Live Brains:** {{len .Final.Brains}}
- **Player:** ({{printf "%.1f" .Final.Player.X}}, {{printf "%.1f" .Final.Player.Y}})
- **Spawned / Expired / Rejected:** {{.Final.Ledger.Spawned}} / {{.Final.Ledger.Expired}} / {{.Final.Ledger.Rejected}}
- **Net:** {{printf "%+.2f" .Final.Ledger.Net}}

## Performance Results
- **Total Run Time:** {{.TotalTime}}
- **Step Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
