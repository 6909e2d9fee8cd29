package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/xavierca1/ligue-talent/internal/entity"
)

// Motor de métricas do funil. Função pura: recebe o conteúdo atual da
// tabela e recalcula tudo do zero, sem cache e sem estado. Na escala
// atual (centenas de candidatos) o rescan completo é barato.

func ComputeFunnelSnapshot(records []entity.Candidate, now time.Time) FunnelSnapshot {
	return FunnelSnapshot{
		GeneratedAt:        now.UTC().Format(time.RFC3339),
		EventConversion:    ComputeEventConversion(records),
		TouchpointsToHire:  ComputeTouchpointsToHire(records),
		ChannelPerformance: ComputeChannelPerformance(records),
	}
}

// ComputeEventConversion agrupa por event_name (vazio fica de fora) e
// calcula leads, entrevistas e taxa de conversão por evento.
func ComputeEventConversion(records []entity.Candidate) []EventConversion {
	type bucket struct {
		leads      int
		interviews int
	}

	buckets := make(map[string]*bucket)
	for i := range records {
		c := &records[i]
		if c.EventName == "" {
			continue
		}
		b := buckets[c.EventName]
		if b == nil {
			b = &bucket{}
			buckets[c.EventName] = b
		}
		b.leads++
		if c.InterviewedOrBeyond() {
			b.interviews++
		}
	}

	out := make([]EventConversion, 0, len(buckets))
	for name, b := range buckets {
		out = append(out, EventConversion{
			EventName:     name,
			Leads:         b.leads,
			Interviews:    b.interviews,
			InterviewRate: rate(b.interviews, b.leads),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Leads != out[j].Leads {
			return out[i].Leads > out[j].Leads
		}
		return out[i].EventName < out[j].EventName
	})
	return out
}

// ComputeTouchpointsToHire: só contratados com touchpoints numérico.
// Mediana par = média dos dois do meio (sem re-arredondar).
func ComputeTouchpointsToHire(records []entity.Candidate) TouchpointsToHire {
	var vals []int
	for i := range records {
		c := &records[i]
		if c.Hired() && c.Touchpoints != nil {
			vals = append(vals, *c.Touchpoints)
		}
	}
	sort.Ints(vals)

	result := TouchpointsToHire{HiredCount: len(vals)}
	if len(vals) == 0 {
		return result
	}

	sum := 0
	for _, v := range vals {
		sum += v
	}
	avg := round2(float64(sum) / float64(len(vals)))
	result.AvgTouchpoints = &avg

	var median float64
	n := len(vals)
	if n%2 == 1 {
		median = float64(vals[n/2])
	} else {
		median = (float64(vals[n/2-1]) + float64(vals[n/2])) / 2
	}
	result.MedianTouchpoints = &median

	return result
}

// ComputeChannelPerformance agrupa por source (vazio fica de fora).
func ComputeChannelPerformance(records []entity.Candidate) []ChannelPerformance {
	type bucket struct {
		leads      int
		interviews int
		hires      int
	}

	buckets := make(map[string]*bucket)
	for i := range records {
		c := &records[i]
		if c.Source == "" {
			continue
		}
		b := buckets[c.Source]
		if b == nil {
			b = &bucket{}
			buckets[c.Source] = b
		}
		b.leads++
		if c.InterviewedOrBeyond() {
			b.interviews++
		}
		if c.Hired() {
			b.hires++
		}
	}

	out := make([]ChannelPerformance, 0, len(buckets))
	for source, b := range buckets {
		out = append(out, ChannelPerformance{
			Source:                source,
			Leads:                 b.leads,
			Interviews:            b.interviews,
			Hires:                 b.hires,
			InterviewRate:         rate(b.interviews, b.leads),
			HireRate:              rate(b.hires, b.leads),
			HireFromInterviewRate: rate(b.hires, b.interviews),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Leads != out[j].Leads {
			return out[i].Leads > out[j].Leads
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// rate: divisão por zero vira 0, nunca erro nem NaN.
func rate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return round3(float64(num) / float64(den))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
