// Command colgraph-demo builds a small word-count-shaped graph, runs it
// through the optimizer, and prints the resulting execution plan as JSON.
// It is a demonstration entrypoint, not a CLI surface over the optimizer -
// spec §6 explicitly excludes a wire/CLI protocol, so unlike mini-Spark's
// cmd/master and cmd/worker (which take -port/-master flags and serve
// HTTP), this program takes no flags and talks to nothing.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"colgraph/internal/graph"
	"colgraph/internal/optimize"
	"colgraph/internal/schedule"
	"colgraph/internal/telemetry"
)

func main() {
	g := graph.NewArena()
	logger := telemetry.New("demo")

	lineType := graph.ElementType{Name: "line"}
	wordPairType := graph.PairOf(graph.ElementType{Name: "word"}, graph.ElementType{Name: "count"})

	lines := g.NewCollection(lineType, true)

	split := graph.Do(g, lines, wordPairType, func(v any, emit graph.EmitFn) {
		for _, w := range strings.Fields(v.(string)) {
			emit(graph.KV{Key: strings.ToLower(w), Value: 1})
		}
	})

	grouped := graph.GroupByKeyOf(g, split)

	counted := graph.Combine(g, grouped, wordPairType, func(v any, emit graph.EmitFn) {
		kv := v.(graph.KV)
		total := 0
		for _, n := range kv.Value.([]any) {
			total += n.(int)
		}
		emit(graph.KV{Key: kv.Key, Value: total})
	})
	graph.Materialize(g, counted)

	logger.Infof("built graph: %d lines -> split -> group -> combine -> counted", 1)

	plan, err := optimize.Optimize(g, []graph.CollectionHandle{lines}, []graph.CollectionHandle{counted}, optimize.Options{Log: logger})
	if err != nil {
		log.Fatalf("optimize: %v", err)
	}

	fmt.Println(describePlan(plan))
}

type stageView struct {
	MSCRs int `json:"mscr_count"`
}

func describePlan(step *schedule.ExecutionStep) string {
	var stages []stageView
	for s := step; s != nil; s = s.NextStep {
		stages = append(stages, stageView{MSCRs: len(s.MSCRSteps)})
	}
	b, err := json.MarshalIndent(stages, "", "  ")
	if err != nil {
		return fmt.Sprintf("plan: %v", err)
	}
	return string(b)
}
