// Package insight produces analyst notes for a single player: percentile
// facts computed deterministically against the full dataset, narrated by the
// language model under a scout persona. The numbers never come from the
// model.
package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mwinther/scoutline/internal/domain"
	"github.com/mwinther/scoutline/internal/llm"
	"github.com/mwinther/scoutline/internal/profile"
)

// anomalyPercentile marks a metric standout worth flagging even when the
// metric belongs to a different profile.
const anomalyPercentile = 90.0

// factLimit caps how many strengths and weaknesses a note covers.
const factLimit = 4

// Fact is one metric observation: the player's value and where it sits in
// the full dataset.
type Fact struct {
	Metric     string
	Value      float64
	Percentile float64
}

// Report is the deterministic half of an analyst note.
type Report struct {
	Player     string
	Profile    string
	Strengths  []Fact
	Weaknesses []Fact
	Anomalies  []string
}

// Engine builds analyst notes.
type Engine struct {
	client   llm.Client
	registry *profile.Registry
	persona  string
}

func NewEngine(client llm.Client, registry *profile.Registry, persona string) *Engine {
	return &Engine{client: client, registry: registry, persona: persona}
}

// Analyze computes the percentile facts for one player under the active
// profile. Strengths and weaknesses come from the profile's own metrics;
// anomalies flag standout numbers on other profiles' headline metrics.
func (e *Engine) Analyze(dataset *domain.Frame, playerName string, active *profile.Profile) (*Report, error) {
	row, err := findPlayer(dataset, playerName)
	if err != nil {
		return nil, err
	}

	report := &Report{Player: playerName, Profile: active.Name}

	var facts []Fact
	for metric := range active.Metrics {
		if f, ok := metricFact(dataset, row, metric); ok {
			facts = append(facts, f)
		}
	}
	sort.Slice(facts, func(i, j int) bool {
		if facts[i].Percentile != facts[j].Percentile {
			return facts[i].Percentile > facts[j].Percentile
		}
		return facts[i].Metric < facts[j].Metric
	})
	report.Strengths = append(report.Strengths, facts[:minInt(factLimit, len(facts))]...)
	for i := len(facts) - 1; i >= 0 && len(report.Weaknesses) < factLimit; i-- {
		report.Weaknesses = append(report.Weaknesses, facts[i])
	}

	report.Anomalies = e.anomalies(dataset, row, active)
	return report, nil
}

// anomalies checks the player against every other profile's heaviest metric.
func (e *Engine) anomalies(dataset *domain.Frame, row int, active *profile.Profile) []string {
	var notes []string
	for _, name := range e.registry.Names() {
		if name == active.Name {
			continue
		}
		other, err := e.registry.Lookup(name)
		if err != nil {
			continue
		}
		metric := topMetric(other.Metrics)
		if metric == "" {
			continue
		}
		if _, owned := active.Metrics[metric]; owned {
			continue
		}
		f, ok := metricFact(dataset, row, metric)
		if !ok || f.Percentile < anomalyPercentile {
			continue
		}
		notes = append(notes, fmt.Sprintf("%s is in the %.0fth percentile for %s, the headline metric of the %s profile",
			reportName(dataset, row), f.Percentile, metric, name))
	}
	return notes
}

// Note analyzes the player and narrates the report. The narration degrades
// gracefully: on any model failure the deterministic fact sheet is returned
// instead of an error.
func (e *Engine) Note(ctx context.Context, dataset *domain.Frame, playerName string, active *profile.Profile) (string, error) {
	report, err := e.Analyze(dataset, playerName, active)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskInsight,
		SystemPrompt: e.persona,
		Messages:     []llm.Message{{Role: "user", Content: report.FactSheet()}},
	})
	if err != nil || strings.TrimSpace(resp.Text) == "" {
		return report.FactSheet(), nil
	}
	return strings.TrimSpace(resp.Text), nil
}

// FactSheet renders the report as plain text: the model's input, and the
// user-facing fallback when narration fails.
func (r *Report) FactSheet() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyst facts for %s (profile: %s).\n", r.Player, r.Profile)
	b.WriteString("Strengths:\n")
	for _, f := range r.Strengths {
		fmt.Fprintf(&b, "- %s: %s (%.0fth percentile)\n", f.Metric, domain.Number(f.Value).Display(), f.Percentile)
	}
	b.WriteString("Weaknesses:\n")
	for _, f := range r.Weaknesses {
		fmt.Fprintf(&b, "- %s: %s (%.0fth percentile)\n", f.Metric, domain.Number(f.Value).Display(), f.Percentile)
	}
	for _, a := range r.Anomalies {
		fmt.Fprintf(&b, "Standout: %s.\n", a)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Percentile returns the share of the column's numeric values that are less
// than or equal to v, as a 0-100 rank. ok is false when the column has no
// numeric values.
func Percentile(dataset *domain.Frame, column string, v float64) (float64, bool) {
	vals, found := dataset.Column(column)
	if !found {
		return 0, false
	}
	total, atOrBelow := 0, 0
	for _, cell := range vals {
		n, isNum := cell.AsNumber()
		if !isNum {
			continue
		}
		total++
		if n <= v {
			atOrBelow++
		}
	}
	if total == 0 {
		return 0, false
	}
	return 100 * float64(atOrBelow) / float64(total), true
}

func metricFact(dataset *domain.Frame, row int, metric string) (Fact, bool) {
	v, ok := dataset.Value(row, metric).AsNumber()
	if !ok {
		return Fact{}, false
	}
	pct, ok := Percentile(dataset, metric, v)
	if !ok {
		return Fact{}, false
	}
	return Fact{Metric: metric, Value: v, Percentile: pct}, true
}

// topMetric returns the heaviest-weighted metric of a profile, breaking ties
// alphabetically so anomaly checks are deterministic.
func topMetric(metrics map[string]float64) string {
	best, bestWeight := "", -1.0
	names := make([]string, 0, len(metrics))
	for m := range metrics {
		names = append(names, m)
	}
	sort.Strings(names)
	for _, m := range names {
		if metrics[m] > bestWeight {
			best, bestWeight = m, metrics[m]
		}
	}
	return best
}

func findPlayer(dataset *domain.Frame, name string) (int, error) {
	if !dataset.HasColumn("name") {
		return 0, fmt.Errorf("dataset has no name column")
	}
	for i := 0; i < dataset.Len(); i++ {
		s, ok := dataset.Value(i, "name").AsString()
		if ok && strings.EqualFold(s, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("player %q is not in the dataset", name)
}

func reportName(dataset *domain.Frame, row int) string {
	s, _ := dataset.Value(row, "name").AsString()
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
