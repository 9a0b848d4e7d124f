package alert

import (
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"liveable/internal/district"
	"liveable/internal/score"
)

// LoadRules parses a YAML rule script and compiles every rule.
//
// Script format:
//
//   - when: "overall < 50"
//     then:
//       level: warning
//       message: "Low liveability"
func LoadRules(script []byte) ([]Rule, error) {
	rules := []Rule{}
	if err := yaml.Unmarshal(script, &rules); err != nil {
		return nil, err
	}

	env, err := NewCompositeEnv()
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if err := rules[i].Init(env); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// LoadRulesFromFile reads and compiles a rule script from disk.
func LoadRulesFromFile(file string) ([]Rule, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return LoadRules(content)
}

// Evaluator applies a compiled rule set to batches of composites.
type Evaluator struct {
	rules []Rule
}

// NewEvaluator creates an evaluator over a compiled rule set.
func NewEvaluator(rules []Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

// Evaluate runs every rule against every district composite in the batch and
// returns the raised alerts, ordered by district name. Rule evaluation
// errors are logged and skipped.
func (e *Evaluator) Evaluate(batch *score.Batch) []Alert {
	alerts := make([]Alert, 0)
	if batch == nil {
		return alerts
	}

	names := make([]string, 0, len(batch.Districts))
	for name := range batch.Districts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		vars := compositeVars(name, batch.Districts[name])
		for i := range e.rules {
			rule := &e.rules[i]
			matched, err := rule.Eval(vars)
			if err != nil {
				slog.Error("alert rule eval", "error", err, "rule", rule.When, "district", name)
				continue
			}
			if matched {
				alerts = append(alerts, Alert{
					District: name,
					Level:    rule.Then.Level,
					Message:  rule.Then.Message,
				})
			}
		}
	}
	return alerts
}

func compositeVars(name string, c *score.Composite) map[string]any {
	region := ""
	if d, ok := district.Lookup(name); ok {
		region = string(d.Region)
	}

	return map[string]any{
		"district": name,
		"region":   region,

		"overall":    c.Overall,
		"airQuality": c.AirQuality,
		"transport":  c.Transport,
		"greenSpace": c.GreenSpace,
		"amenities":  c.Amenities,
		"safety":     c.Safety,

		"envScore": c.EnvScore,
		"climate":  c.EnvClimate,
	}
}
