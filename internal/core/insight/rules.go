// Package insight classifies free-text questions about a campaign dataset
// and answers them with deterministic reports, optionally delegating to a
// text-completion backend first.
package insight

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"campaign-insights/internal/core/domain"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule maps a set of keywords to an intent.
type Rule struct {
	Intent   domain.Intent `yaml:"intent"`
	Keywords []string      `yaml:"keywords"`
}

// Rules is an ordered rule list; the first matching rule wins.
type Rules []Rule

var knownIntents = map[domain.Intent]bool{
	domain.IntentROI:          true,
	domain.IntentBudget:       true,
	domain.IntentChannel:      true,
	domain.IntentOptimization: true,
	domain.IntentTrend:        true,
	domain.IntentGeneral:      true,
}

// DefaultRules returns the built-in rule list.
func DefaultRules() Rules {
	rules, err := ParseRules(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("insight: built-in rules: %v", err))
	}
	return rules
}

// LoadRules reads a rule list from a YAML file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes and checks a YAML rule list. Keywords are lower-cased.
func ParseRules(data []byte) (Rules, error) {
	var doc struct {
		Rules Rules `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("parse rules: no rules defined")
	}
	for i, r := range doc.Rules {
		if !knownIntents[r.Intent] {
			return nil, fmt.Errorf("rule %d: unknown intent %q", i, r.Intent)
		}
		if len(r.Keywords) == 0 && i != len(doc.Rules)-1 {
			return nil, fmt.Errorf("rule %d (%s): only the last rule may omit keywords", i, r.Intent)
		}
		for j, k := range r.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				return nil, fmt.Errorf("rule %d (%s): empty keyword", i, r.Intent)
			}
			doc.Rules[i].Keywords[j] = k
		}
	}
	return doc.Rules, nil
}

// Classify returns the intent of the first rule with a keyword contained in
// query, ignoring case. Queries nothing matches are general.
func (rs Rules) Classify(query string) domain.Intent {
	q := strings.ToLower(query)
	for _, r := range rs {
		if len(r.Keywords) == 0 {
			return r.Intent
		}
		for _, k := range r.Keywords {
			if strings.Contains(q, k) {
				return r.Intent
			}
		}
	}
	return domain.IntentGeneral
}
