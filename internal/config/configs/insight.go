package configs

// Insight configures the question router.
type Insight struct {
	// RulesFile points to a YAML intent rule list. Empty uses the built-in
	// rules.
	RulesFile string `env:"RULES_FILE"`
}
