package model

// Risk level bounds for command templates.
const (
	MinRiskLevel = 1
	MaxRiskLevel = 5
)

// CommandTemplate is a class of command behaviour that can be rendered
// into many concrete command lines.
//
// Several templates may share a BaseCommand at different risk levels
// (a benign and a destructive rm, for example); they are distinct entries.
type CommandTemplate struct {
	BaseCommand     string   `yaml:"base_command"`
	RiskLevel       int      `yaml:"risk_level"`
	SudoProbability float64  `yaml:"sudo_probability"`
	Patterns        []string `yaml:"patterns"`
	BaseWeight      float64  `yaml:"base_weight"`
}
