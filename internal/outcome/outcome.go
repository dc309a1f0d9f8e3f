package outcome

import "github.com/cdtdelta/cmdsynth/internal/sampling"

// failureProbability is indexed by risk level; index 0 is unused.
var failureProbability = [...]float64{0, 0.03, 0.06, 0.10, 0.16, 0.22}

// defaultFailureProbability applies to risk levels outside the table.
const defaultFailureProbability = 0.10

// FailureCodes are the conventional non-zero exit statuses a failed command
// reports: generic failure, misuse, not executable, not found, SIGINT.
var FailureCodes = []int{1, 2, 126, 127, 130}

// FailureProbability returns the chance a command at riskLevel fails.
func FailureProbability(riskLevel int) float64 {
	if riskLevel <= 0 || riskLevel >= len(failureProbability) {
		return defaultFailureProbability
	}
	return failureProbability[riskLevel]
}

// SampleExitCode returns 0 on success or one of FailureCodes.
func SampleExitCode(riskLevel int, st *sampling.Stream) int {
	if !st.Bernoulli(FailureProbability(riskLevel)) {
		return 0
	}
	return sampling.Choice(st, FailureCodes)
}
