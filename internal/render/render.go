package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/valyala/fasttemplate"

	"github.com/cdtdelta/cmdsynth/internal/model"
	"github.com/cdtdelta/cmdsynth/internal/population"
	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

// SudoPrefix is prepended to privilege-escalated commands.
const SudoPrefix = "sudo "

const (
	chainProbability = 0.08
	maxChainRisk     = 3
)

var (
	followUps = []string{`echo "done"`, "pwd", "ls", `echo "OK"`}
	joiners   = []string{" && ", " | "}
)

// ErrUnknownPlaceholder is returned by Substitute for a {key} the context
// does not supply.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// Result is a rendered command line.
type Result struct {
	Command  string
	SudoUsed bool
	Chained  bool
}

// Substitute replaces every {key} in pattern with its context value.
// It fails on unknown keys and on an opening brace with no closing brace.
func Substitute(pattern string, ctx population.Context) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(pattern, "{", "}", func(w io.Writer, tag string) (int, error) {
		v, ok := ctx[tag]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrUnknownPlaceholder, tag)
		}
		return io.WriteString(w, v)
	})
}

// Render turns a template into a concrete command line.
//
// A pattern that cannot be substituted is emitted literally. Sudo is applied
// with the template's probability, and commands at risk level 3 or below are
// occasionally chained with a harmless follow-up.
func Render(t *model.CommandTemplate, ctx population.Context, st *sampling.Stream) Result {
	pattern := sampling.Choice(st, t.Patterns)

	cmd, err := Substitute(pattern, ctx)
	if err != nil {
		cmd = pattern
	}

	var res Result
	if st.Bernoulli(t.SudoProbability) {
		cmd = SudoPrefix + cmd
		res.SudoUsed = true
	}

	if st.Bernoulli(chainProbability) && t.RiskLevel <= maxChainRisk {
		follow := sampling.Choice(st, followUps)
		joiner := sampling.Choice(st, joiners)
		cmd = cmd + joiner + follow
		res.Chained = true
	}

	res.Command = cmd
	return res
}
