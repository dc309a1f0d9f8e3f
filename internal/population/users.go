package population

import (
	"fmt"
	"math"

	"github.com/cdtdelta/cmdsynth/internal/model"
	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

const (
	// MinUsers is the smallest population generated for any dataset.
	MinUsers = 10
	// DefaultMaxUsers caps the population for huge datasets.
	DefaultMaxUsers = 2000
	// FirstUserID is the id given to the first user; ids are sequential.
	FirstUserID = 1000
)

// Threat levels 0..4, each higher level several times rarer than the last.
var threatLevels = sampling.MustTable([]sampling.Weighted[int]{
	{Value: 0, Weight: 1.0},
	{Value: 1, Weight: 0.3},
	{Value: 2, Weight: 0.08},
	{Value: 3, Weight: 0.02},
	{Value: 4, Weight: 0.005},
})

var shellTypes = sampling.MustTable([]sampling.Weighted[string]{
	{Value: "bash", Weight: 0.7},
	{Value: "zsh", Weight: 0.2},
	{Value: "fish", Weight: 0.05},
	{Value: "sh", Weight: 0.05},
})

// Size returns the number of users for a dataset of targetEvents rows:
// round(2*sqrt(targetEvents)) clamped to [MinUsers, maxUsers].
// A non-positive maxUsers selects DefaultMaxUsers.
func Size(targetEvents, maxUsers int) int {
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}
	if maxUsers < MinUsers {
		maxUsers = MinUsers
	}
	n := int(math.Round(2 * math.Sqrt(float64(max(targetEvents, 0)))))
	return min(max(n, MinUsers), maxUsers)
}

// UserName derives the account name for a user id.
func UserName(id int) string {
	return fmt.Sprintf("student%d", id)
}

// HomeDir derives the home directory for an account name.
func HomeDir(name string) string {
	return "/home/" + name
}

// Generate builds the user population for a dataset of targetEvents rows.
// Higher-threat users are also more active: the log-normal activity draw is
// scaled by 1 + 0.3*threat.
func Generate(st *sampling.Stream, targetEvents, maxUsers int) []model.User {
	n := Size(targetEvents, maxUsers)
	users := make([]model.User, n)
	for i := range users {
		id := FirstUserID + i
		name := UserName(id)
		shell := shellTypes.Draw(st)
		threat := threatLevels.Draw(st)
		activity := st.LogNormal(0, 1) * (1 + 0.3*float64(threat))

		users[i] = model.User{
			ID:             id,
			Name:           name,
			ShellType:      shell,
			HomeDir:        HomeDir(name),
			ThreatLevel:    threat,
			ActivityWeight: activity,
		}
	}
	return users
}

// NewPicker returns a picker that selects users proportionally to their
// activity weight.
func NewPicker(users []model.User) (*sampling.Picker, error) {
	weights := make([]float64, len(users))
	for i := range users {
		weights[i] = users[i].ActivityWeight
	}
	p, err := sampling.NewPicker(weights)
	if err != nil {
		return nil, fmt.Errorf("building user picker: %w", err)
	}
	return p, nil
}
