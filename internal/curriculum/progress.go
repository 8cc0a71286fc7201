package curriculum

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Percent is a whole-number completion percentage in [0, 100].
type Percent int

// UnmarshalYAML accepts integers and floats. Values that are not a number,
// such as .nan written by older clients, decode as 0 instead of failing the load.
func (p *Percent) UnmarshalYAML(value *yaml.Node) error {
	f, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		switch value.Value {
		case ".nan", ".NaN", ".NAN", ".inf", "-.inf", "+.inf", "":
			*p = 0
			return nil
		}
		return fmt.Errorf("unable to parse progress '%s': %w", value.Value, err)
	}
	*p = NormalizeProgress(f)
	return nil
}

// NormalizeProgress clamps a raw value into [0, 100]; NaN and infinities become 0.
func NormalizeProgress(f float64) Percent {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return Percent(roundHalfUp(f))
}

// CalculateProgress weighs topics and projects equally, 50 points each.
// A side with nothing to complete contributes 0.
func CalculateProgress(totalTopics, completedTopics, totalProjects, completedProjects int) Percent {
	var topicShare, projectShare float64
	if totalTopics > 0 {
		topicShare = float64(completedTopics) / float64(totalTopics) * 50
	}
	if totalProjects > 0 {
		projectShare = float64(completedProjects) / float64(totalProjects) * 50
	}
	return NormalizeProgress(topicShare + projectShare)
}

func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}

// CompletedTopics returns the number of completed topics in the phase.
func (p Phase) CompletedTopics() int {
	n := 0
	for _, t := range p.Topics {
		if t.Completed {
			n++
		}
	}
	return n
}

// CompletedProjects returns the number of projects with status completed.
func (p Phase) CompletedProjects() int {
	n := 0
	for _, pr := range p.Projects {
		if pr.Status == ProjectStatusCompleted {
			n++
		}
	}
	return n
}

// CompletedResources returns the number of completed resources across all topics.
func (p Phase) CompletedResources() int {
	n := 0
	for _, t := range p.Topics {
		for _, r := range t.Resources {
			if r.Completed {
				n++
			}
		}
	}
	return n
}

// IsComplete reports whether every topic and every project is done.
// A phase with nothing in it is never complete.
func (p Phase) IsComplete() bool {
	if len(p.Topics) == 0 && len(p.Projects) == 0 {
		return false
	}
	return p.CompletedTopics() == len(p.Topics) && p.CompletedProjects() == len(p.Projects)
}

// Recalculate refreshes Progress and Status from the topics and projects.
func (p *Phase) Recalculate() {
	p.Progress = CalculateProgress(len(p.Topics), p.CompletedTopics(), len(p.Projects), p.CompletedProjects())
	switch {
	case p.Progress >= 100:
		p.Status = PhaseStatusCompleted
	case p.Progress > 0:
		p.Status = PhaseStatusInProgress
	default:
		p.Status = PhaseStatusUpcoming
	}
}

// RecalculateAll refreshes every phase in place.
func RecalculateAll(phases []Phase) {
	for i := range phases {
		phases[i].Recalculate()
	}
}

// FindTopic returns the index of the phase and topic with the given ID.
func FindTopic(phases []Phase, topicID string) (phaseIdx, topicIdx int, ok bool) {
	for i := range phases {
		for j := range phases[i].Topics {
			if phases[i].Topics[j].ID == topicID {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// FindProject returns the index of the phase and project with the given ID.
func FindProject(phases []Phase, projectID string) (phaseIdx, projectIdx int, ok bool) {
	for i := range phases {
		for j := range phases[i].Projects {
			if phases[i].Projects[j].ID == projectID {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// FindResource returns the indexes of the phase, topic and resource with the given ID.
func FindResource(phases []Phase, resourceID string) (phaseIdx, topicIdx, resourceIdx int, ok bool) {
	for i := range phases {
		for j := range phases[i].Topics {
			for k := range phases[i].Topics[j].Resources {
				if phases[i].Topics[j].Resources[k].ID == resourceID {
					return i, j, k, true
				}
			}
		}
	}
	return -1, -1, -1, false
}
