// Package seed loads the default curriculum and achievement catalog, either
// embedded in the binary or from files named in the config.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/seeds"
)

// Data is everything a fresh store is initialized with.
type Data struct {
	Phases       []curriculum.Phase
	Achievements []achievement.Achievement
}

// Load reads both seeds. Empty paths select the embedded defaults.
func Load(curriculumFile, achievementsFile string) (Data, error) {
	phases, err := LoadCurriculum(curriculumFile)
	if err != nil {
		return Data{}, err
	}
	achievements, err := LoadAchievements(achievementsFile, len(phases))
	if err != nil {
		return Data{}, err
	}
	return Data{Phases: phases, Achievements: achievements}, nil
}

func readSeed(path string, embedded []byte) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return content, nil
}

func decodeYAML[T any](content []byte, name string) (T, error) {
	var v T
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return v, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}

// LoadCurriculum decodes the curriculum seed, links every child to its parent
// and derives each phase's progress.
func LoadCurriculum(path string) ([]curriculum.Phase, error) {
	content, err := readSeed(path, seeds.Curriculum)
	if err != nil {
		return nil, err
	}
	phases, err := decodeYAML[[]curriculum.Phase](content, "curriculum seed")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	claim := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("curriculum seed: %s without id", kind)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("curriculum seed: duplicate id %q (%s and %s)", id, prev, kind)
		}
		seen[id] = kind
		return nil
	}

	for i := range phases {
		p := &phases[i]
		if err := claim("phase", p.ID); err != nil {
			return nil, err
		}
		if p.Order == 0 {
			p.Order = i + 1
		}
		for j := range p.Topics {
			t := &p.Topics[j]
			if err := claim("topic", t.ID); err != nil {
				return nil, err
			}
			t.PhaseID = p.ID
			if t.Order == 0 {
				t.Order = j + 1
			}
			for k := range t.Resources {
				r := &t.Resources[k]
				if err := claim("resource", r.ID); err != nil {
					return nil, err
				}
				r.TopicID = t.ID
				if r.Order == 0 {
					r.Order = k + 1
				}
			}
		}
		for j := range p.Projects {
			pr := &p.Projects[j]
			if err := claim("project", pr.ID); err != nil {
				return nil, err
			}
			pr.PhaseID = p.ID
			if pr.Order == 0 {
				pr.Order = j + 1
			}
			if pr.Status == "" {
				pr.Status = curriculum.ProjectStatusNotStarted
			}
			if _, err := curriculum.ParseProjectStatus(string(pr.Status)); err != nil {
				return nil, fmt.Errorf("curriculum seed: project %s: %w", pr.ID, err)
			}
		}
	}
	curriculum.RecalculateAll(phases)
	return phases, nil
}

var phaseRuleID = regexp.MustCompile(`^phase-(\d+)-complete$`)

// LoadAchievements decodes the achievement seed into default, active,
// locked achievements. Phase achievements beyond phaseCount are dropped.
func LoadAchievements(path string, phaseCount int) ([]achievement.Achievement, error) {
	content, err := readSeed(path, seeds.Achievements)
	if err != nil {
		return nil, err
	}
	entries, err := decodeYAML[[]achievement.Achievement](content, "achievement seed")
	if err != nil {
		return nil, err
	}

	rules := make(map[string]bool)
	for _, r := range achievement.Rules() {
		rules[r.ID] = true
	}
	manual := make(map[string]bool)
	for _, id := range achievement.ManualIDs {
		manual[id] = true
	}

	seen := make(map[string]bool, len(entries))
	result := make([]achievement.Achievement, 0, len(entries))
	for i, a := range entries {
		if a.ID == "" {
			return nil, fmt.Errorf("achievement seed: entry %d has no id", i+1)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("achievement seed: duplicate id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Points <= 0 {
			return nil, fmt.Errorf("achievement seed: %s: points must be positive, got %d", a.ID, a.Points)
		}
		if m := phaseRuleID.FindStringSubmatch(a.ID); m != nil {
			n, _ := strconv.Atoi(m[1])
			if n > phaseCount {
				slog.Default().Debug("skip phase achievement beyond the curriculum",
					"id", a.ID,
					"phases", phaseCount,
				)
				continue
			}
		}
		if !rules[a.ID] && !manual[a.ID] && !a.Manual {
			slog.Default().Warn("achievement has no unlock rule and can only be marked complete",
				"id", a.ID,
			)
		}

		a.Manual = a.Manual || manual[a.ID]
		a.IsDefault = true
		a.IsActive = true
		a.Unlocked = false
		a.UnlockedDate = nil
		if a.Order == 0 {
			a.Order = i + 1
		}
		if a.Requirement == "" {
			a.Requirement = a.Description
		}
		result = append(result, a)
	}
	return result, nil
}
