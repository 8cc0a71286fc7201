package achievement

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/metrics"
)

// Facts is the snapshot the rules are checked against.
type Facts struct {
	Metrics metrics.UserMetrics
	Logs    []activity.DailyLog
	Phases  []curriculum.Phase
	// Today carries the learner's location; log timestamps are read in it.
	Today time.Time
}

// Rule binds one achievement ID to the predicate that unlocks it.
type Rule struct {
	ID       string
	Category Category
	Check    func(Facts) bool
}

// maxPhaseRules bounds the phase-N-complete family. Curricula with more phases
// simply have no rule for the extra ones.
const maxPhaseRules = 8

var catalog = buildCatalog()

// ManualIDs are achievements the engine cannot observe. They unlock only when
// the learner marks them complete.
var ManualIDs = []string{
	"open-source-contribution",
	"tech-blog-post",
	"mentor-session",
	"meetup-talk",
	"mock-interview",
}

// Rules returns the rule catalog in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), catalog...)
}

func buildCatalog() []Rule {
	var rules []Rule
	add := func(id string, category Category, check func(Facts) bool) {
		rules = append(rules, Rule{ID: id, Category: category, Check: check})
	}

	add("first-log", CategoryDaily, logCountAtLeast(1))
	add("week-logger", CategoryDaily, logCountAtLeast(7))
	add("month-logger", CategoryDaily, logCountAtLeast(30))
	add("perfect-week", CategoryDaily, func(f Facts) bool {
		return metrics.LongestRun(f.Logs) >= 7
	})

	for _, s := range []struct {
		id   string
		days int
	}{
		{"streak-3", 3},
		{"week-streak", 7},
		{"streak-14", 14},
		{"streak-30", 30},
		{"streak-60", 60},
		{"streak-100", 100},
	} {
		add(s.id, CategoryStreak, streakAtLeast(s.days))
	}

	for _, hours := range []int{10, 25, 50, 100, 200, 500, 1000} {
		h := float64(hours)
		add(fmt.Sprintf("hours-%d", hours), CategoryTime, func(f Facts) bool {
			return f.Metrics.TotalHours >= h
		})
	}

	for _, problems := range []int{10, 25, 50, 75, 100, 150, 300} {
		add(fmt.Sprintf("problems-%d", problems), CategoryLeetcode, func(f Facts) bool {
			return f.Metrics.TotalProblemsSolved >= problems
		})
	}

	for _, count := range []int{1, 3, 5, 10} {
		add(fmt.Sprintf("project-%d", count), CategoryProject, func(f Facts) bool {
			return completedProjects(f.Phases) >= count
		})
	}

	for i := 1; i <= maxPhaseRules; i++ {
		add(fmt.Sprintf("phase-%d-complete", i), CategoryPhase, func(f Facts) bool {
			ordered := orderedPhases(f.Phases)
			return i <= len(ordered) && ordered[i-1].IsComplete()
		})
	}
	add("all-phases-complete", CategoryPhase, func(f Facts) bool {
		if len(f.Phases) == 0 {
			return false
		}
		for _, p := range f.Phases {
			if !p.IsComplete() {
				return false
			}
		}
		return true
	})

	for _, count := range []int{1, 5, 10} {
		add(fmt.Sprintf("topic-%d", count), CategoryProgress, func(f Facts) bool {
			done, _ := topicCounts(f.Phases)
			return done >= count
		})
	}
	add("all-topics", CategoryProgress, func(f Facts) bool {
		done, total := topicCounts(f.Phases)
		return total > 0 && done == total
	})
	for _, count := range []int{1, 10, 20} {
		add(fmt.Sprintf("resource-%d", count), CategoryProgress, func(f Facts) bool {
			return completedResources(f.Phases) >= count
		})
	}

	for _, points := range []int{100, 500, 1000, 2000} {
		add(fmt.Sprintf("points-%d", points), CategoryMilestone, func(f Facts) bool {
			return f.Metrics.TotalPoints >= points
		})
	}

	add("early-bird", CategorySpecial, anyLog(func(f Facts, l activity.DailyLog) bool {
		return l.CreatedAt.In(f.Today.Location()).Hour() < 8
	}))
	add("night-owl", CategorySpecial, anyLog(func(f Facts, l activity.DailyLog) bool {
		return l.CreatedAt.In(f.Today.Location()).Hour() >= 22
	}))
	add("weekend-warrior", CategorySpecial, anyLog(func(_ Facts, l activity.DailyLog) bool {
		wd := l.Date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	}))
	add("marathon-session", CategorySpecial, anyLog(func(_ Facts, l activity.DailyLog) bool {
		return l.HoursSpent >= 4
	}))
	add("consistency-king", CategorySpecial, streakAtLeast(14))

	return rules
}

func logCountAtLeast(n int) func(Facts) bool {
	return func(f Facts) bool {
		return len(f.Logs) >= n
	}
}

func streakAtLeast(days int) func(Facts) bool {
	return func(f Facts) bool {
		return f.Metrics.CurrentStreak >= days
	}
}

func anyLog(match func(Facts, activity.DailyLog) bool) func(Facts) bool {
	return func(f Facts) bool {
		for _, l := range f.Logs {
			if match(f, l) {
				return true
			}
		}
		return false
	}
}

func orderedPhases(phases []curriculum.Phase) []curriculum.Phase {
	ordered := append([]curriculum.Phase(nil), phases...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })
	return ordered
}

func completedProjects(phases []curriculum.Phase) int {
	n := 0
	for _, p := range phases {
		n += p.CompletedProjects()
	}
	return n
}

func topicCounts(phases []curriculum.Phase) (done, total int) {
	for _, p := range phases {
		done += p.CompletedTopics()
		total += len(p.Topics)
	}
	return done, total
}

func completedResources(phases []curriculum.Phase) int {
	n := 0
	for _, p := range phases {
		n += p.CompletedResources()
	}
	return n
}
