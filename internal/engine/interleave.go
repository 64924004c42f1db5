package engine

import "github.com/studyflow/matrixd/internal/model"

// UncategorizedSubject buckets eligible tasks that have no subject.
const UncategorizedSubject = "Uncategorized"

// Interleave reorders tasks so that consecutive eligible tasks alternate
// between subjects. Eligible means incomplete and either opted in to
// interleaving or carrying a spaced-repetition schedule. Subject groups keep
// their internal order and are merged round-robin in first-seen order; all
// remaining tasks follow in their original order.
func Interleave(tasks []model.Task) []model.Task {
	groups := make(map[string][]model.Task)
	order := make([]string, 0)
	rest := make([]model.Task, 0)

	for _, task := range tasks {
		if !interleaveEligible(task) {
			rest = append(rest, task)
			continue
		}
		subject := task.Subject
		if subject == "" {
			subject = UncategorizedSubject
		}
		if _, seen := groups[subject]; !seen {
			order = append(order, subject)
		}
		groups[subject] = append(groups[subject], task)
	}

	merged := make([]model.Task, 0, len(tasks)-len(rest))
	for round := 0; len(merged) < cap(merged); round++ {
		for _, subject := range order {
			group := groups[subject]
			if round < len(group) {
				merged = append(merged, group[round])
			}
		}
	}

	return append(merged, rest...)
}

func interleaveEligible(task model.Task) bool {
	if task.Completed {
		return false
	}
	return task.Interleaving || task.SpacedRepetition != nil
}
