package sim

import (
	"fmt"
	"sort"
	"strings"
)

// CookFoods is the fixed cooking menu; each dish is its own one-time task.
var CookFoods = []string{"egg", "bacon", "hotdog"}

// OneTimeTaskIDs is the closed catalog of chores that can be completed
// exactly once per simulation.
func OneTimeTaskIDs() map[string]bool {
	out := map[string]bool{
		"clean_living_room": true,
		"wash_dishes":       true,
	}
	for _, food := range CookFoods {
		out["cook:"+food] = true
	}
	return out
}

// CompleteTask records a one-time task and credits every guesser one extra
// guess. Re-completion fails and leaves the state untouched.
func CompleteTask(state WorldState, actor, taskID string) (WorldState, ToolResult) {
	if !OneTimeTaskIDs()[taskID] {
		return state, Fail(fmt.Sprintf("Unknown task: %s", taskID))
	}
	if state.TaskDone(taskID) {
		return state, Fail(fmt.Sprintf("Denied: already done: %s", taskID))
	}

	next := state.WithTaskDone(taskID)
	next = awardGuessForTask(next)
	next, ev := next.Emit(actor, "task_completed", map[string]any{"task_id": taskID}, true, "completed "+taskID)
	return next, Success(fmt.Sprintf("Done: %s.", taskID), ev)
}

// Every completed chore buys the guessing side one more guess. That coupling
// is the whole scoring loop: chores fund guesses.
func awardGuessForTask(state WorldState) WorldState {
	ids := make([]string, 0, len(state.Actors))
	for id, actor := range state.Actors {
		if actor.Can("guess") {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		state = state.WithCounter(id, CounterGuessesLeft, 1, 0)
	}
	return state
}

// GuessedTaskIDs reads the persistent record of past guesses from flags.
func GuessedTaskIDs(state WorldState, actor string) map[string]bool {
	out := map[string]bool{}
	raw, _ := state.Flag(actor, FlagGuessedTaskIDs).([]string)
	for _, id := range raw {
		out[id] = true
	}
	return out
}

// Guess spends one guess on an exact task id from the catalog and scores it
// against completed tasks at this moment, not retroactively. Duplicate
// guesses and unknown ids are rejected before anything is spent.
func Guess(state WorldState, actor, taskID string) (WorldState, ToolResult) {
	taskID = strings.ToLower(strings.TrimSpace(taskID))
	if state.Counter(actor, CounterGuessesLeft) <= 0 {
		return state, Fail("Denied: no guesses left.")
	}
	if !OneTimeTaskIDs()[taskID] {
		return state, Fail(fmt.Sprintf("Denied: unknown task id '%s'.", taskID))
	}
	guessed := GuessedTaskIDs(state, actor)
	if guessed[taskID] {
		return state, Fail("Denied: you already guessed that task id.")
	}

	guessed[taskID] = true
	record := make([]string, 0, len(guessed))
	for id := range guessed {
		record = append(record, id)
	}
	sort.Strings(record)

	next := state.WithCounter(actor, CounterGuessesLeft, -1, 0)
	next = next.WithFlag(actor, FlagGuessedTaskIDs, record)
	correct := next.TaskDone(taskID)
	next, ev := next.Emit(actor, "guess", map[string]any{"task_id": taskID, "correct": correct}, true, "guess made")

	verdict := "Wrong."
	if correct {
		verdict = "Correct!"
	}
	msg := fmt.Sprintf("%s (guesses left: %d)", verdict, next.Counter(actor, CounterGuessesLeft))
	return next, Success(msg, ev).WithData("correct", correct)
}
