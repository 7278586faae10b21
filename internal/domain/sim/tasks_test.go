package sim

import "testing"

func TestCompleteTask_OneTime(t *testing.T) {
	state := MakeInitialState()

	state, res := CompleteTask(state, "anna", "clean_living_room")
	if !res.OK {
		t.Fatalf("first completion failed: %s", res.Message)
	}
	if !state.TaskDone("clean_living_room") {
		t.Fatalf("task should be recorded as done")
	}

	next, res := CompleteTask(state, "anna", "clean_living_room")
	if res.OK {
		t.Fatalf("second completion must fail")
	}
	count := 0
	for id := range next.CompletedTasks {
		if id == "clean_living_room" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("completed_tasks must hold exactly one entry, got %d", count)
	}
}

func TestCompleteTask_AwardsGuess(t *testing.T) {
	state := MakeInitialState()
	before := state.Counter("anna", CounterGuessesLeft)

	state, res := CompleteTask(state, "anna", "wash_dishes")
	if !res.OK {
		t.Fatalf("completion failed: %s", res.Message)
	}
	if got := state.Counter("anna", CounterGuessesLeft); got != before+1 {
		t.Fatalf("each completion credits the guesser: want %d got %d", before+1, got)
	}
	// kevin has no guess permission and gains nothing
	if got := state.Counter("kevin", CounterGuessesLeft); got != 0 {
		t.Fatalf("non-guessers must not be credited, got %d", got)
	}
}

func TestCompleteTask_UnknownID(t *testing.T) {
	state := MakeInitialState()
	if _, res := CompleteTask(state, "anna", "mow_lawn"); res.OK {
		t.Fatalf("tasks outside the catalog must fail")
	}
}

func TestCounterFloor(t *testing.T) {
	state := MakeInitialState()
	state = state.WithCounter("anna", CounterRejectsLeft, -10, 0)
	if got := state.Counter("anna", CounterRejectsLeft); got != 0 {
		t.Fatalf("counters clamp at zero, got %d", got)
	}
	state = state.WithCounter("anna", CounterRejectsLeft, 5, 3)
	if got := state.Counter("anna", CounterRejectsLeft); got != 3 {
		t.Fatalf("ceiling caps the counter, got %d", got)
	}
}

func TestGuess(t *testing.T) {
	state := MakeInitialState()
	state, _ = CompleteTask(state, "anna", "cook:egg") // anna now has 2 guesses

	// wrong but well-formed guess
	state, res := Guess(state, "anna", "wash_dishes")
	if !res.OK {
		t.Fatalf("guess failed: %s", res.Message)
	}
	if correct, _ := res.Data["correct"].(bool); correct {
		t.Fatalf("wash_dishes was not completed; guess must score wrong")
	}

	// duplicate guess rejected without spending anything
	left := state.Counter("anna", CounterGuessesLeft)
	if _, res := Guess(state, "anna", "wash_dishes"); res.OK {
		t.Fatalf("duplicate guess must fail")
	}
	if state.Counter("anna", CounterGuessesLeft) != left {
		t.Fatalf("rejected guess must not spend the counter")
	}

	// correct guess, scored at guess time
	state, res = Guess(state, "anna", "cook:egg")
	if !res.OK {
		t.Fatalf("guess failed: %s", res.Message)
	}
	if correct, _ := res.Data["correct"].(bool); !correct {
		t.Fatalf("cook:egg was completed; guess must score correct")
	}

	// out of guesses
	if got := state.Counter("anna", CounterGuessesLeft); got != 0 {
		t.Fatalf("expected zero guesses left, got %d", got)
	}
	if _, res := Guess(state, "anna", "clean_living_room"); res.OK {
		t.Fatalf("guessing with an empty budget must fail")
	}
}

func TestGuess_ExactMatchOnly(t *testing.T) {
	state := MakeInitialState()
	if _, res := Guess(state, "anna", "cook"); res.OK {
		t.Fatalf("partial ids are not guessable")
	}
	if _, res := Guess(state, "anna", "cleaning the living room"); res.OK {
		t.Fatalf("free text is not guessable")
	}
}
