// Command learnrust serves the LearnRust API: the 121-day Rust curriculum,
// per-learner schedules and progress, and daily reminders.
package main

import (
	"context"
	"log"

	"github.com/dalemusser/learnrust/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
