package coach

import (
	"context"
	"io"

	"coachdemo/internal/container"
)

// CricketCoach announces each lifecycle phase on its writer.
type CricketCoach struct {
	out io.Writer
}

var (
	_ Coach                 = (*CricketCoach)(nil)
	_ container.Initializer = (*CricketCoach)(nil)
	_ container.Destroyer   = (*CricketCoach)(nil)
)

// NewCricketCoach constructs the coach and prints the constructor message.
func NewCricketCoach(out io.Writer) *CricketCoach {
	c := &CricketCoach{out: out}
	announce(out, "constructor", c)
	return c
}

// Init runs once the container has wired every component.
func (c *CricketCoach) Init(context.Context) error {
	announce(c.out, "init()", c)
	return nil
}

// Destroy runs when the container shuts down.
func (c *CricketCoach) Destroy(context.Context) error {
	announce(c.out, "destroy()", c)
	return nil
}

func (c *CricketCoach) GetDailyWorkout() string {
	return "Practice fast bowling for 15 minutes."
}
