package coach

import "io"

type BaseballCoach struct{}

func NewBaseballCoach(out io.Writer) *BaseballCoach {
	c := &BaseballCoach{}
	announce(out, "constructor", c)
	return c
}

func (*BaseballCoach) GetDailyWorkout() string {
	return "Spend 30 minutes in batting practice"
}

type TrackCoach struct{}

func NewTrackCoach(out io.Writer) *TrackCoach {
	c := &TrackCoach{}
	announce(out, "constructor", c)
	return c
}

func (*TrackCoach) GetDailyWorkout() string {
	return "Run a hard 5k!"
}

type TennisCoach struct{}

func NewTennisCoach(out io.Writer) *TennisCoach {
	c := &TennisCoach{}
	announce(out, "constructor", c)
	return c
}

func (*TennisCoach) GetDailyWorkout() string {
	return "Practice your backhand volley"
}
