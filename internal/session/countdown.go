package session

import "math"

type TimerBand string

const (
	BandGreen  TimerBand = "green"
	BandYellow TimerBand = "yellow"
	BandRed    TimerBand = "red"
)

// Countdown owns the remaining time of the active question.
//
// Expiry is reported by Tick returning true, at most once per Start. The
// countdown deactivates itself at that point and stays inactive until the
// next Start.
type Countdown struct {
	limit     float64
	remaining float64
	active    bool
}

func NewCountdown() *Countdown {
	return &Countdown{}
}

// Start resets remaining time to limitSeconds and activates ticking.
func (c *Countdown) Start(limitSeconds float64) {
	if limitSeconds < 0 {
		limitSeconds = 0
	}
	c.limit = limitSeconds
	c.remaining = limitSeconds
	c.active = true
}

// Tick subtracts deltaSeconds (floor 0) and reports whether this tick expired
// the countdown. Inactive countdowns ignore ticks.
func (c *Countdown) Tick(deltaSeconds float64) bool {
	if !c.active {
		return false
	}
	if deltaSeconds > 0 {
		c.remaining = math.Max(0, c.remaining-deltaSeconds)
	}
	if c.remaining <= 0 {
		c.active = false
		return true
	}
	return false
}

// Stop deactivates ticking without touching the remaining value.
func (c *Countdown) Stop() {
	c.active = false
}

func (c *Countdown) Active() bool       { return c.active }
func (c *Countdown) Limit() float64     { return c.limit }
func (c *Countdown) Remaining() float64 { return c.remaining }

// Percentage is remaining/limit*100 clamped to [0,100].
func (c *Countdown) Percentage() float64 {
	if c.limit <= 0 {
		return 0
	}
	p := c.remaining / c.limit * 100
	return math.Min(100, math.Max(0, p))
}

// DisplaySeconds is the whole-second value shown next to the timer bar.
func (c *Countdown) DisplaySeconds() int {
	return int(math.Ceil(c.remaining))
}

func (c *Countdown) Band() TimerBand {
	p := c.Percentage()
	switch {
	case p >= 70:
		return BandGreen
	case p >= 30:
		return BandYellow
	default:
		return BandRed
	}
}
