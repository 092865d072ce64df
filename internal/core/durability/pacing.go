package durability

import "time"

// pacing computes the self-paced loop's sleep. A loop that came back late
// sleeps less, one that came back early sleeps more.
type pacing struct {
	base time.Duration
	min  time.Duration
	max  time.Duration
}

func (p pacing) next(lastInterval time.Duration) time.Duration {
	pause := p.base + (p.base-lastInterval)/2
	return min(p.max, max(p.min, pause))
}

// halfAverage folds a sample into a running average by halving.
func halfAverage(avg, sample time.Duration) time.Duration {
	return (avg + sample) / 2
}

// scanState is the engine's time bookkeeping. Elapsed time accumulates in
// pending until a pass consumes it.
type scanState struct {
	lastUpdate    time.Time
	pending       time.Duration
	lastPass      time.Time
	cooldownUntil time.Time
}

func newScanState(now time.Time) scanState {
	return scanState{lastUpdate: now, lastPass: now}
}

func (s *scanState) advance(now time.Time) {
	if now.After(s.lastUpdate) {
		s.pending += now.Sub(s.lastUpdate)
	}
	s.lastUpdate = now
}

func (s *scanState) due(now time.Time, minInterval time.Duration) bool {
	return now.Sub(s.lastPass) > minInterval && !now.Before(s.cooldownUntil)
}

// begin records the pass start and hands over the accumulated time.
func (s *scanState) begin(now time.Time) time.Duration {
	s.lastPass = now
	dt := s.pending
	s.pending = 0
	return dt
}

// restore gives back time a pass did not integrate.
func (s *scanState) restore(dt time.Duration) {
	s.pending += dt
}
