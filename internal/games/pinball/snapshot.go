package pinball

import (
	"hash/fnv"
	"math"
	"strconv"
)

// Snapshot contains the game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       int
	Frame      uint64
	Score      int
	Balls      int
	State      string
	ServeDelay int

	BallPos  [3]float64
	BallVel  [3]float64
	BallSpin [3]float64

	LeftAngle  float64
	RightAngle float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	b := g.sim.Ball
	return Snapshot{
		Tick:       g.tickCount,
		Frame:      g.sim.Frame,
		Score:      g.score,
		Balls:      g.balls,
		State:      g.state,
		ServeDelay: g.serveDelay,
		BallPos:    [3]float64(b.Position),
		BallVel:    [3]float64(b.Velocity),
		BallSpin:   [3]float64(b.Rotation),
		LeftAngle:  g.sim.Left.Angle,
		RightAngle: g.sim.Right.Angle,
	}
}

// ApplySnapshot restores game state from a snapshot.
// Contact episodes start fresh.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tickCount = snap.Tick
	g.sim.Frame = snap.Frame
	g.score = snap.Score
	g.balls = snap.Balls
	g.state = snap.State
	g.serveDelay = snap.ServeDelay
	g.resumeTo = ""
	if g.state == StatePaused {
		g.resumeTo = StatePlaying
	}

	g.sim.Ball.Position = snap.BallPos
	g.sim.Ball.Velocity = snap.BallVel
	g.sim.Ball.Rotation = snap.BallSpin
	g.sim.Left.Angle = snap.LeftAngle
	g.sim.Right.Angle = snap.RightAngle

	g.touching = make(map[string]bool)
	if g.clock != nil {
		g.clock.Reset()
	}
}

// Hash returns an FNV-1a hash of the snapshot for determinism testing.
// Floats are hashed by bit pattern.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 256)

	buf = strconv.AppendInt(buf, int64(snap.Tick), 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, snap.Frame, 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(snap.Score), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(snap.Balls), 10)
	buf = append(buf, ',')
	buf = append(buf, snap.State...)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(snap.ServeDelay), 10)
	buf = append(buf, ',')

	floats := make([]float64, 0, 11)
	floats = append(floats, snap.BallPos[:]...)
	floats = append(floats, snap.BallVel[:]...)
	floats = append(floats, snap.BallSpin[:]...)
	floats = append(floats, snap.LeftAngle, snap.RightAngle)
	for _, f := range floats {
		buf = strconv.AppendUint(buf, math.Float64bits(f), 16)
		buf = append(buf, ',')
	}

	_, _ = h.Write(buf)
	return h.Sum64()
}
