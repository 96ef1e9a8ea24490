package game

import (
	"time"

	"snake-sim/config"
	"snake-sim/game/entity"
	"snake-sim/game/manager"
	"snake-sim/game/types"
	"snake-sim/logging"
	"snake-sim/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

// Game is one snake session: the room, the snake, its food and score.
// It is not safe for concurrent use; a Scheduler drives it from one goroutine.
type Game struct {
	UUID      string
	StartTime time.Time

	cfg   config.Config
	speed float64
	seed  uint64
	rng   *rand.Rand

	room      *entity.Room
	snake     *entity.Snake
	food      *manager.FoodManager
	score     *manager.ScoreManager
	state     *manager.StateManager
	collision *manager.CollisionManager

	clock     Clock
	log       *log.Entry
	metrics   *metrics.Collector
	observers []Observer

	tick   uint64
	rounds int
}

type Option func(*Game)

func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

func WithLogger(entry *log.Entry) Option {
	return func(g *Game) { g.log = entry }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(g *Game) { g.metrics = c }
}

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

// NewGame validates cfg and builds a session in the Waiting phase. The board
// is seeded so a front end has something to draw before the first Start.
func NewGame(cfg config.Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	room, err := cfg.NewRoom()
	if err != nil {
		return nil, err
	}

	g := &Game{
		UUID:  uuid.New().String(),
		cfg:   cfg,
		speed: cfg.Snake.Speed,
		seed:  cfg.Session.Seed,
		room:  room,
		snake: entity.NewSnake(cfg.Snake.StartLength, cfg.StartCell(), cfg.Snake.StartHeading),
		food:  manager.NewFoodManager(),
		state: manager.NewStateManager(cfg.Session.HistoryLimit),
		clock: SystemClock{},
	}
	g.collision = manager.NewCollisionManager(room)
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logging.Discard()
	}
	g.log = g.log.WithField("session", g.UUID)

	if g.seed == 0 {
		g.seed = uint64(time.Now().UnixNano())
	}
	g.rng = rand.New(rand.NewSource(g.seed))

	g.StartTime = g.clock.Now()
	g.score = manager.NewScoreManager(scoreRules(cfg.Score), g.StartTime)
	if err := g.reseed(); err != nil {
		return nil, err
	}

	g.log.WithFields(log.Fields{
		"cols": room.Cols(),
		"rows": room.Rows(),
		"seed": g.seed,
	}).Info("session created")
	return g, nil
}

func scoreRules(c config.ScoreConfig) manager.ScoreRules {
	return manager.ScoreRules{
		BaseScoreAtEat: c.BaseScoreAtEat,
		TimeScoreMin:   c.TimeScoreMin,
		TimeScoreMax:   c.TimeScoreMax,
		TimeMin:        c.TimeMin,
		TimeMax:        c.TimeMax,
	}
}

// Subscribe adds an observer. Call before the session is driven.
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
}

// reseed puts the snake, food and score back to their starting state
func (g *Game) reseed() error {
	start := g.cfg.StartCell()
	if !g.collision.ValidateSpawnPosition(start, nil) {
		return errors.Wrapf(types.ErrInvalidConfig, "start cell %v", start)
	}

	g.snake.Reset(g.cfg.Snake.StartLength, start, g.cfg.Snake.StartHeading)
	g.food.Clear()
	g.score.Reset(g.clock.Now())
	g.tick = 0

	occupied := g.collision.Occupied(g.snake, nil)
	if err := g.food.EnsureCount(g.cfg.Food.Amount, g.room, g.rng, occupied); err != nil {
		return errors.Wrap(err, "seed food")
	}
	return nil
}

// Start begins a round from any phase. Calling it while playing restarts.
func (g *Game) Start() error {
	if err := g.reseed(); err != nil {
		g.log.WithError(err).Error("cannot start round")
		return err
	}
	if err := g.state.Transition(manager.Playing); err != nil {
		return err
	}
	g.rounds++

	g.metrics.ObserveRound(g.snake.Len())
	g.log.WithField("round", g.rounds).Info("round started")

	for _, o := range g.observers {
		o.OnGameReset()
	}
	for _, o := range g.observers {
		o.OnScoreChanged(0)
	}
	g.publishFrame()
	return nil
}

// Steer buffers a direction change for the next tick
func (g *Game) Steer(axis types.Axis) bool {
	if g.state.Phase() != manager.Playing {
		return false
	}
	return g.snake.SetDesiredHeading(axis)
}

// Grow queues a segment without eating. Only available in debug sessions.
func (g *Game) Grow() bool {
	if !g.cfg.Session.Debug || g.state.Phase() != manager.Playing {
		return false
	}
	g.snake.Grow()
	g.log.WithField("pending", g.snake.GrowthPending()).Debug("debug grow")
	return true
}

// SetSpeed changes the speed factor; the next Interval uses it
func (g *Game) SetSpeed(speed float64) error {
	if speed <= 0 {
		return errors.Wrapf(types.ErrInvalidConfig, "snake speed %v must be positive", speed)
	}
	g.speed = speed
	g.log.WithField("speed", speed).Debug("speed changed")
	return nil
}

func (g *Game) Speed() float64 { return g.speed }

// Interval is the delay until the next tick, computed from the current speed
func (g *Game) Interval() time.Duration {
	return time.Duration(g.cfg.Snake.TimeTillMove / g.speed * float64(time.Second))
}

// Tick advances the session by one step. Outside Playing it does nothing:
// a finished round keeps returning its fatal result.
func (g *Game) Tick() (entity.StepResult, error) {
	switch g.state.Phase() {
	case manager.Waiting:
		g.log.WithError(errors.Wrap(types.ErrInvalidState, "tick before start")).Debug("tick ignored")
		return entity.StepResult{}, nil
	case manager.GameOver:
		g.log.WithError(errors.Wrap(types.ErrInvalidState, "tick after death")).Debug("tick ignored")
		return g.snake.LastResult(), nil
	}

	began := time.Now()
	g.tick++
	res := g.snake.Step(g.room, g.food)

	var err error
	switch res.Outcome {
	case entity.Ate:
		err = g.eat(res)
	case entity.Died:
		g.die(res)
	}

	g.metrics.ObserveTick(time.Since(began), g.snake.Len())
	g.publishFrame()
	return res, err
}

func (g *Game) eat(res entity.StepResult) error {
	award := g.score.OnEat(g.clock.Now())
	if _, err := g.food.ConsumeIndex(res.FoodIndex); err != nil {
		g.log.WithError(err).Warn("eaten food already gone")
	}
	g.snake.Grow()

	var spawnErr error
	occupied := g.collision.Occupied(g.snake, nil)
	if err := g.food.EnsureCount(g.cfg.Food.Amount, g.room, g.rng, occupied); err != nil {
		g.metrics.ObserveSpawnFailure()
		g.log.WithError(err).WithField("free", g.collision.FreeCells(g.collision.Occupied(g.snake, g.food.Cells()))).
			Error("no room for food; the grid is too small for this configuration")
		spawnErr = errors.Wrap(err, "respawn food")
	}

	g.metrics.ObserveEat(g.score.Score())
	g.log.WithFields(log.Fields{
		"award":  award,
		"score":  g.score.Score(),
		"length": g.snake.Len(),
	}).Debug("food eaten")
	for _, o := range g.observers {
		o.OnScoreChanged(g.score.Score())
	}
	return spawnErr
}

func (g *Game) die(res entity.StepResult) {
	if err := g.state.Transition(manager.GameOver); err != nil {
		g.log.WithError(err).Error("phase change")
	}
	high := g.state.RecordRound(manager.Round{
		Score:    g.score.Score(),
		Length:   g.snake.Len(),
		Ticks:    g.tick,
		Cause:    res.Cause,
		Finished: g.clock.Now(),
	})

	g.metrics.ObserveDeath(res.Cause)
	g.log.WithFields(log.Fields{
		"cause":     res.Cause,
		"cell":      res.Cell,
		"score":     g.score.Score(),
		"ticks":     g.tick,
		"highScore": high,
	}).Info("snake died")
	for _, o := range g.observers {
		o.OnGameOver(res.Cause)
	}
}

func (g *Game) publishFrame() {
	if len(g.observers) == 0 {
		return
	}
	snap := g.Snapshot()
	for _, o := range g.observers {
		o.OnFrame(snap)
	}
}

// Snapshot copies the visible state
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Session:   g.UUID,
		Tick:      g.tick,
		Phase:     g.state.Phase(),
		Heading:   g.snake.Heading(),
		Cols:      g.room.Cols(),
		Rows:      g.room.Rows(),
		Body:      g.snake.Body(),
		Food:      g.food.Cells(),
		Score:     g.score.Score(),
		ScoreText: g.score.Text(),
		HighScore: g.state.HighScore(),
		Length:    g.snake.Len(),
		Speed:     g.speed,
		Cause:     g.snake.Cause(),
	}
}

func (g *Game) Phase() manager.Phase     { return g.state.Phase() }
func (g *Game) Room() *entity.Room       { return g.room }
func (g *Game) Score() float64           { return g.score.Score() }
func (g *Game) ScoreText() string        { return g.score.Text() }
func (g *Game) HighScore() float64       { return g.state.HighScore() }
func (g *Game) History() []manager.Round { return g.state.History() }
func (g *Game) Seed() uint64             { return g.seed }
func (g *Game) Debug() bool              { return g.cfg.Session.Debug }
func (g *Game) Config() config.Config    { return g.cfg }
