package manager

import (
	"fmt"
	"math"
	"time"
)

// ScoreRules are the scoring constants. TimeMax is the fast-eat threshold and
// TimeMin the slow one, so TimeMin > TimeMax; the names are kept as configured.
type ScoreRules struct {
	BaseScoreAtEat float64
	TimeScoreMin   float64
	TimeScoreMax   float64
	TimeMin        float64 // seconds
	TimeMax        float64 // seconds
}

type ScoreManager struct {
	rules   ScoreRules
	score   float64
	lastEat time.Time
}

func NewScoreManager(rules ScoreRules, now time.Time) *ScoreManager {
	return &ScoreManager{
		rules:   rules,
		lastEat: now,
	}
}

// OnEat adds the award for eating at now and returns it
func (sm *ScoreManager) OnEat(now time.Time) float64 {
	elapsed := now.Sub(sm.lastEat).Seconds()
	award := sm.rules.BaseScoreAtEat + sm.timeBonus(elapsed)

	sm.score += award
	sm.lastEat = now
	return award
}

func (sm *ScoreManager) timeBonus(elapsed float64) float64 {
	switch {
	case elapsed < sm.rules.TimeMax:
		return sm.rules.TimeScoreMax
	case elapsed > sm.rules.TimeMin:
		return sm.rules.TimeScoreMin
	}

	t := 1.0
	if sm.rules.TimeMin > 0 {
		t = elapsed / sm.rules.TimeMin
	}
	return lerp(sm.rules.TimeScoreMax, sm.rules.TimeScoreMin, t)
}

func (sm *ScoreManager) Reset(now time.Time) {
	sm.score = 0
	sm.lastEat = now
}

func (sm *ScoreManager) Score() float64 {
	return sm.score
}

func (sm *ScoreManager) LastEat() time.Time {
	return sm.lastEat
}

// Text is the score label shown by the front ends
func (sm *ScoreManager) Text() string {
	return FormatScore(sm.score)
}

// FormatScore rounds half to even, so 2.5 shows as 2
func FormatScore(score float64) string {
	return fmt.Sprintf("SCORE: %d", int64(math.RoundToEven(score)))
}

// lerp interpolates from a to b with t clamped to [0, 1]
func lerp(a, b, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return a + (b-a)*t
}
