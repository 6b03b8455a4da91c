package orchestrator

import (
	"math"
	"math/rand/v2"
	"time"
)

// Difficulty Уровень сложности от счёта: +1 за каждые pointsPerLevel очков, не выше maxLevel
func Difficulty(score, pointsPerLevel, maxLevel int) int {
	if pointsPerLevel <= 0 {
		pointsPerLevel = 1
	}
	if score < 0 {
		score = 0
	}
	return min(maxLevel, score/pointsPerLevel+1)
}

// SpeedMultiplier Во сколько раз раунд короче базового
func SpeedMultiplier(difficulty int, coefficient float64) float64 {
	return 1 + float64(difficulty)*coefficient
}

// ScaledDuration Длительность раунда с учётом ускорения
func ScaledDuration(base time.Duration, multiplier float64) time.Duration {
	if multiplier <= 0 {
		return base
	}
	return time.Duration(float64(base) / multiplier)
}

// RemainingPct Остаток времени раунда в процентах.
// Считается от абсолютного прошедшего времени, поэтому пропущенный тик
// даёт просто больший скачок
func RemainingPct(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	pct := 100 - float64(elapsed)/float64(total)*100
	return math.Max(0, math.Min(100, pct))
}

// NextIndex Случайный индекс следующей игры без немедленного повтора.
// Совпадение с предыдущим сдвигается на следующий индекс по кругу,
// без повторного броска
func NextIndex(r *rand.Rand, n, prev int) int {
	if n <= 0 {
		return 0
	}
	i := r.IntN(n)
	if n > 1 && i == prev {
		i = (i + 1) % n
	}
	return i
}
