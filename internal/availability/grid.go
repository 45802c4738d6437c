package availability

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultGridCacheSize - сколько разных интервалов держать в кэше сетки
const DefaultGridCacheSize = 32

// GenerateGrid строит сетку начал слотов на сутки: с 00:00 с шагом interval,
// пока значение строго меньше 24:00
func GenerateGrid(interval SlotInterval) []int {
	step := interval.Minutes()
	grid := make([]int, 0, MinutesPerDay/step+1)
	for minute := 0; minute < MinutesPerDay; minute += step {
		grid = append(grid, minute)
	}
	return grid
}

// Grid кэширует сетки по интервалу. Сетка - чистая функция интервала,
// поэтому кэш можно разделять между запросами
type Grid struct {
	cache *lru.Cache[SlotInterval, []int]
}

// NewGrid создаёт кэш сеток заданного размера
func NewGrid(size int) (*Grid, error) {
	cache, err := lru.New[SlotInterval, []int](size)
	if err != nil {
		return nil, fmt.Errorf("create grid cache: %w", err)
	}
	return &Grid{cache: cache}, nil
}

// Slots возвращает копию сетки для интервала
func (g *Grid) Slots(interval SlotInterval) []int {
	interval = SlotInterval(interval.Minutes())

	grid, ok := g.cache.Get(interval)
	if !ok {
		grid = GenerateGrid(interval)
		g.cache.Add(interval, grid)
	}

	// Отдаём копию, чтобы вызывающий код не испортил кэш
	out := make([]int, len(grid))
	copy(out, grid)
	return out
}

// Values возвращает сетку в виде строк HH:MM:SS
func (g *Grid) Values(interval SlotInterval) []string {
	slots := g.Slots(interval)
	values := make([]string, len(slots))
	for i, minute := range slots {
		values[i] = FormatTimeOfDay(minute)
	}
	return values
}
