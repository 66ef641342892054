// Package oracle - источник времени и номера слота для таймингов раундов
// и генерации выигрышного числа.
package oracle

import "time"

// Длительность одного слота
const slotDuration = 400 * time.Millisecond

type Clock interface {
	Now() time.Time
	Slot() uint64
}

// SystemClock - продакшен-часы: слот выводится из настенного времени
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Slot() uint64 {
	return uint64(time.Now().UnixMilli() / slotDuration.Milliseconds())
}

// ManualClock - управляемые часы для тестов
type ManualClock struct {
	Time time.Time
	Cur  uint64
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{Time: start}
}

func (c *ManualClock) Now() time.Time {
	return c.Time
}

func (c *ManualClock) Slot() uint64 {
	return c.Cur
}

// Advance - сдвигает время вперед и увеличивает слот
func (c *ManualClock) Advance(d time.Duration) {
	c.Time = c.Time.Add(d)
	c.Cur += uint64(d / slotDuration)
}
