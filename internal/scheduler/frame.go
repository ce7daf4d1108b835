package scheduler

import (
	"container/heap"
	"errors"
	"time"
)

// ErrNilCallback - попытка запланировать пустой колбэк
var ErrNilCallback = errors.New("scheduler: колбэк не задан")

// Frame - таймер, управляемый кадрами игрового цикла.
// Время двигается только через Advance, поэтому колбэки выполняются
// в потоке цикла. Не потокобезопасен.
type Frame struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
}

// NewFrame создаёт планировщик с нулевым временем
func NewFrame() *Frame {
	return &Frame{}
}

// After планирует fn через delay от текущего кадрового времени.
// Колбэк выполняется ровно один раз и не отменяется.
func (f *Frame) After(delay time.Duration, fn func()) error {
	if fn == nil {
		return ErrNilCallback
	}
	if delay < 0 {
		delay = 0
	}
	f.seq++
	heap.Push(&f.timers, &timer{due: f.now + delay, seq: f.seq, fn: fn})
	return nil
}

// Advance сдвигает время на dt и выполняет наступившие колбэки
// в порядке срока, при равенстве - в порядке планирования.
// Колбэки, запланированные во время Advance, ждут следующего кадра.
// Возвращает количество выполненных колбэков.
func (f *Frame) Advance(dt time.Duration) int {
	if dt > 0 {
		f.now += dt
	}

	var due []*timer
	for f.timers.Len() > 0 && f.timers[0].due <= f.now {
		due = append(due, heap.Pop(&f.timers).(*timer))
	}
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Now возвращает текущее кадровое время
func (f *Frame) Now() time.Duration {
	return f.now
}

// Pending возвращает количество ожидающих колбэков
func (f *Frame) Pending() int {
	return f.timers.Len()
}

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x interface{}) { *h = append(*h, x.(*timer)) }

func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
