package animation_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/obliquity/internal/animation"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

type fakeTarget struct {
	days  int
	day   int
	calls []int
}

func (t *fakeTarget) DayCount() int   { return t.days }
func (t *fakeTarget) CurrentDay() int { return t.day }
func (t *fakeTarget) SetCurrentDay(d int) int {
	t.calls = append(t.calls, d)
	t.day = max(0, min(d, t.days-1))
	return t.day
}

// leakyScheduler ignores cancellation so stale frames can still be delivered.
type leakyScheduler struct {
	pending []func(time.Time)
}

func (s *leakyScheduler) RequestFrame(fn func(time.Time)) animation.FrameID {
	s.pending = append(s.pending, fn)
	return animation.FrameID(len(s.pending))
}

func (s *leakyScheduler) CancelFrame(animation.FrameID) {}

func (s *leakyScheduler) fireAll(now time.Time) {
	fns := s.pending
	s.pending = nil
	for _, fn := range fns {
		fn(now)
	}
}

var _ = Describe("Driver", func() {
	var (
		clock  *manualClock
		queue  *animation.FrameQueue
		target *fakeTarget
		driver *animation.Driver
		seen   []int
		t0     time.Time
	)

	period := 4 * time.Second

	BeforeEach(func() {
		t0 = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
		clock = &manualClock{now: t0}
		queue = animation.NewFrameQueue()
		target = &fakeTarget{days: 16, day: 3}
		seen = nil
		driver = animation.New(target, queue,
			animation.WithClock(clock),
			animation.WithPeriod(period),
			animation.OnDay(func(d int) { seen = append(seen, d) }),
		)
	})

	at := func(d time.Duration) time.Time { return t0.Add(d) }

	It("defaults to a four second period", func() {
		d := animation.New(target, queue)
		Expect(d.Period()).To(Equal(animation.DefaultPeriod))
		Expect(d.Period()).To(Equal(4000 * time.Millisecond))
		Expect(d.State()).To(Equal(animation.Stopped))
	})

	It("requests exactly one frame on Start and is idempotent", func() {
		driver.Start()
		driver.Start()
		Expect(driver.State()).To(Equal(animation.Running))
		Expect(queue.Pending()).To(Equal(1))
	})

	It("advances proportionally to elapsed time", func() {
		driver.Start()
		queue.Fire(at(period / 4))
		Expect(target.day).To(Equal(7))
		queue.Fire(at(period / 2))
		Expect(target.day).To(Equal(11))
		queue.Fire(at(period * 3 / 4))
		Expect(target.day).To(Equal(15))
		queue.Fire(at(period*3/4 + period/16))
		Expect(target.day).To(Equal(0))
		Expect(seen).To(Equal([]int{7, 11, 15, 0}))
	})

	It("returns to the start day after one full period", func() {
		driver.Start()
		queue.Fire(at(period / 3))
		Expect(target.day).NotTo(Equal(3))
		queue.Fire(at(period))
		Expect(target.day).To(Equal(3))
		queue.Fire(at(2*period + period/2))
		Expect(target.day).To(Equal(11))
	})

	It("skips SetCurrentDay when the day is unchanged", func() {
		driver.Start()
		queue.Fire(at(time.Millisecond))
		queue.Fire(at(2 * time.Millisecond))
		Expect(target.calls).To(BeEmpty())
		Expect(seen).To(BeEmpty())
		Expect(queue.Pending()).To(Equal(1))
	})

	It("does not depend on the day count for its period", func() {
		target.days = 365
		target.day = 0
		driver.Start()
		queue.Fire(at(period / 2))
		Expect(target.day).To(Equal(182))
		queue.Fire(at(period))
		Expect(target.day).To(Equal(0))
	})

	It("cancels the pending frame on Stop and is idempotent", func() {
		driver.Start()
		driver.Stop()
		driver.Stop()
		Expect(driver.State()).To(Equal(animation.Stopped))
		Expect(queue.Pending()).To(BeZero())
		Expect(queue.Fire(at(period / 2))).To(BeZero())
		Expect(target.day).To(Equal(3))
	})

	It("never applies a frame delivered after Stop", func() {
		leaky := &leakyScheduler{}
		d := animation.New(target, leaky, animation.WithClock(clock), animation.WithPeriod(period))
		d.Start()
		d.Stop()
		leaky.fireAll(at(period / 2))
		Expect(target.calls).To(BeEmpty())
		Expect(leaky.pending).To(BeEmpty())
	})

	It("ignores frames from an earlier run after a restart", func() {
		leaky := &leakyScheduler{}
		d := animation.New(target, leaky, animation.WithClock(clock), animation.WithPeriod(period))
		d.Start()
		d.Stop()
		clock.now = at(period / 4)
		d.Start()
		Expect(leaky.pending).To(HaveLen(2))

		leaky.fireAll(at(period/4 + period/2))
		Expect(target.calls).To(Equal([]int{11}))
		Expect(leaky.pending).To(HaveLen(1))
	})

	It("resumes from the current day after a restart", func() {
		driver.Start()
		queue.Fire(at(period / 4))
		driver.Stop()
		target.SetCurrentDay(9)

		clock.now = at(10 * time.Second)
		driver.Start()
		queue.Fire(at(10*time.Second + period/8))
		Expect(target.day).To(Equal(11))
	})

	It("stops cleanly when a day observer stops it", func() {
		var d *animation.Driver
		d = animation.New(target, queue,
			animation.WithClock(clock),
			animation.WithPeriod(period),
			animation.OnDay(func(int) { d.Stop() }),
		)
		d.Start()
		queue.Fire(at(period / 4))
		Expect(d.State()).To(Equal(animation.Stopped))
		Expect(queue.Pending()).To(BeZero())
	})

	It("toggles between states", func() {
		driver.Toggle()
		Expect(driver.Running()).To(BeTrue())
		driver.Toggle()
		Expect(driver.Running()).To(BeFalse())
		Expect(driver.State().String()).To(Equal("stopped"))
	})
})

var _ = Describe("FrameQueue", func() {
	It("defers requests made during Fire to the next Fire", func() {
		q := animation.NewFrameQueue()
		ran := 0
		var again func(time.Time)
		again = func(time.Time) {
			ran++
			q.RequestFrame(again)
		}
		q.RequestFrame(again)
		Expect(q.Fire(time.Now())).To(Equal(1))
		Expect(q.Fire(time.Now())).To(Equal(1))
		Expect(ran).To(Equal(2))
	})

	It("never issues a zero id", func() {
		q := animation.NewFrameQueue()
		Expect(q.RequestFrame(func(time.Time) {})).NotTo(BeZero())
	})

	It("skips callbacks cancelled by an earlier callback", func() {
		q := animation.NewFrameQueue()
		ran := 0
		var second animation.FrameID
		q.RequestFrame(func(time.Time) { q.CancelFrame(second) })
		second = q.RequestFrame(func(time.Time) { ran++ })
		Expect(q.Fire(time.Now())).To(Equal(1))
		Expect(ran).To(BeZero())
	})
})
