package scene_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/geom"
	"github.com/san-kum/obliquity/internal/scene"
)

var _ = Describe("Controller", func() {
	var (
		r        *countingRenderer
		pub      *countingPublisher
		c        *scene.Controller
		readouts []scene.Snapshot
	)

	BeforeEach(func() {
		r = newCountingRenderer()
		pub = &countingPublisher{}
		readouts = nil
		var err error
		c, err = scene.New(r, pub, scene.OnReadout(func(s scene.Snapshot) {
			readouts = append(readouts, s)
		}))
		Expect(err).NotTo(HaveOccurred())
		r.reset()
		pub.calls = 0
		readouts = nil
	})

	Describe("construction", func() {
		It("starts from the documented defaults", func() {
			Expect(c.Obliquity()).To(Equal(23.4))
			Expect(c.DayCount()).To(Equal(16))
			Expect(c.CurrentDay()).To(Equal(0))
			Expect(c.Series()).To(HaveLen(16))
			Expect(c.Readout().Minutes).To(BeNumerically("~", 0, 1e-12))
		})

		It("draws one reference line per day in each set", func() {
			Expect(c.LineCount()).To(Equal(16))
			Expect(r.liveOf("line:orbital")).To(Equal(16 + 1))
			Expect(r.liveOf("line:tilted")).To(Equal(16 + 2))
			Expect(r.liveOf("sun")).To(Equal(1))
			Expect(r.liveOf("arc")).To(Equal(1))
		})

		It("rejects an invalid initial day count", func() {
			_, err := scene.New(newCountingRenderer(), nil, scene.WithDayCount(1))
			Expect(errors.Is(err, discrepancy.ErrInvalidDayCount)).To(BeTrue())
		})

		It("clamps an out-of-range initial day", func() {
			c2, err := scene.New(newCountingRenderer(), nil, scene.WithDayCount(10), scene.WithCurrentDay(25))
			Expect(err).NotTo(HaveOccurred())
			Expect(c2.CurrentDay()).To(Equal(9))
		})
	})

	Describe("SetObliquity", func() {
		It("rebuilds tilt, arc, series and readout once for repeated values", func() {
			c.SetObliquity(30)
			c.SetObliquity(30)

			Expect(r.tilts).To(Equal([]float64{30}))
			Expect(r.creates["arc"]).To(Equal(1))
			Expect(pub.calls).To(Equal(1))
			Expect(readouts).To(HaveLen(1))
		})

		It("does not rebuild reference lines or the sun", func() {
			c.SetObliquity(45)
			Expect(r.creates["line:orbital"]).To(BeZero())
			Expect(r.creates["line:tilted"]).To(BeZero())
			Expect(r.creates["sun"]).To(BeZero())
		})

		It("is a no-op for the current value", func() {
			c.SetObliquity(23.4)
			Expect(r.events).To(BeEmpty())
			Expect(pub.calls).To(BeZero())
		})

		It("republishes a series for the new tilt", func() {
			c.SetCurrentDay(3)
			c.SetObliquity(60)
			Expect(pub.last).To(HaveLen(16))
			Expect(pub.last[3].Minutes).To(BeNumerically("~", discrepancy.Compute(60, 3, 16).Minutes, 1e-12))
			Expect(c.Readout()).To(Equal(discrepancy.Compute(60, 3, 16)))
		})

		It("rejects non-finite tilts and keeps prior state", func() {
			c.SetCurrentDay(3)
			r.reset()
			pub.calls = 0
			readouts = nil
			before := c.Readout()

			for _, deg := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				err := c.SetObliquity(deg)
				Expect(errors.Is(err, scene.ErrInvalidObliquity)).To(BeTrue())
			}
			Expect(c.Obliquity()).To(Equal(23.4))
			Expect(c.Readout()).To(Equal(before))
			Expect(r.events).To(BeEmpty())
			Expect(r.tilts).To(BeEmpty())
			Expect(pub.calls).To(BeZero())
			Expect(readouts).To(BeEmpty())
		})

		It("refuses a non-finite initial tilt", func() {
			_, err := scene.New(newCountingRenderer(), nil, scene.WithObliquity(math.NaN()))
			Expect(errors.Is(err, scene.ErrInvalidObliquity)).To(BeTrue())
		})

		It("yields zero discrepancy everywhere at zero tilt", func() {
			c.SetObliquity(0)
			for _, s := range c.Series() {
				Expect(s.Minutes).To(BeNumerically("~", 0, 1e-9))
			}
		})
	})

	Describe("SetDayCount", func() {
		It("rejects counts below two and keeps prior state", func() {
			c.SetCurrentDay(5)
			r.reset()
			pub.calls = 0

			for _, n := range []int{1, 0, -4} {
				err := c.SetDayCount(n)
				Expect(errors.Is(err, discrepancy.ErrInvalidDayCount)).To(BeTrue())
			}
			Expect(c.DayCount()).To(Equal(16))
			Expect(c.CurrentDay()).To(Equal(5))
			Expect(r.events).To(BeEmpty())
			Expect(pub.calls).To(BeZero())
		})

		It("is a no-op when unchanged", func() {
			Expect(c.SetDayCount(16)).To(Succeed())
			Expect(r.events).To(BeEmpty())
		})

		It("clamps the current day into the new range", func() {
			for _, prior := range []int{0, 7, 15} {
				for _, n := range []int{2, 3, 8, 16, 400} {
					Expect(c.SetDayCount(16)).To(Succeed())
					c.SetCurrentDay(prior)
					Expect(c.SetDayCount(n)).To(Succeed())
					Expect(c.CurrentDay()).To(BeNumerically(">=", 0))
					Expect(c.CurrentDay()).To(BeNumerically("<", c.DayCount()))
					Expect(c.CurrentDay()).To(Equal(min(prior, n-1)))
				}
			}
		})

		It("replaces every reference line and republishes once", func() {
			Expect(c.SetDayCount(24)).To(Succeed())
			Expect(c.LineCount()).To(Equal(24))
			Expect(r.liveOf("line:orbital")).To(Equal(24 + 1))
			Expect(r.liveOf("line:tilted")).To(Equal(24 + 2))
			Expect(pub.calls).To(Equal(1))
			Expect(pub.last).To(HaveLen(24))
			Expect(readouts).To(HaveLen(1))
		})

		It("thins reference lines above the threshold", func() {
			Expect(c.SetDayCount(365)).To(Succeed())
			Expect(c.LineStep()).To(Equal(12))
			Expect(c.LineCount()).To(Equal(31))
			Expect(c.Series()).To(HaveLen(365))
			Expect(pub.last).To(HaveLen(365))

			Expect(c.SetDayCount(100)).To(Succeed())
			Expect(c.LineStep()).To(Equal(1))
			Expect(c.LineCount()).To(Equal(100))
		})

		It("honours a custom thinning policy", func() {
			c2, err := scene.New(newCountingRenderer(), nil, scene.WithDayCount(50), scene.WithLineThinning(10, 5))
			Expect(err).NotTo(HaveOccurred())
			Expect(c2.LineStep()).To(Equal(10))
			Expect(c2.LineCount()).To(Equal(5))
		})

		It("disposes old geometry before creating replacements", func() {
			Expect(c.SetDayCount(4)).To(Succeed())
			firstCreate := -1
			lastDispose := -1
			for i, e := range r.events {
				switch e {
				case "create line:orbital", "create line:tilted":
					if firstCreate < 0 {
						firstCreate = i
					}
				case "dispose line:orbital", "dispose line:tilted":
					lastDispose = i
				}
			}
			Expect(lastDispose).To(BeNumerically("<", firstCreate))
			Expect(r.events).To(ContainElements("dispose sun", "create sun", "dispose arc", "create arc"))
		})
	})

	Describe("SetCurrentDay", func() {
		It("touches only day geometry", func() {
			Expect(c.SetCurrentDay(4)).To(Equal(4))
			Expect(r.events).To(Equal([]string{"dispose sun", "create sun", "dispose arc", "create arc"}))
			Expect(pub.calls).To(BeZero())
			Expect(readouts).To(HaveLen(1))
			Expect(readouts[0].CurrentDay).To(Equal(4))
			Expect(readouts[0].Discrepancy).To(Equal(discrepancy.Compute(23.4, 4, 16)))
		})

		It("clamps out-of-range days instead of failing", func() {
			Expect(c.SetCurrentDay(99)).To(Equal(15))
			Expect(c.SetCurrentDay(-3)).To(Equal(0))
			Expect(c.CurrentDay()).To(Equal(0))
		})

		It("keeps exactly one sun and one arc alive", func() {
			for d := 0; d < 40; d++ {
				c.SetCurrentDay(d % 16)
			}
			Expect(r.liveOf("sun")).To(Equal(1))
			Expect(r.liveOf("arc")).To(Equal(1))
		})

		It("places the sun on the orbit circle", func() {
			c.SetCurrentDay(4)
			sun := c.Snapshot().Sun
			Expect(sun.X).To(BeNumerically("~", 0, 1e-12))
			Expect(sun.Y).To(BeNumerically("~", 0, 1e-12))
			Expect(sun.Z).To(BeNumerically("~", scene.OrbitRadius, 1e-12))
		})
	})

	Describe("mismatch arc", func() {
		It("spans the reported discrepancy", func() {
			c.SetObliquity(40)
			c.SetCurrentDay(2)
			var arc scene.Group
			for _, s := range r.live {
				if g, ok := s.(scene.Group); ok {
					arc = g
				}
			}
			Expect(arc.Shapes).To(HaveLen(3))
			tube := arc.Shapes[2].(scene.Tube)
			first, last := tube.Points[0], tube.Points[len(tube.Points)-1]
			Expect(geom.Angle(first, last)).To(BeNumerically("~", geom.Radians(c.Readout().AngleDeg), 1e-9))
		})
	})

	It("reuses cached series when toggling back", func() {
		cache, err := discrepancy.NewCache(8)
		Expect(err).NotTo(HaveOccurred())
		c2, err := scene.New(newCountingRenderer(), pub, scene.WithSeriesCache(cache))
		Expect(err).NotTo(HaveOccurred())
		c2.SetObliquity(30)
		c2.SetObliquity(23.4)
		Expect(cache.Len()).To(Equal(2))
		Expect(c2.Series()).To(Equal(discrepancy.Series(23.4, 16)))
	})

	It("forwards camera resets", func() {
		c.ResetCamera()
		Expect(r.resets).To(Equal(1))
		Expect(r.events).To(BeEmpty())
	})

	It("releases everything on Close", func() {
		c.Close()
		Expect(r.live).To(BeEmpty())
	})
})
