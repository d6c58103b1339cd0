package view_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/view"
)

var _ = Describe("Transform", func() {
	vp := view.Viewport{W: 800, H: 600}

	It("maps the world origin to the viewport centre plus offset", func() {
		t := view.Transform{X: 10, Y: -5, K: 2}
		s := t.WorldToScreen(vp, geom.V(0, 0))
		Expect(s.X).To(BeNumerically("~", 410, 1e-12))
		Expect(s.Y).To(BeNumerically("~", 295, 1e-12))
	})

	It("round-trips world and screen coordinates", func() {
		t := view.Transform{X: 37, Y: 12, K: 1.7}
		w := geom.V(-42.5, 88)
		back := t.ScreenToWorld(vp, t.WorldToScreen(vp, w))
		Expect(back.Dist(w)).To(BeNumerically("<", 1e-9))
	})

	Describe("ZoomAt", func() {
		It("keeps the world point under the anchor fixed", func() {
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 500; i++ {
				t := view.Transform{
					X: rng.Float64()*400 - 200,
					Y: rng.Float64()*400 - 200,
					K: 0.1 + rng.Float64()*10,
				}
				anchor := geom.V(rng.Float64()*vp.W, rng.Float64()*vp.H)
				factor := 0.2 + rng.Float64()*4
				before := t.ScreenToWorld(vp, anchor)

				t.ZoomAt(vp, anchor, factor)

				after := t.ScreenToWorld(vp, anchor)
				Expect(after.Dist(before)).To(BeNumerically("<", 1e-8))
			}
		})

		It("keeps the anchor fixed even when the scale clamps", func() {
			t := view.Transform{X: 30, Y: 40, K: 30}
			anchor := geom.V(100, 500)
			before := t.ScreenToWorld(vp, anchor)

			t.ZoomAt(vp, anchor, 100)

			Expect(t.K).To(Equal(view.KMax))
			Expect(t.ScreenToWorld(vp, anchor).Dist(before)).To(BeNumerically("<", 1e-9))
		})

		It("clamps to KMin", func() {
			t := view.Identity()
			t.ZoomAt(vp, vp.Center(), 1e-6)
			Expect(t.K).To(Equal(view.KMin))
		})

		It("ignores non-positive factors", func() {
			t := view.Transform{X: 1, Y: 2, K: 3}
			t.ZoomAt(vp, geom.V(5, 5), 0)
			t.ZoomAt(vp, geom.V(5, 5), -2)
			Expect(t).To(Equal(view.Transform{X: 1, Y: 2, K: 3}))
		})
	})

	It("pans the offset only", func() {
		t := view.Transform{X: 1, Y: 2, K: 3}
		t.Pan(10, -4)
		Expect(t).To(Equal(view.Transform{X: 11, Y: -2, K: 3}))
	})

	Describe("Pinch", func() {
		It("zooms by the distance ratio about the midpoint", func() {
			t := view.Identity()
			prev := [2]geom.Vec{geom.V(300, 300), geom.V(500, 300)}
			cur := [2]geom.Vec{geom.V(250, 300), geom.V(550, 300)}
			mid := cur[0].Mid(cur[1])
			before := t.ScreenToWorld(vp, mid)

			t.Pinch(vp, prev, cur)

			Expect(t.K).To(BeNumerically("~", 1.5, 1e-12))
			Expect(t.ScreenToWorld(vp, mid).Dist(before)).To(BeNumerically("<", 1e-9))
		})

		It("does nothing for coincident pointers", func() {
			t := view.Identity()
			p := [2]geom.Vec{geom.V(1, 1), geom.V(1, 1)}
			t.Pinch(vp, p, [2]geom.Vec{geom.V(0, 0), geom.V(5, 5)})
			Expect(t).To(Equal(view.Identity()))
		})
	})

	Describe("Reset", func() {
		It("fits the extent with padding and zeroes the offset", func() {
			t := view.Transform{X: 50, Y: 60, K: 7}
			t.Reset(vp, 150)
			Expect(t.X).To(BeZero())
			Expect(t.Y).To(BeZero())
			Expect(t.K).To(BeNumerically("~", 0.9*300/150, 1e-12))
		})

		It("falls back to unit scale for an empty viewport", func() {
			t := view.Transform{X: 5, K: 3}
			t.Reset(view.Viewport{}, 150)
			Expect(t).To(Equal(view.Identity()))
		})
	})

	Describe("Extent", func() {
		It("covers the pen sweep for circular gears", func() {
			g := config.DefaultGear()
			Expect(view.Extent(g, geom.Bounds{})).To(BeNumerically("~", 168, 1e-9))
		})

		It("is at least the stator for a short pen", func() {
			g := config.DefaultGear()
			g.PenOffset = 10
			Expect(view.Extent(g, geom.Bounds{})).To(BeNumerically("~", 150, 1e-9))
		})

		It("grows to include the trace", func() {
			b := geom.Bounds{}.Extend(geom.V(-400, 3))
			Expect(view.Extent(config.DefaultGear(), b)).To(BeNumerically("~", 400, 1e-9))
		})
	})
})
