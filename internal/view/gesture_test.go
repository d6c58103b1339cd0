package view_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/view"
)

var _ = Describe("Gestures", func() {
	var (
		g  *view.Gestures
		t  view.Transform
		vp view.Viewport
	)

	BeforeEach(func() {
		g = view.NewGestures()
		t = view.Identity()
		vp = view.Viewport{W: 640, H: 480}
	})

	It("starts idle", func() {
		Expect(g.Phase()).To(Equal(view.Idle{}))
	})

	It("pans while dragging and returns to idle on release", func() {
		g.Down(1, geom.V(100, 100))
		Expect(g.Phase()).To(BeAssignableToTypeOf(view.Dragging{}))

		g.Move(&t, vp, 1, geom.V(130, 90))
		g.Move(&t, vp, 1, geom.V(140, 95))
		Expect(t.X).To(BeNumerically("~", 40, 1e-12))
		Expect(t.Y).To(BeNumerically("~", -5, 1e-12))
		Expect(t.K).To(Equal(1.0))

		g.Up(1)
		Expect(g.Phase()).To(Equal(view.Idle{}))
	})

	It("ignores moves from other pointers while dragging", func() {
		g.Down(1, geom.V(0, 0))
		g.Move(&t, vp, 2, geom.V(50, 50))
		Expect(t).To(Equal(view.Identity()))
	})

	It("enters pinching with a second pointer and zooms about the midpoint", func() {
		g.Down(1, geom.V(200, 240))
		g.Down(2, geom.V(400, 240))
		Expect(g.Phase()).To(Equal(view.Pinching{
			Pointers: [2]view.PointerID{1, 2},
			Pos:      [2]geom.Vec{geom.V(200, 240), geom.V(400, 240)},
		}))

		g.Move(&t, vp, 2, geom.V(600, 240))
		Expect(t.K).To(BeNumerically("~", 2, 1e-12))

		mid := geom.V(200, 240).Mid(geom.V(600, 240))
		world := t.ScreenToWorld(vp, mid)
		Expect(world.Dist(view.Identity().ScreenToWorld(vp, mid))).To(BeNumerically("<", 1e-9))
	})

	It("falls back to dragging with the remaining pointer", func() {
		g.Down(1, geom.V(10, 10))
		g.Down(2, geom.V(50, 50))
		g.Up(1)
		Expect(g.Phase()).To(Equal(view.Dragging{Pointer: 2, Last: geom.V(50, 50)}))

		g.Move(&t, vp, 2, geom.V(60, 55))
		Expect(t.X).To(BeNumerically("~", 10, 1e-12))
		Expect(t.Y).To(BeNumerically("~", 5, 1e-12))
	})

	It("ignores a third pointer", func() {
		g.Down(1, geom.V(10, 10))
		g.Down(2, geom.V(50, 50))
		g.Down(3, geom.V(90, 90))
		Expect(g.Phase()).To(BeAssignableToTypeOf(view.Pinching{}))
		Expect(view.PhaseName(g.Phase())).To(Equal("pinching"))
	})

	It("zooms on wheel at the cursor", func() {
		p := geom.V(100, 400)
		before := t.ScreenToWorld(vp, p)
		g.Wheel(&t, vp, p, 2)
		Expect(t.K).To(BeNumerically("~", view.WheelStep*view.WheelStep, 1e-12))
		Expect(t.ScreenToWorld(vp, p).Dist(before)).To(BeNumerically("<", 1e-9))
	})

	It("cancels back to idle", func() {
		g.Down(1, geom.V(0, 0))
		g.Cancel()
		Expect(g.Phase()).To(Equal(view.Idle{}))
	})
})
