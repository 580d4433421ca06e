package wm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/wm"
)

var _ = Describe("Desktop session", func() {
	var mgr *wm.Manager

	BeforeEach(func() {
		mgr = wm.NewManager(apps.Default(), wm.DefaultOptions())
	})

	window := func(id string) wm.Window {
		w, err := mgr.Window(id)
		Expect(err).NotTo(HaveOccurred())
		return w
	}

	Describe("launching applications", func() {
		It("stacks each new window above the previous one", func() {
			calc, err := mgr.Launch(apps.Calculator)
			Expect(err).NotTo(HaveOccurred())
			todo, err := mgr.Launch(apps.Todo)
			Expect(err).NotTo(HaveOccurred())

			Expect(window(todo).ZIndex).To(BeNumerically(">", window(calc).ZIndex))
			focused, ok := mgr.Focused()
			Expect(ok).To(BeTrue())
			Expect(focused.ID).To(Equal(todo))
		})

		Context("when the application already has a window", func() {
			It("restores it instead of opening another", func() {
				first, _ := mgr.Launch(apps.Notepad)
				Expect(mgr.ToggleMinimize(first)).To(Succeed())

				second, err := mgr.Launch(apps.Notepad)
				Expect(err).NotTo(HaveOccurred())
				Expect(second).To(Equal(first))
				Expect(mgr.Windows()).To(HaveLen(1))
				Expect(window(first).Minimized).To(BeFalse())
			})
		})
	})

	Describe("dragging a window by its title bar", func() {
		It("moves the window with the pointer until release", func() {
			id, _ := mgr.Launch(apps.Terminal)

			Expect(mgr.Press(id, wm.Point{X: 140, Y: 60}, wm.RegionTitleBar)).To(Succeed())
			Expect(mgr.Drag(wm.Point{X: 240, Y: 160})).To(BeTrue())
			mgr.Release()
			Expect(mgr.Drag(wm.Point{X: 999, Y: 999})).To(BeFalse())

			Expect(window(id).Position).To(Equal(wm.Point{X: 200, Y: 150}))
		})
	})

	Describe("logging out", func() {
		It("starts the next session from a clean slate", func() {
			_, _ = mgr.Launch(apps.Calculator)
			_, _ = mgr.Launch(apps.Paint)

			mgr.Logout()
			Expect(mgr.Windows()).To(BeEmpty())

			id, err := mgr.Launch(apps.Snake)
			Expect(err).NotTo(HaveOccurred())
			Expect(window(id).ZIndex).To(Equal(1))
		})
	})
})
