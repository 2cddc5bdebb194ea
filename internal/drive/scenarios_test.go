package drive_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/skidsteer/internal/drive"
)

type move struct {
	sym         drive.Symbol
	left, right int
}

func m(sym drive.Symbol, left, right int) move {
	return move{sym: sym, left: left, right: right}
}

const (
	F = drive.MoveForward
	B = drive.MoveBack
	L = drive.TurnLeft
	R = drive.TurnRight
	S = drive.Stop
)

var _ = Describe("Controller", func() {
	DescribeTable("command sequences",
		func(maxValue int, moves []move) {
			ctrl, err := drive.New(0, maxValue, 10)
			Expect(err).NotTo(HaveOccurred())
			for i, mv := range moves {
				left, right, err := ctrl.Apply(mv.sym)
				Expect(err).NotTo(HaveOccurred(), "move %d (%s)", i, mv.sym)
				Expect([]int{left, right}).To(Equal([]int{mv.left, mv.right}), "move %d (%s)", i, mv.sym)
			}
		},
		Entry("forward saturates", 25, []move{m(F, 10, 10), m(F, 20, 20), m(F, 20, 20)}),
		Entry("back saturates", 25, []move{m(B, -10, -10), m(B, -20, -20), m(B, -20, -20)}),
		Entry("forward reaches an exact bound", 30, []move{m(F, 10, 10), m(F, 20, 20), m(F, 30, 30), m(F, 30, 30)}),
		Entry("forward stops short of 29", 29, []move{m(F, 10, 10), m(F, 20, 20), m(F, 20, 20)}),
		Entry("back stops short of -29", 29, []move{m(B, -10, -10), m(B, -20, -20), m(B, -20, -20)}),
		Entry("forward with spare range", 31, []move{m(F, 10, 10), m(F, 20, 20), m(F, 30, 30), m(F, 30, 30)}),
		Entry("back with spare range", 31, []move{m(B, -10, -10), m(B, -20, -20), m(B, -30, -30), m(B, -30, -30)}),
		Entry("forward and back cross zero", 25, []move{
			m(F, 10, 10), m(F, 20, 20), m(B, 10, 10),
			m(B, 0, 0), m(B, -10, -10),
			m(F, 0, 0), m(F, 10, 10), m(F, 20, 20), m(F, 20, 20),
		}),
		Entry("spin left freezes at saturation", 25, []move{m(L, -10, 10), m(L, -20, 20), m(L, -20, 20)}),
		Entry("spin right freezes at saturation", 25, []move{m(R, 10, -10), m(R, 20, -20), m(R, 20, -20)}),
		Entry("spin reaches an exact bound", 20, []move{m(L, -10, 10), m(L, -20, 20), m(L, -20, 20)}),
		Entry("spin left then forward halts", 25, []move{m(L, -10, 10), m(L, -20, 20), m(F, 0, 0)}),
		Entry("spin left then back halts", 25, []move{m(L, -10, 10), m(L, -20, 20), m(B, 0, 0)}),
		Entry("spin right then forward halts", 25, []move{m(R, 10, -10), m(R, 20, -20), m(F, 0, 0)}),
		Entry("spin right then back halts", 25, []move{m(R, 10, -10), m(R, 20, -20), m(B, 0, 0)}),
		Entry("spin left and right unwind", 25, []move{
			m(L, -10, 10), m(R, 0, 0), m(R, 10, -10), m(R, 20, -20), m(L, 10, -10), m(L, 0, 0),
		}),
		Entry("arc left while advancing", 35, []move{m(F, 10, 10), m(L, 10, 20), m(L, 10, 30), m(L, 10, 30)}),
		Entry("arc right while advancing", 35, []move{m(F, 10, 10), m(R, 20, 10), m(R, 30, 10), m(R, 30, 10)}),
		Entry("arc left while reversing", 35, []move{m(B, -10, -10), m(L, -10, -20), m(L, -10, -30), m(L, -10, -30)}),
		Entry("arc right while reversing", 35, []move{m(B, -10, -10), m(R, -20, -10), m(R, -30, -10), m(R, -30, -10)}),
		Entry("arc left at full speed slows the inner track", 35, []move{
			m(F, 10, 10), m(F, 20, 20), m(F, 30, 30),
			m(L, 20, 30), m(L, 10, 30), m(L, 10, 30), m(L, 10, 30),
		}),
		Entry("arc right at full speed slows the inner track", 35, []move{
			m(F, 10, 10), m(F, 20, 20), m(F, 30, 30),
			m(R, 30, 20), m(R, 30, 10), m(R, 30, 10), m(R, 30, 10),
		}),
		Entry("arc left at full reverse slows the inner track", 35, []move{
			m(B, -10, -10), m(B, -20, -20), m(B, -30, -30),
			m(L, -20, -30), m(L, -10, -30), m(L, -10, -30), m(L, -10, -30),
		}),
		Entry("arc right at full reverse slows the inner track", 35, []move{
			m(B, -10, -10), m(B, -20, -20), m(B, -30, -30),
			m(R, -30, -20), m(R, -30, -10), m(R, -30, -10), m(R, -30, -10),
		}),
		Entry("stop resets an arc", 35, []move{m(F, 10, 10), m(R, 20, 10), m(S, 0, 0), m(S, 0, 0)}),
	)

	DescribeTable("straightening an arc",
		func(setup []drive.Symbol, straighten drive.Symbol, left, right int) {
			ctrl, err := drive.New(0, 35, 10)
			Expect(err).NotTo(HaveOccurred())
			for _, sym := range setup {
				_, _, err := ctrl.Apply(sym)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(ctrl.IsTurning()).To(BeTrue())

			l, r, err := ctrl.Apply(straighten)
			Expect(err).NotTo(HaveOccurred())
			Expect(l).To(Equal(left))
			Expect(r).To(Equal(right))
			Expect(ctrl.IsTurning()).To(BeFalse())
		},
		Entry("forward arc left, forward", []drive.Symbol{F, L, L}, F, 30, 30),
		Entry("forward arc left, back", []drive.Symbol{F, L, L}, B, 30, 30),
		Entry("forward arc right, forward", []drive.Symbol{F, R, R}, F, 30, 30),
		Entry("forward arc right, back", []drive.Symbol{F, R, R}, B, 30, 30),
		Entry("reverse arc left, back", []drive.Symbol{B, L, L}, B, -30, -30),
		Entry("reverse arc left, forward", []drive.Symbol{B, L, L}, F, -30, -30),
		Entry("reverse arc right, back", []drive.Symbol{B, R, R}, B, -30, -30),
		Entry("reverse arc right, forward", []drive.Symbol{B, R, R}, F, -30, -30),
	)

	Describe("predicates", func() {
		var ctrl *drive.Controller

		BeforeEach(func() {
			var err error
			ctrl, err = drive.New(0, 25, 10)
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports a stopped vehicle as not moving back", func() {
			Expect(ctrl.IsStopped()).To(BeTrue())
			Expect(ctrl.IsMovingBack()).To(BeFalse())
			Expect(ctrl.IsSpinning()).To(BeFalse())
			Expect(ctrl.Motion()).To(Equal(drive.Stopped))
		})

		It("reports a spin as turning and spinning", func() {
			ctrl.Apply(L)
			Expect(ctrl.IsSpinning()).To(BeTrue())
			Expect(ctrl.IsTurning()).To(BeTrue())
			Expect(ctrl.IsTurningLeft()).To(BeTrue())
			Expect(ctrl.Motion()).To(Equal(drive.SpinningLeft))
		})

		It("reports reverse motion", func() {
			ctrl.Apply(B)
			Expect(ctrl.IsMovingBack()).To(BeTrue())
			Expect(ctrl.IsMovingForward()).To(BeFalse())
			Expect(ctrl.IsTurning()).To(BeFalse())
			Expect(ctrl.Motion()).To(Equal(drive.Back))
		})

		It("keeps stop idempotent", func() {
			ctrl.Apply(F)
			ctrl.Apply(R)
			l1, r1, _ := ctrl.Apply(S)
			l2, r2, _ := ctrl.Apply(S)
			Expect([]int{l1, r1}).To(Equal([]int{0, 0}))
			Expect([]int{l2, r2}).To(Equal([]int{l1, r1}))
		})
	})

	Describe("construction", func() {
		It("rejects every broken rule at once", func() {
			_, err := drive.New(1, 0, 0)
			Expect(err).To(MatchError(drive.ErrConfiguration))
			Expect(err.Error()).To(ContainSubstring("min 1 > max 0"))
			Expect(err.Error()).To(ContainSubstring("step 0 must be >= 1"))
		})
	})
})
