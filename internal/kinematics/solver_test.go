package kinematics_test

import (
	"errors"
	"math"

	"github.com/golang/geo/r3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/armkin/internal/kinematics"
)

const tol = 1e-9

func expectPoint(got r3.Vector, x, y float64) {
	ExpectWithOffset(1, got.X).To(BeNumerically("~", x, tol))
	ExpectWithOffset(1, got.Y).To(BeNumerically("~", y, tol))
	ExpectWithOffset(1, got.Z).To(BeZero())
}

func rotateZ(v r3.Vector, k float64) r3.Vector {
	s, c := math.Sincos(k)
	return r3.Vector{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

var _ = Describe("Solve", func() {
	lengths := []float64{3, 2, 1.5}
	angles := []float64{math.Pi / 6, math.Pi / 4, -math.Pi / 3}

	It("returns one more point than links, starting at the origin", func() {
		for n := 1; n <= 8; n++ {
			ls := make([]float64, n)
			as := make([]float64, n)
			for i := range ls {
				ls[i] = float64(i + 1)
				as[i] = 0.3 * float64(i)
			}
			pos, err := kinematics.Solve(ls, as, kinematics.Planar)
			Expect(err).NotTo(HaveOccurred())
			Expect(pos.Len()).To(Equal(n + 1))
			Expect(pos.Points[0]).To(Equal(r3.Vector{}))
		}
	})

	It("lays a flat chain along the x axis with link-length spacing", func() {
		ls := []float64{0.5, 1.25, 2, 0}
		pos, err := kinematics.Solve(ls, make([]float64, len(ls)), kinematics.Planar)
		Expect(err).NotTo(HaveOccurred())
		for i, seg := range pos.Segments() {
			Expect(seg.Length()).To(BeNumerically("~", ls[i], tol))
			Expect(seg.End.Y).To(BeNumerically("~", 0, tol))
		}
		expectPoint(pos.Tip(), 3.75, 0)
	})

	It("rotates the whole chain rigidly when the first angle is offset", func() {
		base, err := kinematics.Solve(lengths, angles, kinematics.Planar)
		Expect(err).NotTo(HaveOccurred())

		const k = 1.1
		shifted := append([]float64(nil), angles...)
		shifted[0] += k
		rotated, err := kinematics.Solve(lengths, shifted, kinematics.Planar)
		Expect(err).NotTo(HaveOccurred())

		for i := range base.Points {
			want := rotateZ(base.Points[i], k)
			expectPoint(rotated.Points[i], want.X, want.Y)
		}
		for i, seg := range rotated.Segments() {
			Expect(seg.Length()).To(BeNumerically("~", base.Segments()[i].Length(), tol))
		}
	})

	It("doubles every coordinate when every length doubles", func() {
		base, err := kinematics.Solve(lengths, angles, kinematics.Planar)
		Expect(err).NotTo(HaveOccurred())

		doubled := make([]float64, len(lengths))
		for i, l := range lengths {
			doubled[i] = 2 * l
		}
		scaled, err := kinematics.Solve(doubled, angles, kinematics.Planar)
		Expect(err).NotTo(HaveOccurred())

		for i := range base.Points {
			want := base.Points[i].Mul(2)
			expectPoint(scaled.Points[i], want.X, want.Y)
		}
	})

	It("treats angle sums beyond a full turn as plain revolutions", func() {
		pos, err := kinematics.Solve([]float64{1, 1}, []float64{2 * math.Pi, 4 * math.Pi}, kinematics.Planar)
		Expect(err).NotTo(HaveOccurred())
		expectPoint(pos.Tip(), 2, 0)
	})

	DescribeTable("concrete chains",
		func(ls, as []float64, want [][2]float64) {
			pos, err := kinematics.Solve(ls, as, kinematics.Planar)
			Expect(err).NotTo(HaveOccurred())
			Expect(pos.Points).To(HaveLen(len(want)))
			for i, w := range want {
				expectPoint(pos.Points[i], w[0], w[1])
			}
		},
		Entry("two flat links", []float64{1, 1}, []float64{0, 0}, [][2]float64{{0, 0}, {1, 0}, {2, 0}}),
		Entry("one link straight up", []float64{1}, []float64{math.Pi / 2}, [][2]float64{{0, 0}, {0, 1}}),
		Entry("up then right", []float64{1, 1}, []float64{math.Pi / 2, -math.Pi / 2}, [][2]float64{{0, 0}, {0, 1}, {1, 1}}),
	)

	Describe("dimensions", func() {
		It("produces the same planar points in both modes", func() {
			planar, err := kinematics.Solve2D(lengths, angles)
			Expect(err).NotTo(HaveOccurred())
			spatial, err := kinematics.Solve3D(lengths, angles)
			Expect(err).NotTo(HaveOccurred())

			Expect(spatial).To(HaveLen(len(planar)))
			for i := range planar {
				Expect(spatial[i].X).To(Equal(planar[i].X))
				Expect(spatial[i].Y).To(Equal(planar[i].Y))
				Expect(spatial[i].Z).To(BeZero())
			}
		})

		It("sizes coordinates by dimension", func() {
			pos, err := kinematics.Solve(lengths, angles, kinematics.Spatial)
			Expect(err).NotTo(HaveOccurred())
			for _, c := range pos.Coords() {
				Expect(c).To(HaveLen(3))
			}
			pos.Dim = kinematics.Planar
			for _, c := range pos.Coords() {
				Expect(c).To(HaveLen(2))
			}
		})

		It("rejects other dimensions", func() {
			_, err := kinematics.Solve(lengths, angles, kinematics.Dimension(4))
			Expect(err).To(MatchError(kinematics.ErrUnknownDimension))
		})

		It("parses dimension names", func() {
			d, err := kinematics.ParseDimension("3D")
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(kinematics.Spatial))

			_, err = kinematics.ParseDimension("4d")
			Expect(errors.Is(err, kinematics.ErrUnknownDimension)).To(BeTrue())
		})
	})

	Describe("invalid chains", func() {
		It("fails on mismatched shapes instead of truncating", func() {
			pos, err := kinematics.Solve([]float64{1, 2}, []float64{0.1}, kinematics.Planar)
			Expect(errors.Is(err, kinematics.ErrShapeMismatch)).To(BeTrue())

			var shape *kinematics.ShapeError
			Expect(errors.As(err, &shape)).To(BeTrue())
			Expect(shape.Lengths).To(Equal(2))
			Expect(shape.Angles).To(Equal(1))
			Expect(pos.Points).To(BeEmpty())
		})

		It("fails on empty input", func() {
			_, err := kinematics.Solve(nil, nil, kinematics.Planar)
			Expect(err).To(MatchError(kinematics.ErrEmptyChain))

			_, err = kinematics.Solve([]float64{1}, []float64{}, kinematics.Spatial)
			Expect(err).To(MatchError(kinematics.ErrEmptyChain))
		})
	})
})

var _ = Describe("Headings", func() {
	It("accumulates relative angles", func() {
		h := kinematics.Headings([]float64{0.5, 0.25, -1})
		Expect(h).To(HaveLen(3))
		Expect(h[0]).To(BeNumerically("~", 0.5, tol))
		Expect(h[1]).To(BeNumerically("~", 0.75, tol))
		Expect(h[2]).To(BeNumerically("~", -0.25, tol))
	})
})
