package kinematics_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/armkin/internal/kinematics"
)

var _ = Describe("SolveBatch", func() {
	lengths := []float64{1, 0.5}

	sets := func(n int) [][]float64 {
		out := make([][]float64, n)
		for i := range out {
			out[i] = []float64{float64(i) * 2 * math.Pi / float64(n), 0.2}
		}
		return out
	}

	It("matches Solve for every set, in order", func() {
		in := sets(500)
		got, err := kinematics.SolveBatch(context.Background(), lengths, in, kinematics.Spatial)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(len(in)))

		for i, angles := range in {
			want, err := kinematics.Solve(lengths, angles, kinematics.Spatial)
			Expect(err).NotTo(HaveOccurred())
			Expect(got[i]).To(Equal(want))
		}
	})

	It("names the offending set and returns nothing", func() {
		in := sets(10)
		in[7] = []float64{0.1}
		got, err := kinematics.SolveBatch(context.Background(), lengths, in, kinematics.Planar)
		Expect(got).To(BeNil())
		Expect(errors.Is(err, kinematics.ErrShapeMismatch)).To(BeTrue())

		var batch *kinematics.BatchError
		Expect(errors.As(err, &batch)).To(BeTrue())
		Expect(batch.Index).To(Equal(7))
	})

	It("rejects an empty chain", func() {
		_, err := kinematics.SolveBatch(context.Background(), nil, sets(3), kinematics.Planar)
		Expect(err).To(MatchError(kinematics.ErrEmptyChain))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := kinematics.SolveBatch(ctx, lengths, sets(200), kinematics.Planar)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("ParallelFor", func() {
	It("visits every index exactly once", func() {
		const n = 1000
		var hits [n]int32
		kinematics.ParallelFor(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i := range hits {
			Expect(hits[i]).To(Equal(int32(1)))
		}
	})

	It("ignores empty ranges", func() {
		called := false
		kinematics.ParallelFor(0, 1, func(int, int) { called = true })
		Expect(called).To(BeFalse())
	})
})
