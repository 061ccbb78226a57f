package driver_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodylab/internal/driver"
	"github.com/san-kum/nbodylab/internal/gravity"
	"github.com/san-kum/nbodylab/internal/nbody"
)

func TestDriverSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Driver Suite")
}

var _ = Describe("Driver", func() {
	var cfg driver.Config

	BeforeEach(func() {
		cfg = driver.DefaultConfig()
	})

	Describe("a binary orbit run", func() {
		It("reports energies at the configured cadence and bounds drift", func() {
			cfg.TEnd = 0.1

			d, err := driver.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			result, err := d.Run(context.Background(), nbody.Binary())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Steps).To(Equal(100))
			Expect(result.Reports).To(HaveLen(11))
			Expect(result.Reports[0].Drift).To(BeZero())
			Expect(result.MaxDrift).To(BeNumerically("<", 1e-3))

			for i, rep := range result.Reports {
				Expect(rep.Step).To(Equal(i * 10))
			}
		})

		It("produces identical diagnostics for identical initial states", func() {
			cfg.TEnd = 0.05

			run := func() []driver.Diagnostic {
				d, err := driver.New(cfg)
				Expect(err).NotTo(HaveOccurred())
				result, err := d.Run(context.Background(), nbody.Binary())
				Expect(err).NotTo(HaveOccurred())
				return result.Reports
			}

			Expect(run()).To(Equal(run()))
		})

		It("agrees with the block partition within float tolerance", func() {
			cfg.TEnd = 0.05

			run := func(policy gravity.Policy) []driver.Diagnostic {
				c := cfg
				c.Partition = policy
				d, err := driver.New(c)
				Expect(err).NotTo(HaveOccurred())
				result, err := d.Run(context.Background(), nbody.Ring(12))
				Expect(err).NotTo(HaveOccurred())
				return result.Reports
			}

			balanced := run(gravity.PartitionBalanced)
			block := run(gravity.PartitionBlock)
			Expect(balanced).To(HaveLen(len(block)))
			for i := range balanced {
				Expect(balanced[i].Step).To(Equal(block[i].Step))
				Expect(balanced[i].Total).To(BeNumerically("~", block[i].Total, 1e-9))
			}
		})
	})

	Describe("cancellation", func() {
		It("stops between steps and returns the partial result", func() {
			cfg.TEnd = 1000

			d, err := driver.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := d.Run(ctx, nbody.Binary())
			Expect(err).To(MatchError(context.Canceled))
			Expect(result).NotTo(BeNil())
			Expect(result.Reports).NotTo(BeEmpty())
		})
	})
})
