package e2e

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("bvmc check", func() {
	DescribeTable("reports the first bound at which each property is reached",
		func(file string, args []string, lines ...string) {
			r := bvmc(append(append([]string{"check"}, args...), file)...)
			Expect(r.err).NotTo(HaveOccurred(), r.stderr)
			for _, l := range lines {
				Expect(r.out).To(ContainSubstring(l + "\n"))
			}
		},
		Entry("toggle", scenario("toggle.btor"), nil,
			"  on: reached at bound 1"),
		Entry("count2enable", scenario("count2enable.btor"), nil,
			"  max: reached at bound 3"),
		Entry("count2resetenable", scenario("count2resetenable.btor"), nil,
			"  max: reached at bound 3"),
		Entry("count2multi", scenario("count2multi.btor"), []string{"--stop-at-first=false"},
			"  b0: reached at bound 0",
			"  b1: reached at bound 1",
			"  b2: reached at bound 2",
			"  b3: reached at bound 3"),
		Entry("accumulator", model("fifo.btor"), []string{"--stop-at-first=false"},
			"  exact: reached at bound 14",
			"  overflowed: reached at bound 18"),
		Entry("swap", model("swap.btor"), []string{"--stop-at-first=false", "--kmax", "8"},
			"  equal: not reached in [0, 8]",
			"  swapped: reached at bound 1"),
	)

	It("checks several models concurrently and reports them in order", func() {
		files := []string{
			scenario("toggle.btor"),
			model("swap.btor"),
			scenario("count2enable.btor"),
			scenario("safe.btor"),
		}
		r := bvmc(append([]string{"check", "--parallelism", "4", "--kmax", "6"}, files...)...)
		Expect(r.err).NotTo(HaveOccurred())

		var headers []string
		for _, l := range strings.Split(r.out, "\n") {
			if l != "" && !strings.HasPrefix(l, " ") {
				headers = append(headers, l)
			}
		}
		Expect(headers).To(Equal(files))
	})

	It("prints a witness that replays to the bad state", func() {
		r := bvmc("check", "--witness", "--model", "--output-base", "hex", model("swap.btor"))
		Expect(r.err).NotTo(HaveOccurred())
		Expect(r.out).To(ContainSubstring("sat\nb1\n#0\n0 000101 x@0\n1 111010 y@0\n@0\n@1\n.\n"))
		Expect(r.out).To(ContainSubstring("  x@1 = 3a\n"))
	})

	It("writes an AIGER circuit of the model", func() {
		out := filepath.Join(GinkgoT().TempDir(), "swap.aag")
		r := bvmc("check", "--aiger", out, model("swap.btor"))
		Expect(r.err).NotTo(HaveOccurred())

		data, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		header := strings.Fields(strings.SplitN(string(data), "\n", 2)[0])
		Expect(header).To(HaveLen(10))
		// No inputs, twelve latches, two bad states.
		Expect(header[2]).To(Equal("0"))
		Expect(header[3]).To(Equal("12"))
		Expect(header[6]).To(Equal("2"))
	})

	Context("with a config file", func() {
		var config string

		BeforeEach(func() {
			config = filepath.Join(GinkgoT().TempDir(), "bvmc.yaml")
			Expect(os.WriteFile(config, []byte("kmax: 10\nstopAtFirst: false\n"), 0o644)).To(Succeed())
		})

		It("uses the file settings", func() {
			r := bvmc("check", "--config", config, model("fifo.btor"))
			Expect(r.err).NotTo(HaveOccurred())
			Expect(r.out).To(ContainSubstring("  exact: not reached in [0, 10]\n"))
		})

		It("lets flags win", func() {
			r := bvmc("check", "--config", config, "--kmax", "15", model("fifo.btor"))
			Expect(r.err).NotTo(HaveOccurred())
			Expect(r.out).To(ContainSubstring("  exact: reached at bound 14\n"))
			Expect(r.out).To(ContainSubstring("  overflowed: not reached in [0, 15]\n"))
		})

		It("rejects unknown keys", func() {
			Expect(os.WriteFile(config, []byte("engine: ic3\n"), 0o644)).To(Succeed())
			r := bvmc("check", "--config", config, model("fifo.btor"))
			Expect(r.err).To(MatchError(ContainSubstring("decode config")))
		})
	})

	DescribeTable("fails on unusable input",
		func(file, message string) {
			r := bvmc("check", model(file))
			Expect(r.err).To(MatchError(ContainSubstring(message)))
		},
		Entry("undefined node", "broken.btor", "line 3: node 9 is not defined"),
		Entry("smt-lib input", "smtlib", "unsupported input format"),
		Entry("missing file", "missing.btor", "no such file"),
	)
})

var _ = Describe("bvmc version", func() {
	It("prints the build version", func() {
		r := bvmc("version")
		Expect(r.err).NotTo(HaveOccurred())
		Expect(r.out).To(HavePrefix("bvmc version: "))
	})
})
