package calibration_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"farmhub-client/internal/calibration"
)

var _ = Describe("Calibration", func() {

	Describe("Default table", func() {
		var table calibration.Table

		BeforeEach(func() {
			table = calibration.Default()
		})

		It("should convert rain gauge clicks to millimeters", func() {
			v, err := table.Apply(calibration.RainGauge, 100)
			Expect(err).To(BeNil())
			Expect(v).To(BeNumerically("~", 40.0, 1e-9))
		})

		It("should apply the soil moisture equation", func() {
			v, err := table.Apply(calibration.SoilMoistureGS1, 1000)
			Expect(err).To(BeNil())
			Expect(v).To(BeNumerically("~", -0.06, 1e-9))
		})

		It("should pass unknown sensors through unchanged", func() {
			v, err := table.Apply(9999, 7)
			Expect(err).To(BeNil())
			Expect(v).To(Equal(7.0))
		})

		It("should give the same result for repeated calls", func() {
			first, err := table.Apply(calibration.SoilMoistureGS1, 812)
			Expect(err).To(BeNil())
			second, err := calibration.Default().Apply(calibration.SoilMoistureGS1, 812)
			Expect(err).To(BeNil())
			Expect(second).To(Equal(first))
		})

		It("should reject non-finite input", func() {
			_, err := table.Apply(calibration.RainGauge, math.NaN())
			Expect(err).To(MatchError(calibration.ErrNonFinite))

			_, err = table.Apply(9999, math.Inf(1))
			Expect(err).To(MatchError(calibration.ErrNonFinite))
		})

		It("should reject a non-finite result", func() {
			huge := calibration.Table{1: {Gain: math.MaxFloat64}}
			_, err := huge.Apply(1, math.MaxFloat64)
			Expect(err).To(MatchError(calibration.ErrNonFinite))
		})
	})

	Describe("Parse", func() {
		It("should parse a calibration string", func() {
			table, err := calibration.Parse("2221=0.000494:-0.554,2213=0.4:0")
			Expect(err).To(BeNil())
			Expect(table).To(HaveLen(2))
			Expect(table[2221]).To(Equal(calibration.Linear{Gain: 0.000494, Offset: -0.554}))
			Expect(table[2213]).To(Equal(calibration.Linear{Gain: 0.4}))
		})

		It("should accept exponent notation", func() {
			table, err := calibration.Parse("2221=4.94e-4:-0.554")
			Expect(err).To(BeNil())
			Expect(table[2221].Gain).To(Equal(4.94e-4))
		})

		It("should return error for a string without entries", func() {
			table, err := calibration.Parse("invalid")
			Expect(err).To(HaveOccurred())
			Expect(table).To(BeNil())
		})

		It("should reject an entry missing its offset", func() {
			table, err := calibration.Parse("2221=0.000494:-0.554,2213=0.4")
			Expect(err).To(MatchError(ContainSubstring(`"2213=0.4"`)))
			Expect(table).To(BeNil())
		})

		It("should reject trailing garbage in an entry", func() {
			_, err := calibration.Parse("2213=0.4:0x")
			Expect(err).To(HaveOccurred())
		})

		It("should ignore surrounding whitespace and empty entries", func() {
			table, err := calibration.Parse(" 2213=0.4:0 ,,")
			Expect(err).To(BeNil())
			Expect(table).To(HaveKeyWithValue(2213, calibration.Linear{Gain: 0.4}))
		})

		It("should round-trip through String", func() {
			table, err := calibration.Parse(calibration.Default().String())
			Expect(err).To(BeNil())
			Expect(table).To(Equal(calibration.Default()))
		})
	})
})
