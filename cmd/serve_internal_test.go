package cmd

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"farmhub-client/internal/poller"
	"farmhub-client/internal/state"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Serve mux", func() {
	var ts *httptest.Server

	BeforeEach(func() {
		ts = httptest.NewServer(newServeMux(slog.New(slog.NewTextHandler(io.Discard, nil))))
		DeferCleanup(ts.Close)
		DeferCleanup(state.Reset)
	})

	get := func(path string) (int, string) {
		resp, err := http.Get(ts.URL + path)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return resp.StatusCode, string(body)
	}

	It("reports down before the first poll", func() {
		state.Reset()

		code, body := get("/metrics")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring("farmhub_up 0"))
		Expect(body).NotTo(ContainSubstring("farmhub_sensor_value"))
	})

	It("exposes the latest values as metrics", func() {
		state.Update(poller.Summary{
			TargetsChecked: 1,
			Connected:      true,
			Values: []poller.SensorValue{{
				DeviceID: 1234, SensorID: 2213, Name: "Rain", Units: "mm",
				Value: 4.5, At: time.Unix(1453104000, 0),
			}},
			StartTime: time.Unix(1453104100, 0),
			Duration:  2 * time.Second,
		})

		code, body := get("/metrics")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring("farmhub_up 1"))
		Expect(body).To(MatchRegexp(`farmhub_sensor_value\{device_id="1234",name="Rain",sensor_id="2213",units="mm"\} 4\.5`))
	})

	It("serves the status document", func() {
		state.Update(poller.Summary{TargetsChecked: 3, StartTime: time.Unix(1000, 0)})

		code, body := get("/status")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"targets_checked":3`))
	})
})
