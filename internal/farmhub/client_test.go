package farmhub_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"farmhub-client/internal/farmhub"
)

const sessionCookie = "_farmhub_session"

// fakeService mimics the remote endpoints the client consumes.
type fakeService struct {
	logins       atomic.Int32
	deviceCalls  atomic.Int32
	sensorCalls  atomic.Int32
	dataCalls    atomic.Int32
	devicesBody  string
	devicesCode  int
	sensorBodies map[string]string
	dataBodies   []string
	dataCodes    []int
	omitCookie   bool
	lastFrom     string
	lastTo       string
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/session", func(w http.ResponseWriter, r *http.Request) {
		f.logins.Add(1)
		if r.FormValue("email") != "farmer@example.com" || r.FormValue("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !f.omitCookie {
			http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "token-1", Path: "/"})
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /v1/devices", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.deviceCalls.Add(1)
		if r.URL.Query().Get("include_organization") != "true" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if f.devicesCode != 0 {
			w.WriteHeader(f.devicesCode)
		}
		_, _ = io.WriteString(w, f.devicesBody)
	}))
	mux.HandleFunc("GET /v1/devices/{device}/sensors", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.sensorCalls.Add(1)
		body, ok := f.sensorBodies[r.PathValue("device")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	mux.HandleFunc("GET /v1/devices/{device}/sensors/{sensor}/data", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		n := int(f.dataCalls.Add(1)) - 1
		f.lastFrom = r.URL.Query().Get("from")
		f.lastTo = r.URL.Query().Get("to")
		if n < len(f.dataCodes) && f.dataCodes[n] != 0 {
			w.WriteHeader(f.dataCodes[n])
		}
		if n < len(f.dataBodies) {
			_, _ = io.WriteString(w, f.dataBodies[n])
		}
	}))
	return mux
}

func (f *fakeService) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil || c.Value != "token-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

var _ = Describe("SessionClient", func() {
	var (
		ctx     context.Context
		service *fakeService
		server  *httptest.Server
		cfg     farmhub.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		service = &fakeService{
			devicesBody: `[
				{"id": 101, "name": "North field", "lat": 46.87, "lng": -113.99, "inserted_at": "2015-06-01T12:00:00", "organization": {"id": 1}},
				{"id": 102, "name": "South field", "lat": 46.80, "lng": -114.01, "inserted_at": "2015-07-01T08:30:00"}
			]`,
			sensorBodies: map[string]string{
				"101": `[
					{"id": 2213, "sensor_definition": {"name": "Rain", "units": "mm"}},
					{"id": 2221, "sensor_definition": {"name": "Soil moisture", "units": "m3/m3"}}
				]`,
				"102": `[]`,
			},
		}
		server = httptest.NewServer(service.handler())
		DeferCleanup(server.Close)

		loc, err := farmhub.LoadLocation("America/Los_Angeles")
		Expect(err).To(BeNil())
		cfg = farmhub.Config{
			BaseURL:  server.URL,
			Email:    "farmer@example.com",
			Password: "secret",
			Location: loc,
			Logger:   slog.New(slog.NewTextHandler(GinkgoWriter, nil)),
		}
	})

	Describe("Connect", func() {
		It("should capture the session cookie", func() {
			client, err := farmhub.Login(ctx, cfg)
			Expect(err).To(BeNil())
			Expect(client.Session()).To(HaveLen(1))
			Expect(client.Session()[0].Name).To(Equal(sessionCookie))
		})

		It("should return an AuthError for rejected credentials", func() {
			cfg.Password = "wrong"
			client, err := farmhub.Login(ctx, cfg)
			Expect(client).To(BeNil())

			var authErr *farmhub.AuthError
			Expect(errors.As(err, &authErr)).To(BeTrue())
			Expect(authErr.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(err).To(MatchError(farmhub.ErrLoginRejected))
		})

		It("should return an AuthError when no session cookie is set", func() {
			service.omitCookie = true
			_, err := farmhub.Login(ctx, cfg)
			Expect(err).To(MatchError(farmhub.ErrNoSession))
		})

		It("should return an AuthError when the service is unreachable", func() {
			cfg.BaseURL = "http://127.0.0.1:1"
			_, err := farmhub.Login(ctx, cfg)
			var authErr *farmhub.AuthError
			Expect(errors.As(err, &authErr)).To(BeTrue())
		})

		It("should refuse queries before connecting", func() {
			client := farmhub.New(cfg)
			_, err := client.ListDevices(ctx)
			Expect(err).To(MatchError(farmhub.ErrNotConnected))
			Expect(service.deviceCalls.Load()).To(BeZero())
		})
	})

	Describe("ListDevices", func() {
		var client farmhub.Client

		BeforeEach(func() {
			var err error
			client, err = farmhub.Login(ctx, cfg)
			Expect(err).To(BeNil())
		})

		It("should key devices by id", func() {
			devices, err := client.ListDevices(ctx)
			Expect(err).To(BeNil())
			Expect(devices).To(HaveLen(2))
			Expect(devices).To(HaveKey(101))
			Expect(devices).To(HaveKey(102))

			north := devices[101]
			Expect(north.Name).To(Equal("North field"))
			Expect(north.Lat).To(Equal(46.87))
			Expect(north.Lng).To(Equal(-113.99))
			Expect(north.InsertedAt.Time).To(Equal(time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)))
		})

		It("should keep the last record when ids repeat", func() {
			service.devicesBody = `[{"id": 7, "name": "first"}, {"id": 7, "name": "second"}]`
			devices, err := client.ListDevices(ctx)
			Expect(err).To(BeNil())
			Expect(devices).To(HaveLen(1))
			Expect(devices[7].Name).To(Equal("second"))
		})

		It("should return a RemoteError on a failed status", func() {
			service.devicesCode = http.StatusInternalServerError
			service.devicesBody = "boom"
			_, err := client.ListDevices(ctx)

			var remoteErr *farmhub.RemoteError
			Expect(errors.As(err, &remoteErr)).To(BeTrue())
			Expect(remoteErr.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(remoteErr.Body).To(Equal("boom"))
		})

		It("should truncate a long error body on a character boundary", func() {
			service.devicesCode = http.StatusBadGateway
			service.devicesBody = "a" + strings.Repeat("é", 200)
			_, err := client.ListDevices(ctx)

			var remoteErr *farmhub.RemoteError
			Expect(errors.As(err, &remoteErr)).To(BeTrue())
			Expect(utf8.ValidString(remoteErr.Body)).To(BeTrue())
			Expect(remoteErr.Body).To(HaveSuffix("..."))
			Expect(len(remoteErr.Body)).To(Equal(255 + len("...")))
		})

		It("should return a ParseError on a malformed body", func() {
			service.devicesBody = `{"error": "not a list"}`
			_, err := client.ListDevices(ctx)

			var parseErr *farmhub.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
		})
	})

	Describe("ListSensors", func() {
		var client farmhub.Client

		BeforeEach(func() {
			var err error
			client, err = farmhub.Login(ctx, cfg)
			Expect(err).To(BeNil())
		})

		It("should list sensors for every device using the existing session", func() {
			sensors, err := client.ListSensors(ctx)
			Expect(err).To(BeNil())

			devices, err := client.ListDevices(ctx)
			Expect(err).To(BeNil())
			Expect(sensors).To(HaveLen(len(devices)))
			for id := range devices {
				Expect(sensors).To(HaveKey(id))
			}

			Expect(sensors[101]).To(HaveLen(2))
			Expect(sensors[101][2213]).To(Equal(farmhub.Sensor{ID: 2213, DeviceID: 101, Name: "Rain", Units: "mm"}))
			Expect(sensors[101][2221].Units).To(Equal("m3/m3"))
			Expect(sensors[102]).NotTo(BeNil())
			Expect(sensors[102]).To(BeEmpty())

			Expect(service.logins.Load()).To(Equal(int32(1)))
			Expect(service.sensorCalls.Load()).To(Equal(int32(2)))
		})

		It("should return a RemoteError when a device's sensors cannot be fetched", func() {
			delete(service.sensorBodies, "102")
			_, err := client.ListSensors(ctx)

			var remoteErr *farmhub.RemoteError
			Expect(errors.As(err, &remoteErr)).To(BeTrue())
			Expect(remoteErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GetData", func() {
		var (
			client farmhub.Client
			start  time.Time
			stop   time.Time
		)

		BeforeEach(func() {
			var err error
			client, err = farmhub.Login(ctx, cfg)
			Expect(err).To(BeNil())
			start = time.Date(2016, 1, 18, 0, 0, 0, 0, time.UTC)
			stop = time.Date(2016, 1, 19, 0, 0, 0, 0, time.UTC)
		})

		It("should query with epoch bounds in the configured zone", func() {
			service.dataBodies = []string{`[]`}
			_, err := client.GetData(ctx, 101, 9999, start, stop)
			Expect(err).To(BeNil())
			Expect(service.lastFrom).To(Equal("1453104000"))
			Expect(service.lastTo).To(Equal("1453190400"))
		})

		It("should default to Pacific time when no zone is configured", func() {
			cfg.Location = nil
			client, err := farmhub.Login(ctx, cfg)
			Expect(err).To(BeNil())

			service.dataBodies = []string{`[]`}
			_, err = client.GetData(ctx, 101, 9999, start, stop)
			Expect(err).To(BeNil())
			Expect(service.lastFrom).To(Equal("1453104000"))
			Expect(service.lastTo).To(Equal("1453190400"))
		})

		It("should calibrate rain gauge readings", func() {
			service.dataBodies = []string{`[{"created_at": "2016-01-18T10:00:00", "value": 100}, {"created_at": "2016-01-18T11:00:00", "value": 5}]`}
			readings, err := client.GetData(ctx, 101, 2213, start, stop)
			Expect(err).To(BeNil())
			Expect(readings).To(HaveLen(2))
			Expect(readings[0].Value).To(BeNumerically("~", 40.0, 1e-9))
			Expect(readings[1].Value).To(BeNumerically("~", 2.0, 1e-9))
			Expect(readings[0].CreatedAt.Before(readings[1].CreatedAt.Time)).To(BeTrue())
		})

		It("should calibrate soil moisture readings", func() {
			service.dataBodies = []string{`[{"created_at": "2016-01-18T10:00:00Z", "value": 1000}]`}
			readings, err := client.GetData(ctx, 101, 2221, start, stop)
			Expect(err).To(BeNil())
			Expect(readings[0].Value).To(BeNumerically("~", -0.06, 1e-9))
		})

		It("should pass other sensors through unchanged", func() {
			service.dataBodies = []string{`[{"created_at": 1453111200, "value": 7}]`}
			readings, err := client.GetData(ctx, 101, 9999, start, stop)
			Expect(err).To(BeNil())
			Expect(readings[0].Value).To(Equal(7.0))
			Expect(readings[0].CreatedAt.Unix()).To(Equal(int64(1453111200)))
		})

		It("should retry once after a failed status", func() {
			service.dataCodes = []int{http.StatusBadGateway, 0}
			service.dataBodies = []string{"upstream hiccup", `[{"created_at": "2016-01-18T10:00:00", "value": 42}]`}
			readings, err := client.GetData(ctx, 101, 9999, start, stop)
			Expect(err).To(BeNil())
			Expect(readings).To(HaveLen(1))
			Expect(readings[0].Value).To(Equal(42.0))
			Expect(service.dataCalls.Load()).To(Equal(int32(2)))
		})

		It("should give up after the second failed status", func() {
			service.dataCodes = []int{http.StatusBadGateway, http.StatusServiceUnavailable, 0}
			service.dataBodies = []string{"", "", `[]`}
			_, err := client.GetData(ctx, 101, 9999, start, stop)

			var remoteErr *farmhub.RemoteError
			Expect(errors.As(err, &remoteErr)).To(BeTrue())
			Expect(remoteErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
			Expect(service.dataCalls.Load()).To(Equal(int32(2)))
		})

		It("should return a ParseError for a malformed body", func() {
			service.dataBodies = []string{`[{"created_at": "yesterday", "value": 1}]`}
			_, err := client.GetData(ctx, 101, 9999, start, stop)
			var parseErr *farmhub.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
		})

		It("should reject an inverted range without calling the service", func() {
			_, err := client.GetData(ctx, 101, 9999, stop, start)
			Expect(err).To(MatchError(farmhub.ErrInvertedRange))
			Expect(service.dataCalls.Load()).To(BeZero())
		})

		It("should reject bounds before the epoch", func() {
			_, err := client.GetData(ctx, 101, 9999, time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC), stop)
			var convErr *farmhub.ConversionError
			Expect(errors.As(err, &convErr)).To(BeTrue())
			Expect(err).To(MatchError(farmhub.ErrBeforeEpoch))
		})

		It("should give the same values for repeated requests", func() {
			body := `[{"created_at": "2016-01-18T10:00:00", "value": 812}]`
			service.dataBodies = []string{body, body}
			first, err := client.GetData(ctx, 101, 2221, start, stop)
			Expect(err).To(BeNil())
			second, err := client.GetData(ctx, 101, 2221, start, stop)
			Expect(err).To(BeNil())
			Expect(second[0].Value).To(Equal(first[0].Value))
		})
	})

	Describe("Errors", func() {
		It("should describe remote failures", func() {
			err := &farmhub.RemoteError{Method: "GET", URL: "http://x/v1/devices", StatusCode: 500}
			Expect(err.Error()).To(Equal(fmt.Sprintf("GET http://x/v1/devices: HTTP %d", 500)))
		})
	})
})

var _ = Describe("IsUnauthorized", func() {
	It("should recognise rejected sessions", func() {
		Expect(farmhub.IsUnauthorized(&farmhub.AuthError{Err: farmhub.ErrNotConnected})).To(BeTrue())
		Expect(farmhub.IsUnauthorized(fmt.Errorf("wrapped: %w", &farmhub.RemoteError{StatusCode: http.StatusForbidden}))).To(BeTrue())
		Expect(farmhub.IsUnauthorized(&farmhub.RemoteError{StatusCode: http.StatusBadGateway})).To(BeFalse())
		Expect(farmhub.IsUnauthorized(errors.New("timeout"))).To(BeFalse())
	})
})
