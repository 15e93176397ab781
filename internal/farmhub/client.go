// Package farmhub is a client for the FarmHub sensor web service. A client logs in once
// and reuses the session cookie for every device, sensor and data query.
package farmhub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"farmhub-client/internal/calibration"

	"github.com/go-resty/resty/v2"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o farmhubfakes/fake_client.go . Client

type Client interface {
	Connect(ctx context.Context) error
	Session() []*http.Cookie
	ListDevices(ctx context.Context) (map[int]Device, error)
	ListSensors(ctx context.Context) (map[int]map[int]Sensor, error)
	GetData(ctx context.Context, deviceID, sensorID int, start, stop time.Time) ([]Reading, error)
}

const (
	DefaultBaseURL = "http://api.farmhub.net"
	DefaultTimeout = 30 * time.Second

	sessionPath = "/v1/session"
	devicesPath = "/v1/devices"
	sensorsPath = "/v1/devices/{device_id}/sensors"
	dataPath    = "/v1/devices/{device_id}/sensors/{sensor_id}/data"
)

type Config struct {
	BaseURL  string
	Email    string
	Password string
	// Location is the zone GetData reads its naive start and stop times in.
	Location    *time.Location
	Calibration calibration.Table
	Timeout     time.Duration
	Logger      *slog.Logger
}

type sessionClient struct {
	http        *resty.Client
	email       string
	password    string
	location    *time.Location
	calibration calibration.Table
	logger      *slog.Logger
	session     []*http.Cookie
}

// New builds an unauthenticated client. Call Connect before querying.
func New(cfg Config) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Location == nil {
		// time/tzdata is embedded, so the default zone always resolves.
		cfg.Location, _ = LoadLocation(DefaultTimezone)
	}
	if cfg.Calibration == nil {
		cfg.Calibration = calibration.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	// The session is attached explicitly on each request.
	h.SetCookieJar(nil)

	return &sessionClient{
		http:        h,
		email:       cfg.Email,
		password:    cfg.Password,
		location:    cfg.Location,
		calibration: cfg.Calibration,
		logger:      cfg.Logger,
	}
}

// Login builds a client and authenticates it.
func Login(ctx context.Context, cfg Config) (Client, error) {
	c := New(cfg)
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *sessionClient) Connect(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"email":    c.email,
			"password": c.password,
		}).
		Post(sessionPath)
	if err != nil {
		return &AuthError{Err: err}
	}
	if !resp.IsSuccess() {
		return &AuthError{StatusCode: resp.StatusCode(), Err: ErrLoginRejected}
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return &AuthError{StatusCode: resp.StatusCode(), Err: ErrNoSession}
	}
	c.session = cookies
	c.logger.Debug("farmhub session established", "email", c.email, "cookies", len(cookies))
	return nil
}

func (c *sessionClient) Session() []*http.Cookie {
	return c.session
}

func (c *sessionClient) ListDevices(ctx context.Context) (map[int]Device, error) {
	resp, err := c.get(ctx, devicesPath, nil, map[string]string{"include_organization": "true"})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, newRemoteError(resp)
	}

	var records []Device
	if err := decode(resp, &records); err != nil {
		return nil, err
	}
	devices := make(map[int]Device, len(records))
	for _, d := range records {
		devices[d.ID] = d
	}
	return devices, nil
}

func (c *sessionClient) ListSensors(ctx context.Context) (map[int]map[int]Sensor, error) {
	devices, err := c.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	sensors := make(map[int]map[int]Sensor, len(devices))
	for id := range devices {
		resp, err := c.get(ctx, sensorsPath, map[string]string{"device_id": strconv.Itoa(id)}, nil)
		if err != nil {
			return nil, err
		}
		if !resp.IsSuccess() {
			return nil, newRemoteError(resp)
		}

		var records []sensorRecord
		if err := decode(resp, &records); err != nil {
			return nil, err
		}
		devSensors := make(map[int]Sensor, len(records))
		for _, s := range records {
			devSensors[s.ID] = Sensor{
				ID:       s.ID,
				DeviceID: id,
				Name:     s.SensorDefinition.Name,
				Units:    s.SensorDefinition.Units,
			}
		}
		sensors[id] = devSensors
	}
	return sensors, nil
}

func (c *sessionClient) GetData(ctx context.Context, deviceID, sensorID int, start, stop time.Time) ([]Reading, error) {
	from, err := Epoch(start, c.location)
	if err != nil {
		return nil, err
	}
	to, err := Epoch(stop, c.location)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, &ConversionError{
			Input: start.Format(time.DateTime) + " .. " + stop.Format(time.DateTime),
			Err:   ErrInvertedRange,
		}
	}

	pathParams := map[string]string{
		"device_id": strconv.Itoa(deviceID),
		"sensor_id": strconv.Itoa(sensorID),
	}
	query := map[string]string{
		"from": strconv.FormatInt(from, 10),
		"to":   strconv.FormatInt(to, 10),
	}
	resp, err := c.get(ctx, dataPath, pathParams, query)
	if err != nil {
		return nil, err
	}
	// One immediate retry covers the service's occasional hiccups.
	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("retrying data request", "device_id", deviceID, "sensor_id", sensorID, "status", resp.StatusCode())
		resp, err = c.get(ctx, dataPath, pathParams, query)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, newRemoteError(resp)
		}
	}

	var readings []Reading
	if err := decode(resp, &readings); err != nil {
		return nil, err
	}
	for i := range readings {
		v, err := c.calibration.Apply(sensorID, readings[i].Value)
		if err != nil {
			return nil, &ConversionError{Input: "reading at " + readings[i].CreatedAt.Format(time.RFC3339), Err: err}
		}
		readings[i].Value = v
	}
	return readings, nil
}

func (c *sessionClient) get(ctx context.Context, path string, pathParams, query map[string]string) (*resty.Response, error) {
	if len(c.session) == 0 {
		return nil, &AuthError{Err: ErrNotConnected}
	}
	req := c.http.R().
		SetContext(ctx).
		SetCookies(c.session)
	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if query != nil {
		req.SetQueryParams(query)
	}

	start := time.Now()
	resp, err := req.Get(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("farmhub request", "url", resp.Request.URL, "status", resp.StatusCode(), "duration", time.Since(start))
	return resp, nil
}

func decode(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return &ParseError{URL: resp.Request.URL, Err: err}
	}
	return nil
}
