// Package sysfs reads compass and accelerometer samples from Linux
// Industrial I/O devices under /sys/bus/iio/devices.
package sysfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// Ensure Sensors implements the interfaces.
var (
	_ driven.HeadingSource = (*Sensors)(nil)
	_ driven.MotionSource  = (*Sensors)(nil)
)

// Channel attribute names, tried in order.
var (
	headingChannels = []string{
		"in_rot_from_north_magnetic_tilt_comp",
		"in_rot_from_north_true_tilt_comp",
		"in_rot_from_north_magnetic",
		"in_rot_from_north_true",
	}
	accelAxes = []string{"in_accel_x", "in_accel_y", "in_accel_z"}
)

// Sensors polls IIO attributes at a fixed pace.
type Sensors struct {
	root     string
	interval time.Duration
	now      func() time.Time
}

// New creates a poller over root, reading once per interval.
func New(root string, interval time.Duration) *Sensors {
	if interval <= 0 {
		interval = domain.DefaultAppSettings().Sensors.PollInterval
	}
	return &Sensors{root: root, interval: interval, now: time.Now}
}

// Headings polls the first device exposing a north-referenced rotation channel.
func (s *Sensors) Headings(ctx context.Context) (<-chan domain.HeadingSample, error) {
	dev, channel, err := s.findDevice(headingChannels...)
	if err != nil {
		return nil, err
	}
	logger.Debug("sysfs: compass %s on %s", channel, dev)

	out := make(chan domain.HeadingSample, 1)
	go s.poll(ctx, func() {
		v, err := readScaled(dev, channel, "in_rot")
		if err != nil {
			logger.Debug("sysfs: heading read failed: %v", err)
			return
		}
		select {
		case out <- domain.HeadingSample{Degrees: v, At: s.now()}:
		case <-ctx.Done():
		}
	}, func() { close(out) })
	return out, nil
}

// Motion polls the first device exposing all three accelerometer axes.
func (s *Sensors) Motion(ctx context.Context) (<-chan domain.MotionSample, error) {
	dev, _, err := s.findDevice(accelAxes[0])
	if err != nil {
		return nil, err
	}
	logger.Debug("sysfs: accelerometer on %s", dev)

	out := make(chan domain.MotionSample, 1)
	go s.poll(ctx, func() {
		var axes [3]float64
		for i, ch := range accelAxes {
			v, err := readScaled(dev, ch, "in_accel")
			if err != nil {
				logger.Debug("sysfs: accel read failed: %v", err)
				return
			}
			axes[i] = v
		}
		select {
		case out <- domain.MotionSample{X: axes[0], Y: axes[1], Z: axes[2], At: s.now()}:
		case <-ctx.Done():
		}
	}, func() { close(out) })
	return out, nil
}

func (s *Sensors) poll(ctx context.Context, read func(), done func()) {
	defer done()
	limiter := rate.NewLimiter(rate.Every(s.interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		read()
	}
}

// findDevice returns the first device directory exposing one of channels.
func (s *Sensors) findDevice(channels ...string) (string, string, error) {
	devices, err := filepath.Glob(filepath.Join(s.root, "iio:device*"))
	if err != nil || len(devices) == 0 {
		return "", "", fmt.Errorf("no IIO devices under %s: %w", s.root, domain.ErrSourceUnavailable)
	}
	for _, dev := range devices {
		for _, ch := range channels {
			if _, err := os.Stat(filepath.Join(dev, ch+"_raw")); err == nil {
				return dev, ch, nil
			}
		}
	}
	return "", "", fmt.Errorf("no device exposes %s: %w", channels[0], domain.ErrSourceUnavailable)
}

// readScaled returns (raw + offset) * scale. Per-channel scale and offset
// take precedence over the shared ones named by group.
func readScaled(dev, channel, group string) (float64, error) {
	raw, err := readFloat(filepath.Join(dev, channel+"_raw"))
	if err != nil {
		return 0, err
	}
	scale := readOptional(dev, 1, channel+"_scale", group+"_scale")
	offset := readOptional(dev, 0, channel+"_offset", group+"_offset")
	return (raw + offset) * scale, nil
}

func readOptional(dev string, fallback float64, names ...string) float64 {
	for _, n := range names {
		if v, err := readFloat(filepath.Join(dev, n)); err == nil {
			return v
		}
	}
	return fallback
}

func readFloat(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, domain.ErrMalformedSample)
	}
	return v, nil
}
