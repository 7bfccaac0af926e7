// Package feed reads sensor samples from a JSON-lines file that another
// process appends to. Each line is one sample:
//
//	{"kind":"heading","degrees":3.5}
//	{"kind":"motion","x":0.1,"y":9.7,"z":14.2,"t_ms":1718000000000}
//
// t_ms is optional; samples without it are stamped on arrival.
package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// Ensure Source implements the interfaces.
var (
	_ driven.HeadingSource = (*Source)(nil)
	_ driven.MotionSource  = (*Source)(nil)
)

// Sample kinds.
const (
	KindHeading = "heading"
	KindMotion  = "motion"
)

// Line is the wire form of one sample.
type Line struct {
	Kind    string   `json:"kind"`
	Degrees *float64 `json:"degrees,omitempty"`
	X       float64  `json:"x,omitempty"`
	Y       float64  `json:"y,omitempty"`
	Z       float64  `json:"z,omitempty"`
	TimeMS  int64    `json:"t_ms,omitempty"`
}

// Source tails a feed file. Only lines appended after a reader attaches
// are delivered.
type Source struct {
	path string
	now  func() time.Time
}

// New creates a source for path.
func New(path string) *Source {
	return &Source{path: path, now: time.Now}
}

// Headings streams heading lines.
func (s *Source) Headings(ctx context.Context) (<-chan domain.HeadingSample, error) {
	out := make(chan domain.HeadingSample, 16)
	err := s.tail(ctx, func(l Line, at time.Time) {
		if l.Kind != KindHeading || l.Degrees == nil {
			return
		}
		select {
		case out <- domain.HeadingSample{Degrees: *l.Degrees, At: at}:
		case <-ctx.Done():
		}
	}, func() { close(out) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Motion streams motion lines.
func (s *Source) Motion(ctx context.Context) (<-chan domain.MotionSample, error) {
	out := make(chan domain.MotionSample, 16)
	err := s.tail(ctx, func(l Line, at time.Time) {
		if l.Kind != KindMotion {
			return
		}
		select {
		case out <- domain.MotionSample{X: l.X, Y: l.Y, Z: l.Z, At: at}:
		case <-ctx.Done():
		}
	}, func() { close(out) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseLine decodes one feed line.
func ParseLine(raw []byte) (Line, error) {
	var l Line
	if err := json.Unmarshal(raw, &l); err != nil {
		return Line{}, fmt.Errorf("%w: %v", domain.ErrMalformedSample, err)
	}
	switch l.Kind {
	case KindHeading:
		if l.Degrees == nil {
			return Line{}, fmt.Errorf("%w: heading without degrees", domain.ErrMalformedSample)
		}
	case KindMotion:
	default:
		return Line{}, fmt.Errorf("%w: unknown kind %q", domain.ErrMalformedSample, l.Kind)
	}
	return l, nil
}

// tail sets up the watch synchronously, then follows the file in a
// goroutine until ctx is done.
func (s *Source) tail(ctx context.Context, emit func(Line, time.Time), done func()) error {
	if s.path == "" {
		return fmt.Errorf("feed path not configured: %w", domain.ErrSourceUnavailable)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory so rotation and late creation are seen.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching %s: %w", s.path, errors.Join(domain.ErrSourceUnavailable, err))
	}

	f := &follower{path: s.path}
	f.open(true)

	go func() {
		defer done()
		defer watcher.Close()
		defer f.close()

		handle := func() {
			for _, raw := range f.drain() {
				l, err := ParseLine(raw)
				if err != nil {
					logger.Debug("feed: skipping line: %v", err)
					continue
				}
				at := s.now()
				if l.TimeMS > 0 {
					at = time.UnixMilli(l.TimeMS)
				}
				emit(l, at)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
					continue
				}
				switch {
				case ev.Has(fsnotify.Create):
					f.close()
					f.open(false)
					handle()
				case ev.Has(fsnotify.Write):
					if f.file == nil {
						f.open(false)
					}
					handle()
				case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
					f.close()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("feed: watcher error on %s: %v", s.path, err)
			}
		}
	}()
	return nil
}

// follower reads complete lines from a growing file.
type follower struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	offset  int64
	partial []byte
}

func (f *follower) open(atEnd bool) {
	file, err := os.Open(f.path)
	if err != nil {
		return
	}
	f.offset = 0
	if atEnd {
		if off, err := file.Seek(0, io.SeekEnd); err == nil {
			f.offset = off
		}
	}
	f.file = file
	f.reader = bufio.NewReader(file)
	f.partial = nil
}

func (f *follower) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
	f.file, f.reader, f.partial = nil, nil, nil
}

// drain returns every complete line appended since the last call.
func (f *follower) drain() [][]byte {
	if f.file == nil {
		return nil
	}
	if info, err := f.file.Stat(); err == nil && info.Size() < f.offset {
		// Truncated in place.
		if _, err := f.file.Seek(0, io.SeekStart); err == nil {
			f.offset = 0
			f.reader.Reset(f.file)
			f.partial = nil
		}
	}

	var lines [][]byte
	for {
		chunk, err := f.reader.ReadBytes('\n')
		f.offset += int64(len(chunk))
		if err != nil {
			f.partial = append(f.partial, chunk...)
			return lines
		}
		line := append(f.partial, chunk[:len(chunk)-1]...)
		f.partial = nil
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
}
