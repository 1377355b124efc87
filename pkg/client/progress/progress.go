// Package progress renders terminal progress bars for concurrent transfers.
package progress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/embedx-ml/embedx/pkg/client/units"
)

const DefaultConcurrency = 5

type MultiBar struct {
	w               io.Writer
	width           int
	lastWrittenRows int
	bars            []*Bar
	barslock        sync.Mutex
	eg              *errgroup.Group

	haschange atomic.Bool
}

func NewMultiBar(dest io.Writer, width int, concurrency int) *MultiBar {
	mb := &MultiBar{
		width: width,
		w:     dest,
		eg:    &errgroup.Group{},
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	mb.eg.SetLimit(concurrency)
	return mb
}

// Run redraws the bars until the context is cancelled.
func (m *MultiBar) Run(ctx context.Context) {
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if m.haschange.CompareAndSwap(true, false) {
				m.print()
			}
		}
	}
}

// Go runs fun with its own bar in the wait group.
func (m *MultiBar) Go(name string, initstatus string, fun func(b *Bar) error) {
	bar := &Bar{
		mp:     m,
		Name:   name,
		Status: initstatus,
		Width:  m.width,
	}
	m.barslock.Lock()
	m.bars = append(m.bars, bar)
	m.barslock.Unlock()
	m.print()

	m.eg.Go(func() error {
		if err := fun(bar); err != nil {
			bar.SetStatus(bar.Name, "failed")
			return err
		}
		bar.mu.Lock()
		bar.Done = true
		bar.mu.Unlock()
		bar.Notify()
		return nil
	})
}

func (m *MultiBar) Wait() error {
	err := m.eg.Wait()
	m.print()
	return err
}

func (m *MultiBar) print() {
	m.barslock.Lock()
	defer m.barslock.Unlock()

	buf := &bytes.Buffer{}
	// move up and clear previously drawn rows
	if m.lastWrittenRows > 0 {
		fmt.Fprintf(buf, "\033[%dA\033[J", m.lastWrittenRows)
	}
	for _, b := range m.bars {
		b.Write(buf)
	}
	_, _ = m.w.Write(buf.Bytes())
	m.lastWrittenRows = len(m.bars)
}

type Bar struct {
	Name      string
	Total     int64
	Completed int64
	Width     int
	Status    string
	Done      bool

	mu sync.Mutex
	mp *MultiBar
}

func (b *Bar) Notify() {
	if b.mp != nil {
		b.mp.haschange.Store(true)
	}
}

func (b *Bar) SetStatus(name string, status string) {
	b.mu.Lock()
	b.Name = name
	b.Status = status
	b.mu.Unlock()
	b.Notify()
}

func (b *Bar) SetProgress(completed, total int64) {
	b.mu.Lock()
	b.Completed = completed
	b.Total = total
	b.mu.Unlock()
	b.Notify()
}

func (b *Bar) Write(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Width == 0 {
		b.Width = 40
	}
	var completed int
	var status string
	switch {
	case b.Done:
		completed = b.Width
		status = b.Status
	case b.Total <= 0:
		completed = 0
		status = b.Status
	default:
		completed = int(float64(b.Width) * float64(b.Completed) / float64(b.Total))
		if completed < 0 {
			completed = 0
		}
		if completed > b.Width {
			completed = b.Width
		}
		status = units.HumanSize(float64(b.Completed)) + "/" + units.HumanSize(float64(b.Total))
	}
	fmt.Fprintf(w, "%s [%s%s] %s\n",
		b.Name,
		bytes.Repeat([]byte{'#'}, completed),
		bytes.Repeat([]byte{'-'}, b.Width-completed),
		status,
	)
}

// WrapReader counts the bytes read through rc into the bar.
func (b *Bar) WrapReader(rc io.ReadCloser, name string, total int64, status, doneStatus, failStatus string) io.ReadCloser {
	b.SetStatus(name, status)
	b.SetProgress(0, total)
	return &barReader{rc: rc, b: b, doneStatus: doneStatus, failStatus: failStatus}
}

type barReader struct {
	rc         io.ReadCloser
	b          *Bar
	doneStatus string
	failStatus string
}

func (r *barReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	r.b.mu.Lock()
	r.b.Completed += int64(n)
	switch {
	case err == io.EOF:
		r.b.Status = r.doneStatus
	case err != nil:
		r.b.Status = r.failStatus
	}
	r.b.mu.Unlock()
	r.b.Notify()
	return n, err
}

func (r *barReader) Close() error {
	return r.rc.Close()
}
