package app

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/justyntemme/dragboard/internal/config"
	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/dnd"
	"github.com/justyntemme/dragboard/internal/fs"
	"github.com/justyntemme/dragboard/internal/input"
	"github.com/justyntemme/dragboard/internal/metrics"
	"github.com/justyntemme/dragboard/internal/store"
	"github.com/justyntemme/dragboard/internal/trash"
)

// Session owns the board together with the worker goroutines it needs:
// directory listings and transfers (fs), the gesture journal (store) and
// the directory watcher. Worker answers are queued and applied by Drain on
// the UI goroutine, which is the only goroutine touching the board.
type Session struct {
	cfg     config.Config
	board   *Board
	fs      *fs.System
	store   *store.DB // nil when the journal is off or failed to open
	watcher *fs.Watcher
	metrics *metrics.Collector

	mu    sync.Mutex
	inbox []any
	wake  func()
	done  chan struct{}

	listGen int64
	watched string
}

// NewSession builds a session from cfg. Metrics are registered on reg; a
// nil reg keeps them private to the session.
func NewSession(cfg config.Config, reg prometheus.Registerer) *Session {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Session{
		cfg:     cfg,
		fs:      fs.NewSystem(),
		metrics: metrics.New(reg),
		done:    make(chan struct{}),
	}

	ops, err := cfg.Drag.OperationTable()
	if err != nil {
		log.Printf("Invalid drag operations, using %q only: %v", cfg.Drag.DefaultOperation, err)
		ops = dnd.OperationOf(cfg.Drag.DefaultOperation)
	}

	opts := []BoardOption{WithOperations(ops), WithMetrics(s.metrics)}
	if cfg.Board.Trash {
		opts = append(opts, WithTrash(trash.DisplayName()))
	}
	m := dnd.NewManager(dnd.WithObserver(s.metrics))
	s.board = NewBoard(m, dnd.NewSurface(), s, opts...)

	if cfg.Store.Enabled {
		db := store.NewDB()
		if err := db.Open(cfg.StorePath()); err != nil {
			log.Printf("Failed to open journal: %v", err)
		} else {
			s.store = db
		}
	}

	w, err := fs.NewWatcher(fs.DefaultDebounce)
	if err != nil {
		log.Printf("Failed to start watcher: %v", err)
	} else {
		s.watcher = w
	}
	return s
}

// Board returns the session's board. Only use it on the UI goroutine.
func (s *Session) Board() *Board { return s.board }

// Config returns the configuration the session was built with.
func (s *Session) Config() config.Config { return s.cfg }

// Metrics returns the session's collector.
func (s *Session) Metrics() *metrics.Collector { return s.metrics }

// NewTracker returns a gesture tracker for the board, configured from the
// drag settings. opts are applied after them.
func (s *Session) NewTracker(opts ...input.TrackerOption) *input.Tracker {
	opts = append([]input.TrackerOption{
		input.WithDeadZone(s.cfg.Drag.DeadZone),
		input.WithOperation(s.cfg.Drag.DefaultOperation),
	}, opts...)
	return input.NewTracker(s.board.Manager(), s.board.Surface(), opts...)
}

// Start launches the workers. wake is called from worker goroutines
// whenever Drain has something to apply.
func (s *Session) Start(wake func()) {
	s.wake = wake
	go s.fs.Start()
	if s.store != nil {
		go s.store.Start()
	}
	go s.forward()
}

func (s *Session) forward() {
	var storeResp <-chan store.Response
	if s.store != nil {
		storeResp = s.store.ResponseChan
	}
	var changes <-chan string
	if s.watcher != nil {
		changes = s.watcher.Changes()
	}

	for {
		var msg any
		select {
		case <-s.done:
			return
		case resp := <-s.fs.ResponseChan:
			msg = resp
		case resp := <-storeResp:
			msg = resp
		case dir := <-changes:
			msg = dirChanged(dir)
		}

		s.mu.Lock()
		s.inbox = append(s.inbox, msg)
		s.mu.Unlock()
		if s.wake != nil {
			s.wake()
		}
	}
}

type dirChanged string

// externalDrop carries paths dropped on the window by another program
type externalDrop []string

// ExternalDrop queues paths dropped from outside the window; the next Drain
// copies them into the shown directory. Safe to call from any goroutine.
func (s *Session) ExternalDrop(paths []string) {
	s.mu.Lock()
	s.inbox = append(s.inbox, externalDrop(paths))
	s.mu.Unlock()
	if s.wake != nil {
		s.wake()
	}
}

// Navigate shows dir. An empty dir selects the configured root, then the
// working directory.
func (s *Session) Navigate(dir string) {
	if dir == "" {
		dir = s.cfg.Board.Root
	}
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	s.request(dir)
}

// Refresh lists the shown directory again.
func (s *Session) Refresh() {
	if root := s.board.Root(); root != "" {
		s.request(root)
	}
}

func (s *Session) request(dir string) {
	s.listGen++
	debug.Log(debug.APP, "Session: list %s gen=%d", dir, s.listGen)
	s.fs.RequestChan <- fs.Request{
		Op:           fs.FetchDir,
		Path:         dir,
		ShowDotfiles: s.cfg.Board.ShowDotfiles,
		Gen:          s.listGen,
	}
}

// Drain applies queued worker answers and reports whether anything changed.
func (s *Session) Drain() bool {
	s.mu.Lock()
	inbox := s.inbox
	s.inbox = nil
	s.mu.Unlock()

	for _, msg := range inbox {
		switch msg := msg.(type) {
		case fs.Response:
			s.handleFSResponse(msg)
		case store.Response:
			if msg.Err != nil {
				log.Printf("Store Error: %v", msg.Err)
			}
		case dirChanged:
			if filepath.Clean(string(msg)) == s.board.Root() {
				debug.Log(debug.APP, "Session: %s changed on disk", msg)
				s.Refresh()
			}
		case externalDrop:
			s.board.Import(msg)
		}
	}
	return len(inbox) > 0
}

func (s *Session) handleFSResponse(resp fs.Response) {
	switch resp.Op {
	case fs.TransferItem:
		if s.board.TransferDone(resp) {
			s.Refresh()
		}
	case fs.FetchDir:
		if resp.Gen != s.listGen {
			debug.Log(debug.APP, "Session: stale listing gen=%d (current %d)", resp.Gen, s.listGen)
			return
		}
		if resp.Err != nil {
			log.Printf("FS Error: %v", resp.Err)
			s.board.SetStatus(resp.Err.Error())
			return
		}
		s.board.SetRoot(resp.Path, resp.Entries)
		s.watch(s.board.Root())
	}
}

func (s *Session) watch(dir string) {
	if s.watcher == nil || dir == s.watched {
		return
	}
	if s.watched != "" {
		s.watcher.Unwatch(s.watched)
	}
	if err := s.watcher.Watch(dir); err != nil {
		debug.Log(debug.FS, "Session: cannot watch %s: %v", dir, err)
		s.watched = ""
		return
	}
	s.watched = dir
}

// Transfer implements Effects by handing the request to the fs worker.
func (s *Session) Transfer(req fs.Request) {
	s.fs.RequestChan <- req
}

// Record implements Effects by handing the gesture to the journal.
func (s *Session) Record(g store.Gesture) {
	if s.store == nil {
		return
	}
	s.store.RequestChan <- store.Request{Op: store.RecordGesture, Gesture: g}
}

// Close unregisters the board and stops the workers.
func (s *Session) Close() {
	s.board.Close()
	close(s.done)
	if s.watcher != nil {
		s.watcher.Close()
	}
	close(s.fs.RequestChan)
	if s.store != nil {
		close(s.store.RequestChan)
		s.store.Close()
	}
}
