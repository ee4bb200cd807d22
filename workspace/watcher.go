package workspace

import (
	"io/fs"
	"time"
)

// FileWatcher polls the workspace root and rescans files whose
// modification time moved forward. Removed files are dropped.
type FileWatcher struct {
	workspace *Workspace
	stopCh    chan struct{}
	interval  time.Duration
	modTimes  map[string]time.Time
	onChange  func(path string, doc *Document)
}

func NewFileWatcher(w *Workspace, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		workspace: w,
		stopCh:    make(chan struct{}),
		interval:  interval,
		modTimes:  make(map[string]time.Time),
	}
}

// OnChange registers f to run after a file is rescanned, or with a nil
// document after it is removed. It must be set before Start.
func (fw *FileWatcher) OnChange(f func(path string, doc *Document)) {
	fw.onChange = f
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.interval)
	defer ticker.Stop()

	fw.Scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.Scan()
		}
	}
}

// Scan runs one poll synchronously.
func (fw *FileWatcher) Scan() {
	current := make(map[string]bool)

	fw.workspace.walk(func(path string, info fs.FileInfo) {
		current[path] = true

		lastMod, known := fw.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return
		}
		fw.modTimes[path] = info.ModTime()
		if err := fw.workspace.ScanFile(path); err != nil {
			log.Warningf("scan %s: %v", path, err)
			return
		}
		fw.notify(path, fw.workspace.GetFile(path))
	})

	for path := range fw.modTimes {
		if !current[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			fw.notify(path, nil)
		}
	}
}

func (fw *FileWatcher) notify(path string, doc *Document) {
	if fw.onChange != nil {
		fw.onChange(path, doc)
	}
}
