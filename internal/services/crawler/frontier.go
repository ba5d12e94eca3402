package crawler

import "github.com/ternarybob/speculum/internal/models"

// frontier owns the queue, visited-set, and recorded-set for one crawl
// invocation. Request-scoped; never shared across crawls.
type frontier struct {
	queue    []models.QueueItem
	visited  map[string]bool // Dequeued crawl-mode URLs
	recorded map[string]bool // Canonical URLs already emitted as records
}

func newFrontier() *frontier {
	return &frontier{
		visited:  make(map[string]bool),
		recorded: make(map[string]bool),
	}
}

// enqueue appends a frontier item. Callers filter before enqueueing.
func (f *frontier) enqueue(url string, depth int) {
	f.queue = append(f.queue, models.QueueItem{URL: url, Depth: depth})
}

// dequeue pops the next item breadth-first
func (f *frontier) dequeue() (models.QueueItem, bool) {
	if len(f.queue) == 0 {
		return models.QueueItem{}, false
	}
	item := f.queue[0]
	f.queue = f.queue[1:]
	return item, true
}

func (f *frontier) isVisited(url string) bool {
	return f.visited[url]
}

// markVisited records a dequeued URL. The visited set grows
// monotonically; no URL is fetched twice.
func (f *frontier) markVisited(url string) {
	f.visited[url] = true
}

func (f *frontier) isRecorded(canonical string) bool {
	return f.recorded[canonical]
}

func (f *frontier) markRecorded(canonical string) {
	f.recorded[canonical] = true
}
