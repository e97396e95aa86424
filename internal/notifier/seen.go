package notifier

import "container/list"

// seenSet is a bounded LRU of normalized notification ids. The upstream
// system kept an unbounded process-wide set for the whole application
// lifetime; capping it here trades exact at-least-once dedup for bounded
// memory over very long sessions.
type seenSet struct {
	cap   int
	order *list.List
	items map[string]*list.Element
}

func newSeenSet(capacity int) *seenSet {
	if capacity <= 0 {
		capacity = 1024
	}
	return &seenSet{
		cap:   capacity,
		order: list.New(),
		items: make(map[string]*list.Element, capacity),
	}
}

func (s *seenSet) Contains(key string) bool {
	elem, ok := s.items[key]
	if ok {
		s.order.MoveToFront(elem)
	}
	return ok
}

func (s *seenSet) Add(key string) {
	if elem, ok := s.items[key]; ok {
		s.order.MoveToFront(elem)
		return
	}
	s.items[key] = s.order.PushFront(key)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(string))
	}
}
