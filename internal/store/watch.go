package store

// Watch registers an observer that is signalled after every committed
// insert or delete. The channel has a buffer of one; notifications that
// arrive while one is already pending are coalesced, so observers re-query
// on wake-up instead of counting signals.
func (s *Store) Watch() chan struct{} {
	ch := make(chan struct{}, 1)
	s.watchMu.Lock()
	s.watchers[ch] = struct{}{}
	s.watchMu.Unlock()
	return ch
}

// Unwatch removes a previously registered observer.
func (s *Store) Unwatch(ch chan struct{}) {
	s.watchMu.Lock()
	delete(s.watchers, ch)
	s.watchMu.Unlock()
}

func (s *Store) notify() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
