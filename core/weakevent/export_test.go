package weakevent

// DeadEntries reports entries whose receiver has been collected but not yet swept.
func (r *Registry[H]) DeadEntries() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.dead() {
			n++
		}
	}
	return n
}
