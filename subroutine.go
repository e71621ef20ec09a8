package cutscene

// A Subroutine is an external, stateful operation that a task
// can wait on with OnSubroutine.
//
// For each OnSubroutine wait the scheduler calls Start once, then
// Update once per tick until IsComplete returns true. If the task
// is stopped, skipped or faults while the subroutine is still
// pending, Stop is called instead, at most once.
//
//	Note: all methods are called on the goroutine that calls Tick.
type Subroutine interface {
	Start()
	Update()
	Stop()
	IsComplete() bool
}

// Cancellable is implemented by external operations that can be
// abandoned early, such as quest tasks.
type Cancellable interface {
	Cancel()
}

type predicate struct {
	fn     func() bool
	negate bool
	done   bool
}

// Until completes on the first Update where fn returns true.
func Until(fn func() bool) Subroutine {
	return &predicate{fn: fn}
}

// While completes on the first Update where fn returns false.
func While(fn func() bool) Subroutine {
	return &predicate{fn: fn, negate: true}
}

func (p *predicate) Start() { p.done = false }

func (p *predicate) Update() {
	if p.done {
		return
	}
	p.done = p.fn() != p.negate
}

func (p *predicate) Stop()            {}
func (p *predicate) IsComplete() bool { return p.done }

type group struct {
	subs []Subroutine
	done []bool
}

// All runs every sub side by side and completes once all of
// them have completed. Stopping the group stops the subs that
// have not completed yet.
func All(subs ...Subroutine) Subroutine {
	return &group{subs: subs, done: make([]bool, len(subs))}
}

func (g *group) Start() {
	for i, sub := range g.subs {
		g.done[i] = false
		sub.Start()
	}
}

func (g *group) Update() {
	for i, sub := range g.subs {
		if g.done[i] {
			continue
		}
		sub.Update()
		g.done[i] = sub.IsComplete()
	}
}

func (g *group) Stop() {
	for i, sub := range g.subs {
		if !g.done[i] {
			sub.Stop()
		}
	}
}

func (g *group) IsComplete() bool {
	for _, done := range g.done {
		if !done {
			return false
		}
	}
	return true
}
