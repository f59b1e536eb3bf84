package game

// action runs f as one command. Changes made inside it are settled once,
// after the outermost command returns.
func (g *Game) action(f func()) {
	g.depth++
	f()
	g.depth--
	if g.depth == 0 {
		g.settle()
	}
}

// changed is called by every blind after it mutates. Outside a command it
// settles straight away; that is how timer ticks reach the game.
func (g *Game) changed() {
	g.dirty = true
	if g.depth == 0 {
		g.settle()
	}
}

// settle re-runs the progression rule until it stops changing anything, then
// tells subscribers.
func (g *Game) settle() {
	if g.settling || !g.dirty {
		return
	}
	g.settling = true
	for g.dirty {
		g.dirty = false
		g.depth++
		g.progress()
		g.depth--
	}
	g.settling = false
	g.publish()
}

// progress resets a finished game, or moves a finished blind on to the next
// one and keeps the clock running.
func (g *Game) progress() {
	active := g.ActiveBlind()
	if active == nil {
		return
	}
	if g.IsComplete() {
		g.reset()
		return
	}
	if active.IsComplete() {
		if err := g.activateNext(); err != nil {
			return
		}
		g.start()
	}
}

// Subscribe registers fn to receive a snapshot after every settled change.
// fn runs on the game's thread and must not call back into the game. The
// returned func removes the subscription.
func (g *Game) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	g.nextSubID++
	id := g.nextSubID
	g.listeners = append(g.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range g.listeners {
			if l.id == id {
				g.listeners = append(g.listeners[:i:i], g.listeners[i+1:]...)
				return
			}
		}
	}
}

func (g *Game) publish() {
	g.version++
	if len(g.listeners) == 0 {
		return
	}
	snap := g.Snapshot()
	ls := make([]listener, len(g.listeners))
	copy(ls, g.listeners)
	for _, l := range ls {
		l.fn(snap)
	}
}
