package t2048

// Effects are optional presentation hooks. Nil hooks are skipped; a hook
// that panics is recovered and logged so it never affects game state.
type Effects struct {
	OnStart       func()
	OnMoveStarted func(dir Direction)
	OnMerge       func(row, col, value int)
	OnSpawn       func(row, col, value int)
	OnIdleWarning func()
	OnForcedMove  func(dir Direction)
	OnGameOver    func(won bool)
	OnUpdate      func()
}

// emit runs a hook, containing any panic.
func (g *Game) emit(name string, hook func()) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Warn("effect hook panicked", "hook", name, "panic", r)
		}
	}()
	hook()
}

func (g *Game) emitStart() {
	if g.effects.OnStart != nil {
		g.emit("start", g.effects.OnStart)
	}
}

func (g *Game) emitMoveStarted(dir Direction) {
	if g.effects.OnMoveStarted != nil {
		g.emit("move_started", func() { g.effects.OnMoveStarted(dir) })
	}
}

func (g *Game) emitMerge(row, col, value int) {
	if g.effects.OnMerge != nil {
		g.emit("merge", func() { g.effects.OnMerge(row, col, value) })
	}
}

func (g *Game) emitSpawn(row, col, value int) {
	if g.effects.OnSpawn != nil {
		g.emit("spawn", func() { g.effects.OnSpawn(row, col, value) })
	}
}

func (g *Game) emitIdleWarning() {
	if g.effects.OnIdleWarning != nil {
		g.emit("idle_warning", g.effects.OnIdleWarning)
	}
}

func (g *Game) emitForcedMove(dir Direction) {
	if g.effects.OnForcedMove != nil {
		g.emit("forced_move", func() { g.effects.OnForcedMove(dir) })
	}
}

func (g *Game) emitGameOver(won bool) {
	if g.effects.OnGameOver != nil {
		g.emit("game_over", func() { g.effects.OnGameOver(won) })
	}
}

func (g *Game) emitUpdate() {
	if g.effects.OnUpdate != nil {
		g.emit("update", g.effects.OnUpdate)
	}
}
