package workflow

import "sync"

// Container は現在の State を保持し、遷移を直列に適用します。
type Container struct {
	mu      sync.Mutex
	state   State
	watcher func(State)
}

// NewContainer は初期状態の Container を返します。
func NewContainer() *Container {
	return &Container{state: NewState()}
}

// Watch は状態が変わるたびに呼ばれる関数を登録します。
// fn はロックを保持したまま呼ばれるので Container を操作してはいけません。
func (c *Container) Watch(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watcher = fn
}

// State は現在の状態のコピーを返します。
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Update は fn を適用した結果を新しい状態にします。
func (c *Container) Update(fn func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(fn(c.state.Clone()))
	return c.state.Clone()
}

// TryUpdate は fn が ok を返した場合だけ状態を更新します。
func (c *Container) TryUpdate(fn func(State) (State, bool)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := fn(c.state.Clone())
	if ok {
		c.set(next)
	}
	return ok
}

func (c *Container) set(s State) {
	c.state = s
	if c.watcher != nil {
		c.watcher(s.Clone())
	}
}
