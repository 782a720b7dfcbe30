package session

import (
	"sync"
	"time"
)

// pendingCall 一次未决的防抖调用.
type pendingCall struct {
	timer *time.Timer
	fn    func()
}

// Debouncer 按 key 归并高频调用：同一 key 的重复调度互相替换，
// 静默期结束后只有最后一次会真正执行.
// 回调里的失败不归防抖器管，由取数自身的错误通道传播.
type Debouncer struct {
	mu      sync.Mutex
	pending map[string]*pendingCall
}

// NewDebouncer 创建防抖器.
func NewDebouncer() *Debouncer {
	return &Debouncer{pending: make(map[string]*pendingCall)}
}

// Schedule 调度一次调用；替换同 key 的未决调用.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}

	p := &pendingCall{fn: fn}
	p.timer = time.AfterFunc(delay, func() { d.fire(key, p) })
	d.pending[key] = p
}

// fire 定时器到期；只有仍是当前未决调用时才执行.
func (d *Debouncer) fire(key string, p *pendingCall) {
	d.mu.Lock()

	cur, ok := d.pending[key]
	if !ok || cur != p {
		// 已被替换或取消
		d.mu.Unlock()

		return
	}

	delete(d.pending, key)
	d.mu.Unlock()

	p.fn()
}

// Cancel 取消未决调用，不执行.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Flush 立即执行未决调用（测试和关闭时使用）.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()

	p, ok := d.pending[key]
	if ok {
		p.timer.Stop()
		delete(d.pending, key)
	}

	d.mu.Unlock()

	if ok {
		p.fn()
	}
}

// Stop 取消全部未决调用.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}
