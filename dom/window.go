package dom

// Window is https://html.spec.whatwg.org/#the-window-object, reduced to what
// event handling needs: a dispatch target above the document and a task queue.
type Window struct {
	EventTarget

	document *Document
	tasks    []func()
	zid      uint64
}

func (w *Window) Document() *Document { return w.document }

func (w *Window) FocusinSupported() bool { return w.document.focusinSupported }

// SetTimeout queues fn to run on the next RunTasks. There is no delay.
func (w *Window) SetTimeout(fn func()) {
	if fn != nil {
		w.tasks = append(w.tasks, fn)
	}
}

// Pending is the number of queued tasks.
func (w *Window) Pending() int { return len(w.tasks) }

// RunTasks drains the task queue, including tasks queued while draining, and
// returns how many ran.
func (w *Window) RunTasks() int {
	ran := 0
	for len(w.tasks) > 0 {
		fn := w.tasks[0]
		w.tasks[0] = nil
		w.tasks = w.tasks[1:]
		fn()
		ran++
	}
	return ran
}

func (w *Window) ZID() uint64      { return w.zid }
func (w *Window) SetZID(id uint64) { w.zid = id }

func (w *Window) DispatchEvent(e *Event) (bool, error) {
	return dispatch(w, e)
}

func (w *Window) target() *EventTarget { return &w.EventTarget }
func (w *Window) parentTarget() Target { return nil }
