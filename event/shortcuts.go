package event

// shortcut binds each callback to typ, or triggers typ when there are none.
func (s *Set) shortcut(typ string, cbs []*Callback) *Set {
	if len(cbs) == 0 {
		if err := s.Trigger(typ); err != nil {
			s.eng.log.WithField("method", typ).WithError(err).Warn("[EVENT]: trigger failed")
		}
		return s
	}
	for _, cb := range cbs {
		s.On(typ, cb)
	}
	return s
}

func (s *Set) Blur(cb ...*Callback) *Set       { return s.shortcut("blur", cb) }
func (s *Set) Focus(cb ...*Callback) *Set      { return s.shortcut("focus", cb) }
func (s *Set) FocusIn(cb ...*Callback) *Set    { return s.shortcut("focusin", cb) }
func (s *Set) FocusOut(cb ...*Callback) *Set   { return s.shortcut("focusout", cb) }
func (s *Set) Load(cb ...*Callback) *Set       { return s.shortcut("load", cb) }
func (s *Set) Resize(cb ...*Callback) *Set     { return s.shortcut("resize", cb) }
func (s *Set) Scroll(cb ...*Callback) *Set     { return s.shortcut("scroll", cb) }
func (s *Set) Unload(cb ...*Callback) *Set     { return s.shortcut("unload", cb) }
func (s *Set) Click(cb ...*Callback) *Set      { return s.shortcut("click", cb) }
func (s *Set) DblClick(cb ...*Callback) *Set   { return s.shortcut("dblclick", cb) }
func (s *Set) MouseDown(cb ...*Callback) *Set  { return s.shortcut("mousedown", cb) }
func (s *Set) MouseUp(cb ...*Callback) *Set    { return s.shortcut("mouseup", cb) }
func (s *Set) MouseMove(cb ...*Callback) *Set  { return s.shortcut("mousemove", cb) }
func (s *Set) MouseOver(cb ...*Callback) *Set  { return s.shortcut("mouseover", cb) }
func (s *Set) MouseOut(cb ...*Callback) *Set   { return s.shortcut("mouseout", cb) }
func (s *Set) MouseEnter(cb ...*Callback) *Set { return s.shortcut("mouseenter", cb) }
func (s *Set) MouseLeave(cb ...*Callback) *Set { return s.shortcut("mouseleave", cb) }
func (s *Set) Change(cb ...*Callback) *Set     { return s.shortcut("change", cb) }
func (s *Set) Select(cb ...*Callback) *Set     { return s.shortcut("select", cb) }
func (s *Set) KeyDown(cb ...*Callback) *Set    { return s.shortcut("keydown", cb) }
func (s *Set) KeyPress(cb ...*Callback) *Set   { return s.shortcut("keypress", cb) }
func (s *Set) KeyUp(cb ...*Callback) *Set      { return s.shortcut("keyup", cb) }
func (s *Set) Error(cb ...*Callback) *Set      { return s.shortcut("error", cb) }

// ShortcutTypes lists the event types that have a shortcut method.
var ShortcutTypes = []string{
	"blur", "focus", "focusin", "focusout", "load", "resize",
	"scroll", "unload", "click", "dblclick", "mousedown", "mouseup",
	"mousemove", "mouseover", "mouseout", "mouseenter", "mouseleave", "change",
	"select", "keydown", "keypress", "keyup", "error",
}
