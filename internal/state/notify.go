package state

// NotifyFunc is one side effect fired when a matching status is observed.
type NotifyFunc func(a Action)

// Notifier watches the action stream for embedded HTTP statuses and fires
// the configured effect. It never blocks dispatch or alters the action;
// the status-to-effect mapping is supplied by the caller, not hard-coded.
type Notifier struct {
	table map[int]NotifyFunc
}

func NewNotifier(table map[int]NotifyFunc) *Notifier {
	return &Notifier{table: table}
}

// Observe implements Observer. Actions without an HTTP status are ignored.
func (n *Notifier) Observe(a Action) {
	if a.HTTPStatus == 0 {
		return
	}
	if fn, ok := n.table[a.HTTPStatus]; ok {
		fn(a)
	}
}
