package task

// Notifier receives the store's warnings and errors. *log.Logger from
// github.com/charmbracelet/log satisfies it.
type Notifier interface {
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

type nopNotifier struct{}

func (nopNotifier) Info(interface{}, ...interface{})  {}
func (nopNotifier) Warn(interface{}, ...interface{})  {}
func (nopNotifier) Error(interface{}, ...interface{}) {}
