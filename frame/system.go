package frame

// System is a unit of per-frame work. Systems may keep state between frames.
type System interface {
	Execute(u *Update)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(u *Update)

func (f SystemFunc) Execute(u *Update) {
	f(u)
}
