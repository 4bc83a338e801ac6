package interpreter

// SetSource sets the active chunk so runtime errors carry the right filename
// and caret line. The REPL calls it once per entry.
func (i *Interpreter) SetSource(filename string, source string) {
	i.filename = filename
	i.lines = splitLinesPreserve(source)
}
