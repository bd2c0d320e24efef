// Command danler animates the particle backdrop in a window or a terminal,
// or stress tests it headlessly.
package main

func main() {
	Execute()
}
