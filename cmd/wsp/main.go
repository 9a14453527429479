// Command wsp creates, inspects, and dumps whisper time-series files.
package main

import "os"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, os.Environ()))
}
