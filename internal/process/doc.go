// Package process runs external programs on behalf of the CI executor and the
// template helpers. A Command names a program, its arguments, an optional
// working directory and an optional toolchain to run it under. The Runner
// interface is the only way the rest of the module spawns processes, so tests
// substitute processtest.Recorder.
package process
