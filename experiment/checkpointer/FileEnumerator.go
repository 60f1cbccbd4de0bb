package checkpointer

import "fmt"

// FilenameEnumerator returns a function which returns a new filename
// each call: prefix followed by a counter and then extension. The
// counter starts at start+1, so that a run resumed after start
// checkpoints does not overwrite earlier ones.
func FilenameEnumerator(start int, prefix, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%s%d%s", prefix, i, extension)
	}
}
