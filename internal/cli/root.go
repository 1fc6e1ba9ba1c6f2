package cli

import "io"

// Context is handed to every command's Run method.
type Context struct {
	EnvDir string
	Stdout io.Writer
}
