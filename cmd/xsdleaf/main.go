// Command xsdleaf lists the leaf fields of an XML Schema as
// spreadsheet tables.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/andaru/xsdleaf/internal/cli"
)

func main() {
	_ = flag.Set("logtostderr", "true")
	err := cli.Execute(os.Args[1:])
	glog.Flush()
	if err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
