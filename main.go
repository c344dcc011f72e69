/*
Command crawlsched is the default binary built on the cmd package: a
demo crawl driver with no custom Goal, LinkExtractor, or Fetcher. Binaries
that need their own wiring should import cmd directly instead - see the
cmd package's doc comment.
*/
package main

import "github.com/iParadigms/crawlsched/cmd"

func main() {
	cmd.Execute()
}
