package main

import (
	"context"

	"github.com/datahutch/scrapecheck/cmd/scrapecheck/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
