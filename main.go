package main

import (
	"context"
	"os"

	"github.com/kovetskiy/tally/util"
	"github.com/reconquest/pkg/log"
)

func main() {
	cmd := util.NewCommand()

	if err := cmd.Run(context.TODO(), os.Args); err != nil {
		log.Fatal(err)
	}
}
