package main

import (
	"github.com/warden-bot/warden/cmd"
	"github.com/warden-bot/warden/common/log"
)

func main() {
	err := cmd.Run()
	if err != nil {
		log.Fatal(err)
	}
}
