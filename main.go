package main

import (
	"log"

	"github.com/jontwo/beatboxer/internal/config"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	config.Parse()

	p := &Program{}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	return p.Run()
}
