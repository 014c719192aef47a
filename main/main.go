package main

import (
	"github.com/timkoopmans/skylar"
	_ "github.com/timkoopmans/skylar/binding"
)

func main() {
	skylar.Main()
}
