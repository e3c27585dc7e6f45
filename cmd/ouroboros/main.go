package main

import "github.com/T0rr1/Ouroboros-sub001/internal/game"

func main() {
	game.RunDesktop()
}
