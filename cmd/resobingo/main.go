package main

import "github.com/rocketscienceinc/resobingo-backend/cmd/resobingo/root"

func main() {
	root.Execute()
}
