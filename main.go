package main

import "github.com/boiler/boiler/cmd/boiler"

func main() { boiler.Execute() }
