package main

import "beautymatch_backend/internal/app"

func main() {
	app.Run()
}
