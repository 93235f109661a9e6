package main

import "hwreview_backend/internal/app"

func main() {
	app.Run()
}
